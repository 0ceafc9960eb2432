/* Copyright (c) 2021 David Bulkow */

package config

import (
	"os"
	"strconv"
	"strings"
)

// Env reads variables sharing a prefix: NewEnv("TIMERSTART").Get("LOCALE", "")
// reads TIMERSTART_LOCALE.
type Env struct {
	prefix string
}

func NewEnv(prefix string) *Env {
	return &Env{prefix: prefix}
}

func (e *Env) varname(suffix string) string {
	if e.prefix == "" {
		return suffix
	}
	return strings.Join([]string{e.prefix, suffix}, "_")
}

// Name returns the full variable name for suffix.
func (e *Env) Name(suffix string) string {
	return e.varname(suffix)
}

func (e *Env) Get(suffix, defvalue string) string {
	env := os.Getenv(e.varname(suffix))

	if env == "" {
		return defvalue
	}

	return env
}

func (e *Env) GetInt(suffix string, defvalue int) int {
	env := os.Getenv(e.varname(suffix))

	if env == "" {
		return defvalue
	}

	v, err := strconv.Atoi(env)
	if err != nil {
		return defvalue
	}

	return v
}

// GetBool accepts anything strconv.ParseBool does; other values give
// defvalue.
func (e *Env) GetBool(suffix string, defvalue bool) bool {
	env := os.Getenv(e.varname(suffix))

	if env == "" {
		return defvalue
	}

	v, err := strconv.ParseBool(strings.ToLower(env))
	if err != nil {
		return defvalue
	}

	return v
}
