/* Copyright (c) 2021 David Bulkow */

// Package config holds the timerstart command settings.
//
// Settings come from, in increasing precedence: built in defaults, the
// config file, TIMERSTART_* environment variables, command line flags.
// The file is JSON and may carry // and /* */ comments and trailing commas.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/tidwall/jsonc"
)

const EnvPrefix = "TIMERSTART"

// environment variable suffixes
const (
	EnvLocale      = "LOCALE"
	EnvPrefer24    = "PREFER24"
	EnvHistory     = "HISTORY"
	EnvHistorySize = "HISTORY_SIZE"
	EnvConfig      = "CONFIG"
)

const DefaultHistorySize = 20

type Config struct {
	Locale       string `json:"locale"`
	Prefer24Hour bool   `json:"prefer24hour"`
	HistoryFile  string `json:"history,omitempty"`
	HistorySize  int    `json:"history_size"`
}

func home() string {
	if runtime.GOOS == "windows" {
		home := os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
		if home == "" {
			home = os.Getenv("USERPROFILE")
		}
		return home
	}
	return os.Getenv("HOME")
}

// ConfFile is the config file used when neither --config nor
// TIMERSTART_CONFIG name one.
func ConfFile() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(home(), ".timerstart.conf")
	}
	return filepath.Join(home(), ".config", "timerstart.conf")
}

// HistFile is the default log of recent inputs.
func HistFile() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(home(), ".timerstart.history")
	}
	return filepath.Join(home(), ".config", "timerstart.history")
}

func Defaults() Config {
	return Config{
		Locale:      "en",
		HistoryFile: HistFile(),
		HistorySize: DefaultHistorySize,
	}
}

// Read returns the defaults overlaid with the config file. A missing file
// is not an error.
func Read(filename string) (Config, error) {
	cfg := Defaults()

	b, err := os.ReadFile(filename)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("unable to read config data: %w", err)
	default:
		if err := json.Unmarshal(jsonc.ToJSON(b), &cfg); err != nil {
			return Config{}, fmt.Errorf("unable to parse config %s: %w", filename, err)
		}
	}

	if cfg.HistorySize < 0 {
		return Config{}, fmt.Errorf("history_size %d is negative", cfg.HistorySize)
	}

	return cfg, nil
}

// Load is Read followed by the TIMERSTART_* environment.
func Load(filename string) (Config, error) {
	cfg, err := Read(filename)
	if err != nil {
		return Config{}, err
	}

	cfg.ApplyEnv(NewEnv(EnvPrefix))

	return cfg, nil
}

// ApplyEnv overrides fields with any variables set in e. A negative
// history size is ignored.
func (c *Config) ApplyEnv(e *Env) {
	c.Locale = e.Get(EnvLocale, c.Locale)
	c.Prefer24Hour = e.GetBool(EnvPrefer24, c.Prefer24Hour)
	c.HistoryFile = e.Get(EnvHistory, c.HistoryFile)

	if n := e.GetInt(EnvHistorySize, c.HistorySize); n >= 0 {
		c.HistorySize = n
	}
}

// Save writes the config beside filename and renames it into place.
func (c Config) Save(filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0700); err != nil {
		return fmt.Errorf("unable to create config directory: %w", err)
	}

	newfile := filename + "-"

	file, err := os.Create(newfile)
	if err != nil {
		return fmt.Errorf("unable to write config data: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "    ")
	if err := enc.Encode(&c); err != nil {
		return fmt.Errorf("unable to marshal config data: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("unable to write config data: %w", err)
	}

	return os.Rename(newfile, filename)
}
