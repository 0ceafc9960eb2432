/* Copyright (c) 2021 David Bulkow */

package timerstart

import (
	"errors"
	"fmt"
)

type fault uint8

const (
	argumentFault fault = iota + 1
	formatFault
	validityFault
)

// Sentinels for errors.Is; every *Error matches exactly one of them.
var (
	ErrArgument = errors.New("invalid argument")
	ErrFormat   = errors.New("unrecognized timer start")
	ErrValidity = errors.New("invalid timer start")
)

// Error is returned by Parse and by the resolution methods.
type Error struct {
	msg   string
	kind  fault
	input string
	err   error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

// Argument reports a missing input or locale.
func (e *Error) Argument() bool { return e.kind == argumentFault }

// Format reports text that matched no grammar.
func (e *Error) Format() bool { return e.kind == formatFault }

// Validity reports a token whose fields are out of range, or that has no
// end time after the start time.
func (e *Error) Validity() bool { return e.kind == validityFault }

// Input returns the text given to Parse, if any.
func (e *Error) Input() string { return e.input }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrArgument:
		return e.Argument()
	case ErrFormat:
		return e.Format()
	case ErrValidity:
		return e.Validity()
	}
	return false
}

func argumentError(msg string) *Error {
	return &Error{msg: msg, kind: argumentFault}
}

func validityError(format string, args ...any) *Error {
	return &Error{msg: fmt.Sprintf(format, args...), kind: validityFault}
}

// Copies of the tokens without String methods, for messages. String goes
// through the checks that build these errors.
type (
	durationFields DurationToken
	dateFields     DateToken
	timeFields     TimeToken
)
