/* Copyright (c) 2021 David Bulkow */

// Package timerstart parses what a user types to start a timer ("5h3m",
// "15:30", "midnight", "tomorrow at noon") into a TimerStart, resolves it
// to an end time, and renders it back for display.
//
// Parsing is purely syntactic: a parsed token may still be out of range,
// which surfaces as an ErrValidity error from EndTime. Nothing in the
// package does I/O or keeps mutable global state; the reference instant
// and the 24-hour display preference are always passed in.
package timerstart

import "time"

type Kind uint8

const (
	KindDuration Kind = iota + 1
	KindDateTime
)

// TimerStart is the parsed form of a timer start: a duration, or a date
// and a time of day.
type TimerStart struct {
	Kind     Kind          `cbor:"1,keyasint"`
	Duration DurationToken `cbor:"2,keyasint"`
	Date     DateToken     `cbor:"3,keyasint"`
	Time     TimeToken     `cbor:"4,keyasint"`
}

func FromDuration(d DurationToken) TimerStart {
	return TimerStart{Kind: KindDuration, Duration: d}
}

func FromDateTime(d DateToken, t TimeToken) TimerStart {
	return TimerStart{Kind: KindDateTime, Date: d, Time: t}
}

func (s TimerStart) IsValid() bool {
	switch s.Kind {
	case KindDuration:
		return s.Duration.IsValid()
	case KindDateTime:
		if s.Date.Kind == DateEmpty && s.Time.Kind == TimeEmpty {
			return false
		}
		return s.Date.IsValid() && s.Time.IsValid()
	}
	return false
}

// EndTime resolves the timer start against the instant the timer starts.
func (s TimerStart) EndTime(start time.Time) (time.Time, error) {
	switch s.Kind {
	case KindDuration:
		return s.Duration.EndTime(start)
	case KindDateTime:
		return s.ToDateTime(start)
	}
	return time.Time{}, validityError("unknown timer start kind %d", s.Kind)
}

// ToDateTime returns the earliest instant strictly after minDate that the
// date and time name. The date is tried inclusively first (today counts);
// if the time on that date has already passed, the date is resolved again
// excluding today.
func (s TimerStart) ToDateTime(minDate time.Time) (time.Time, error) {
	if !s.IsValid() {
		return time.Time{}, validityError("%s is not valid", s.variant())
	}

	var cause error

	for _, inclusive := range []bool{true, false} {
		date, err := s.Date.ToDateTime(minDate, inclusive)
		if err != nil {
			cause = err
			continue
		}

		at, err := s.Time.ToDateTime(minDate, date)
		if err != nil {
			return time.Time{}, err
		}

		// an unmarked hour landing exactly on minDate still has its later
		// reading on the same date
		if !at.After(minDate) && s.Time.Kind == TimeNormal && s.Time.Period == PeriodUndefined {
			late := s.Time
			late.Period = PeriodPM
			if at, err = late.ToDateTime(minDate, date); err != nil {
				return time.Time{}, err
			}
		}

		if at.After(minDate) {
			return at, nil
		}
	}

	e := validityError("no time after %s", minDate.Format(time.RFC3339))
	e.err = cause
	return time.Time{}, e
}

func (s TimerStart) variant() string {
	switch s.Kind {
	case KindDuration:
		return "DurationToken"
	case KindDateTime:
		return "DateTimeToken"
	}
	return "TimerStartToken"
}
