/* Copyright (c) 2021 David Bulkow */

package timerstart

import (
	"fmt"
	"math"
	"time"
)

// DurationToken is a relative timer start. Fields may be fractional.
type DurationToken struct {
	Years   float64 `cbor:"1,keyasint,omitempty"`
	Months  float64 `cbor:"2,keyasint,omitempty"`
	Weeks   float64 `cbor:"3,keyasint,omitempty"`
	Days    float64 `cbor:"4,keyasint,omitempty"`
	Hours   float64 `cbor:"5,keyasint,omitempty"`
	Minutes float64 `cbor:"6,keyasint,omitempty"`
	Seconds float64 `cbor:"7,keyasint,omitempty"`
}

type durationField struct {
	unit  string
	value float64
}

// fields lists the units largest first, the display order.
func (d DurationToken) fields() []durationField {
	return []durationField{
		{"years", d.Years},
		{"months", d.Months},
		{"weeks", d.Weeks},
		{"days", d.Days},
		{"hours", d.Hours},
		{"minutes", d.Minutes},
		{"seconds", d.Seconds},
	}
}

func (d DurationToken) IsValid() bool {
	for _, f := range d.fields() {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			return false
		}
	}
	return true
}

// IsZero reports whether every field is zero.
func (d DurationToken) IsZero() bool {
	return d == DurationToken{}
}

// EndTime adds the duration to start, smallest unit first: seconds,
// minutes, hours, days, weeks, months, years. Month and year steps clamp to
// the last day of the month they land in, so the order decides which day
// of the month results.
func (d DurationToken) EndTime(start time.Time) (time.Time, error) {
	if !d.IsValid() {
		return time.Time{}, validityError("duration %+v out of range", durationFields(d))
	}

	steps := []struct {
		unit  string
		value float64
		add   func(time.Time, float64) (time.Time, error)
	}{
		{"seconds", d.Seconds, addElapsed(time.Second)},
		{"minutes", d.Minutes, addElapsed(time.Minute)},
		{"hours", d.Hours, addElapsed(time.Hour)},
		{"days", d.Days, addDays(1)},
		{"weeks", d.Weeks, addDays(7)},
		{"months", d.Months, addMonths(1)},
		{"years", d.Years, addMonths(12)},
	}

	end := start
	for _, s := range steps {
		if s.value == 0 {
			continue
		}

		var err error
		end, err = s.add(end, s.value)
		if err != nil {
			e := validityError("adding %s %s", formatFloat(s.value), s.unit)
			e.err = err
			return time.Time{}, e
		}
	}

	if end.Year() > maxYear {
		return time.Time{}, validityError("end time after year %d", maxYear)
	}

	if !end.After(start) {
		return time.Time{}, validityError("end time %s is not after start time %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	return end, nil
}

// ~10000 years in days and months, past which no end time is representable
const (
	maxDays   = 366 * maxYear
	maxMonths = 12 * maxYear
)

func addElapsed(unit time.Duration) func(time.Time, float64) (time.Time, error) {
	return func(t time.Time, v float64) (time.Time, error) {
		ns := v * float64(unit)
		if ns >= math.MaxInt64 {
			return t, fmt.Errorf("%s exceeds %s", formatFloat(ns), time.Duration(math.MaxInt64))
		}
		return t.Add(time.Duration(ns)), nil
	}
}

// addDays adds whole calendar days, then the fraction as elapsed time.
func addDays(per float64) func(time.Time, float64) (time.Time, error) {
	return func(t time.Time, v float64) (time.Time, error) {
		total := v * per
		if total > maxDays {
			return t, fmt.Errorf("%s days out of range", formatFloat(total))
		}

		whole := math.Trunc(total)
		t = t.AddDate(0, 0, int(whole))

		if frac := total - whole; frac > 0 {
			t = t.Add(time.Duration(frac * float64(24*time.Hour)))
		}

		return t, nil
	}
}

// addMonths adds whole months clamped to the month's last day, then the
// fraction scaled by the length of the month landed in.
func addMonths(per float64) func(time.Time, float64) (time.Time, error) {
	return func(t time.Time, v float64) (time.Time, error) {
		total := v * per
		if total > maxMonths {
			return t, fmt.Errorf("%s months out of range", formatFloat(total))
		}

		whole := math.Trunc(total)
		t = shiftMonths(t, int(whole))

		if frac := total - whole; frac > 0 {
			days := float64(daysIn(t.Month(), t.Year()))
			t = t.Add(time.Duration(frac * days * float64(24*time.Hour)))
		}

		return t, nil
	}
}
