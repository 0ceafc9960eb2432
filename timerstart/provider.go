/* Copyright (c) 2021 David Bulkow */

package timerstart

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/dbulkow/timerstart/locale"
)

// ParseOptions carries the caller's display preference into the grammars
// that depend on it.
type ParseOptions struct {
	// Prefer24Hour reads an unsuffixed "hh:mm" on the 24-hour clock.
	Prefer24Hour bool
}

type buildFunc[T any] func(m *regexp2.Match, loc *locale.Locale, opts ParseOptions) (T, error)

// provider supplies the grammar of one token variant and builds the token
// from a match. Providers are package level values and never change.
type provider[T any] struct {
	name     string
	grammar  string // locale grammar name, "" for the empty fragment
	excludes string // provider this one may not be paired with
	build    buildFunc[T]
}

func (p provider[T]) patterns(loc *locale.Locale) []string {
	if p.grammar == "" {
		return []string{""}
	}
	return loc.Grammar(p.grammar)
}

func (p provider[T]) compatibleWith(name string) bool {
	return p.excludes != name
}

var durationProvider = provider[DurationToken]{
	name:    "Duration",
	grammar: "duration",
	build:   buildDuration,
}

// indexed by DateKind, tried in this order
var dateProviders = [...]provider[DateToken]{
	DateEmpty: {
		name:     "EmptyDate",
		excludes: "EmptyTime",
		build: func(*regexp2.Match, *locale.Locale, ParseOptions) (DateToken, error) {
			return EmptyDate(), nil
		},
	},
	DateRelative:  {name: "RelativeDate", grammar: "relative_date", build: buildRelativeDate},
	DateDayOfWeek: {name: "DayOfWeekDate", grammar: "day_of_week_date", build: buildDayOfWeekDate},
	DateNormal:    {name: "NormalDate", grammar: "normal_date", build: buildNormalDate},
	DateSpecial:   {name: "SpecialDate", grammar: "special_date", build: buildSpecialDate},
}

// indexed by TimeKind, tried in this order
var timeProviders = [...]provider[TimeToken]{
	TimeEmpty: {
		name:     "EmptyTime",
		excludes: "EmptyDate",
		build: func(*regexp2.Match, *locale.Locale, ParseOptions) (TimeToken, error) {
			return EmptyTime(), nil
		},
	},
	TimeSpecial: {name: "SpecialTime", grammar: "special_time", build: buildSpecialTime},
	TimeNormal:  {name: "NormalTime", grammar: "normal_time", build: buildNormalTime},
}

// captures returns every capture of a named group, in input order.
func captures(m *regexp2.Match, name string) []string {
	g := m.GroupByName(name)
	if g == nil {
		return nil
	}

	out := make([]string, 0, len(g.Captures))
	for _, c := range g.Captures {
		out = append(out, c.String())
	}
	return out
}

// captured returns the last capture of a named group.
func captured(m *regexp2.Match, name string) (string, bool) {
	c := captures(m, name)
	if len(c) == 0 {
		return "", false
	}
	return c[len(c)-1], true
}

func matched(m *regexp2.Match, name string) bool {
	_, ok := captured(m, name)
	return ok
}

func capturedInt(m *regexp2.Match, name string) (int, bool, error) {
	s, ok := captured(m, name)
	if !ok {
		return 0, false, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, true, fmt.Errorf("%s %q: %w", name, s, err)
	}
	return n, true, nil
}

func (d *DurationToken) field(unit string) *float64 {
	switch unit {
	case "years":
		return &d.Years
	case "months":
		return &d.Months
	case "weeks":
		return &d.Weeks
	case "days":
		return &d.Days
	case "hours":
		return &d.Hours
	case "minutes":
		return &d.Minutes
	case "seconds":
		return &d.Seconds
	}
	return nil
}

// buildDuration sums every capture of each unit, so "1h1h" is two hours.
func buildDuration(m *regexp2.Match, loc *locale.Locale, _ ParseOptions) (DurationToken, error) {
	var d DurationToken

	for _, f := range d.fields() {
		sum := d.field(f.unit)

		for _, s := range captures(m, f.unit) {
			v, err := loc.ParseNumber(s)
			if err != nil {
				return DurationToken{}, fmt.Errorf("%s %q: %w", f.unit, s, err)
			}

			*sum += v
			if math.IsInf(*sum, 0) {
				return DurationToken{}, fmt.Errorf("%s overflow", f.unit)
			}
		}
	}

	return d, nil
}

func buildRelativeDate(m *regexp2.Match, _ *locale.Locale, _ ParseOptions) (DateToken, error) {
	for r, group := range relativeGroups {
		if matched(m, group) {
			return RelativeDate(r), nil
		}
	}
	return DateToken{}, errors.New("no relative date captured")
}

func buildDayOfWeekDate(m *regexp2.Match, _ *locale.Locale, _ ParseOptions) (DateToken, error) {
	relation := RelationUndefined
	for r, group := range relationGroups {
		if matched(m, group) {
			relation = r
		}
	}

	for w, group := range weekdayGroups {
		if matched(m, group) {
			return WeekdayDate(time.Weekday(w), relation), nil
		}
	}

	return DateToken{}, errors.New("no weekday captured")
}

func buildNormalDate(m *regexp2.Match, _ *locale.Locale, _ ParseOptions) (DateToken, error) {
	month, ok, err := capturedInt(m, "monthnum")
	if err != nil {
		return DateToken{}, err
	}
	if !ok {
		for i, group := range monthGroups {
			if matched(m, group) {
				month = i + 1
			}
		}
	}
	if month == 0 {
		return DateToken{}, errors.New("no month captured")
	}

	day, ok, err := capturedInt(m, "day")
	if err != nil {
		return DateToken{}, err
	}
	if !ok {
		return DateToken{}, errors.New("no day captured")
	}

	year, _, err := capturedInt(m, "year")
	if err != nil {
		return DateToken{}, err
	}

	return NormalDate(year, month, day), nil
}

func buildSpecialDate(m *regexp2.Match, _ *locale.Locale, _ ParseOptions) (DateToken, error) {
	for _, e := range specialDates {
		if matched(m, e.group) {
			return NamedDate(e.id), nil
		}
	}
	return DateToken{}, errors.New("no special date captured")
}

func buildSpecialTime(m *regexp2.Match, _ *locale.Locale, _ ParseOptions) (TimeToken, error) {
	for _, e := range specialTimes {
		if matched(m, e.group) {
			return NamedTime(e.id), nil
		}
	}
	return TimeToken{}, errors.New("no special time captured")
}

// buildNormalTime reads a clock time. An explicit suffix keeps the hour as
// typed. Military times, and "hh:mm" when 24-hour display is preferred,
// are read on the 24-hour clock. Otherwise 0 is midnight, 13-23 are
// afternoon and 1-12 stay ambiguous.
func buildNormalTime(m *regexp2.Match, _ *locale.Locale, opts ParseOptions) (TimeToken, error) {
	hour, ok, err := capturedInt(m, "hour")
	if err != nil {
		return TimeToken{}, err
	}
	if !ok {
		return TimeToken{}, errors.New("no hour captured")
	}

	minute, hasMinute, err := capturedInt(m, "minute")
	if err != nil {
		return TimeToken{}, err
	}

	second, _, err := capturedInt(m, "second")
	if err != nil {
		return TimeToken{}, err
	}

	period := PeriodUndefined

	switch {
	case matched(m, "am"):
		period = PeriodAM
	case matched(m, "pm"):
		period = PeriodPM
	case matched(m, "military"), opts.Prefer24Hour && hasMinute:
		hour, period = from24(hour)
	case hour == 0:
		hour, period = 12, PeriodAM
	case hour >= 13 && hour <= 23:
		hour, period = hour-12, PeriodPM
	}

	return NormalTime(hour, minute, second, period), nil
}

// from24 converts a 24-hour clock hour. Out of range hours are returned
// unchanged for IsValid to reject.
func from24(hour int) (int, Period) {
	switch {
	case hour == 0:
		return 12, PeriodAM
	case hour >= 1 && hour <= 11:
		return hour, PeriodAM
	case hour == 12:
		return 12, PeriodPM
	case hour >= 13 && hour <= 23:
		return hour - 12, PeriodPM
	}
	return hour, PeriodUndefined
}
