/* Copyright (c) 2021 David Bulkow */

package timerstart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dbulkow/timerstart/locale"
)

// FormatOptions carries the caller's display preference.
type FormatOptions struct {
	// Prefer24Hour prints clock times as "15:30" with no am/pm suffix.
	Prefer24Hour bool
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func missing(loc *locale.Locale, what, key string) error {
	return fmt.Errorf("locale %s has no %s %q", loc.Tag, what, key)
}

// fill replaces {name} placeholders of a display template.
func fill(tmpl string, kv ...string) string {
	pairs := make([]string, 0, len(kv))
	for i := 0; i+1 < len(kv); i += 2 {
		pairs = append(pairs, "{"+kv[i]+"}", kv[i+1])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// formatted returns s, or the variant name if rendering failed.
func formatted(s string, err error, variant string) string {
	if err != nil {
		return variant
	}
	return s
}

// Format renders the duration as "5 hours, 3 minutes". A zero duration
// renders as "0 seconds".
func (d DurationToken) Format(loc *locale.Locale, _ FormatOptions) string {
	s, err := d.format(loc)
	return formatted(s, err, "DurationToken")
}

func (d DurationToken) String() string {
	return d.Format(locale.Default(), FormatOptions{})
}

func (d DurationToken) format(loc *locale.Locale) (string, error) {
	if loc == nil {
		return "", argumentError("no locale")
	}
	if !d.IsValid() {
		return "", validityError("duration %+v out of range", durationFields(d))
	}

	tmpl, ok := loc.Template("clause")
	if !ok {
		return "", missing(loc, "template", "clause")
	}

	clause := func(unit string, v float64) (string, error) {
		name, ok := loc.Unit(unit, v == 1)
		if !ok {
			return "", missing(loc, "unit", unit)
		}
		return fill(tmpl, "n", loc.FormatNumber(v), "unit", name), nil
	}

	var clauses []string
	for _, f := range d.fields() {
		if f.value == 0 {
			continue
		}

		c, err := clause(f.unit, f.value)
		if err != nil {
			return "", err
		}
		clauses = append(clauses, c)
	}

	if len(clauses) == 0 {
		c, err := clause("seconds", 0)
		if err != nil {
			return "", err
		}
		clauses = append(clauses, c)
	}

	sep := loc.UnitSeparator
	if sep == "" {
		sep = " "
	}

	return strings.Join(clauses, sep), nil
}

// Format renders the time of day. Empty times render as "".
func (t TimeToken) Format(loc *locale.Locale, opts FormatOptions) string {
	s, err := t.format(loc, opts)
	return formatted(s, err, t.variant())
}

func (t TimeToken) String() string {
	return t.Format(locale.Default(), FormatOptions{})
}

func (t TimeToken) format(loc *locale.Locale, opts FormatOptions) (string, error) {
	if loc == nil {
		return "", argumentError("no locale")
	}
	if !t.IsValid() {
		return "", validityError("%s %+v out of range", t.variant(), timeFields(t))
	}

	switch t.Kind {
	case TimeEmpty:
		return "", nil

	case TimeSpecial:
		e, _ := lookupSpecialTime(t.Special)
		name, ok := loc.Lookup("special_time", e.group)
		if !ok {
			return "", missing(loc, "special time", e.group)
		}
		return name, nil
	}

	if opts.Prefer24Hour {
		hour := t.Hour
		switch t.Period {
		case PeriodAM:
			hour = t.Hour % 12
		case PeriodPM:
			hour = t.Hour%12 + 12
		}

		s := fmt.Sprintf("%02d:%02d", hour, t.Minute)
		if t.Second != 0 {
			s += fmt.Sprintf(":%02d", t.Second)
		}
		return s, nil
	}

	s := fmt.Sprintf("%d:%02d", t.Hour, t.Minute)
	if t.Second != 0 {
		s += fmt.Sprintf(":%02d", t.Second)
	}

	var key string
	switch {
	case t.IsMidnight():
		key = "midnight"
	case t.IsMidday():
		key = "midday"
	case t.Period == PeriodAM:
		key = "am"
	case t.Period == PeriodPM:
		key = "pm"
	default:
		return s, nil
	}

	suffix, ok := loc.Suffix(key)
	if !ok {
		return "", missing(loc, "suffix", key)
	}

	tmpl, ok := loc.Template("time_suffix")
	if !ok {
		return "", missing(loc, "template", "time_suffix")
	}

	return fill(tmpl, "time", s, "suffix", suffix), nil
}

// Format renders the date. Empty dates render as "".
func (d DateToken) Format(loc *locale.Locale, _ FormatOptions) string {
	s, err := d.format(loc)
	return formatted(s, err, d.variant())
}

func (d DateToken) String() string {
	return d.Format(locale.Default(), FormatOptions{})
}

func (d DateToken) format(loc *locale.Locale) (string, error) {
	if loc == nil {
		return "", argumentError("no locale")
	}
	if !d.IsValid() {
		return "", validityError("%s %+v out of range", d.variant(), dateFields(d))
	}

	lookup := func(table, key string) (string, error) {
		name, ok := loc.Lookup(table, key)
		if !ok {
			return "", missing(loc, table, key)
		}
		return name, nil
	}

	template := func(key string) (string, error) {
		tmpl, ok := loc.Template(key)
		if !ok {
			return "", missing(loc, "template", key)
		}
		return tmpl, nil
	}

	switch d.Kind {
	case DateEmpty:
		return "", nil

	case DateRelative:
		return lookup("relative_date", relativeGroups[d.Relative])

	case DateDayOfWeek:
		weekday, err := lookup("weekday", weekdayGroups[d.Weekday])
		if err != nil {
			return "", err
		}
		if d.Relation == RelationUndefined {
			return weekday, nil
		}

		relation, err := lookup("relation", relationGroups[d.Relation])
		if err != nil {
			return "", err
		}
		tmpl, err := template("relation_weekday")
		if err != nil {
			return "", err
		}
		return fill(tmpl, "relation", relation, "weekday", weekday), nil

	case DateNormal:
		month, err := lookup("month", monthGroups[d.Month-1])
		if err != nil {
			return "", err
		}

		key := "normal_date"
		if d.Year != 0 {
			key = "normal_date_year"
		}
		tmpl, err := template(key)
		if err != nil {
			return "", err
		}
		return fill(tmpl, "month", month, "day", strconv.Itoa(d.Day), "year", strconv.Itoa(d.Year)), nil

	case DateSpecial:
		e, _ := lookupSpecialDate(d.Special)
		return lookup("special_date", e.group)
	}

	return "", validityError("unknown date kind %d", d.Kind)
}

// Format renders the timer start so that parsing the result with the same
// locale gives a token with the same end time.
func (s TimerStart) Format(loc *locale.Locale, opts FormatOptions) string {
	str, err := s.format(loc, opts)
	return formatted(str, err, s.variant())
}

func (s TimerStart) String() string {
	return s.Format(locale.Default(), FormatOptions{})
}

func (s TimerStart) format(loc *locale.Locale, opts FormatOptions) (string, error) {
	if loc == nil {
		return "", argumentError("no locale")
	}
	if !s.IsValid() {
		return "", validityError("%s is not valid", s.variant())
	}

	if s.Kind == KindDuration {
		return s.Duration.format(loc)
	}

	date, err := s.Date.format(loc)
	if err != nil {
		return "", err
	}

	clock, err := s.Time.format(loc, opts)
	if err != nil {
		return "", err
	}

	switch {
	case date == "":
		return clock, nil
	case clock == "":
		return date, nil
	}

	tmpl, ok := loc.Template("date_time")
	if !ok {
		return "", missing(loc, "template", "date_time")
	}

	return fill(tmpl, "date", date, "time", clock), nil
}
