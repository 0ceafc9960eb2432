/* Copyright (c) 2021 David Bulkow */

package timerstart

import "time"

type DateKind uint8

const (
	DateEmpty DateKind = iota
	DateRelative
	DateDayOfWeek
	DateNormal
	DateSpecial
)

// RelativeDay is a date named relative to the reference instant.
type RelativeDay uint8

const (
	Today RelativeDay = iota + 1
	Tomorrow
)

// Relation qualifies a weekday: "friday", "this friday", "next friday".
type Relation uint8

const (
	RelationUndefined Relation = iota
	RelationThis
	RelationNext
)

// SpecialDate names a date that recurs every year.
type SpecialDate uint8

const (
	NewYearsDay SpecialDate = iota + 1
	ValentinesDay
	Halloween
	ChristmasEve
	ChristmasDay
	NewYearsEve
)

type specialDateEntry struct {
	id    SpecialDate
	group string // match group and resource key
	month time.Month
	day   int
}

var specialDates = []specialDateEntry{
	{id: NewYearsDay, group: "newyearsday", month: time.January, day: 1},
	{id: ValentinesDay, group: "valentinesday", month: time.February, day: 14},
	{id: Halloween, group: "halloween", month: time.October, day: 31},
	{id: ChristmasEve, group: "christmaseve", month: time.December, day: 24},
	{id: ChristmasDay, group: "christmasday", month: time.December, day: 25},
	{id: NewYearsEve, group: "newyearseve", month: time.December, day: 31},
}

func lookupSpecialDate(id SpecialDate) (specialDateEntry, bool) {
	for _, e := range specialDates {
		if e.id == id {
			return e, true
		}
	}
	return specialDateEntry{}, false
}

var relativeGroups = map[RelativeDay]string{
	Today:    "today",
	Tomorrow: "tomorrow",
}

var relationGroups = map[Relation]string{
	RelationThis: "this",
	RelationNext: "next",
}

// indexed by time.Weekday
var weekdayGroups = [...]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// indexed by time.Month - 1
var monthGroups = [...]string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// yearly dates are searched this many years ahead, enough to reach the
// next February 29
const occurrenceYears = 8

// DateToken is the date part of a timer start. Fields other than Kind are
// read according to Kind. Year 0 means no year was given.
type DateToken struct {
	Kind     DateKind     `cbor:"1,keyasint,omitempty"`
	Relative RelativeDay  `cbor:"2,keyasint,omitempty"`
	Weekday  time.Weekday `cbor:"3,keyasint,omitempty"`
	Relation Relation     `cbor:"4,keyasint,omitempty"`
	Day      int          `cbor:"5,keyasint,omitempty"`
	Month    int          `cbor:"6,keyasint,omitempty"`
	Year     int          `cbor:"7,keyasint,omitempty"`
	Special  SpecialDate  `cbor:"8,keyasint,omitempty"`
}

func EmptyDate() DateToken { return DateToken{Kind: DateEmpty} }

func RelativeDate(r RelativeDay) DateToken { return DateToken{Kind: DateRelative, Relative: r} }

func WeekdayDate(w time.Weekday, r Relation) DateToken {
	return DateToken{Kind: DateDayOfWeek, Weekday: w, Relation: r}
}

// NormalDate builds a calendar date; pass year 0 for the next occurrence.
func NormalDate(year, month, day int) DateToken {
	return DateToken{Kind: DateNormal, Year: year, Month: month, Day: day}
}

func NamedDate(s SpecialDate) DateToken { return DateToken{Kind: DateSpecial, Special: s} }

func (d DateToken) IsValid() bool {
	switch d.Kind {
	case DateEmpty:
		return true
	case DateRelative:
		_, ok := relativeGroups[d.Relative]
		return ok
	case DateDayOfWeek:
		return d.Weekday >= time.Sunday && d.Weekday <= time.Saturday && d.Relation <= RelationNext
	case DateNormal:
		if d.Year < 0 || d.Year > maxYear {
			return false
		}
		return dateValid(d.Year, d.Month, d.Day)
	case DateSpecial:
		_, ok := lookupSpecialDate(d.Special)
		return ok
	}
	return false
}

// ToDateTime returns the start of the first date the token names that
// falls on or after minDate's date when inclusive, after it otherwise.
func (d DateToken) ToDateTime(minDate time.Time, inclusive bool) (time.Time, error) {
	if !d.IsValid() {
		return time.Time{}, validityError("%s %+v out of range", d.variant(), dateFields(d))
	}

	base := midnight(minDate)

	switch d.Kind {
	case DateEmpty:
		if inclusive {
			return base, nil
		}
		return base.AddDate(0, 0, 1), nil

	case DateRelative:
		if d.Relative == Tomorrow {
			return base.AddDate(0, 0, 1), nil
		}
		if inclusive {
			return base, nil
		}
		return time.Time{}, validityError("today has passed")

	case DateDayOfWeek:
		delta := (int(d.Weekday) - int(base.Weekday()) + 7) % 7
		if d.Relation == RelationNext {
			if delta == 0 {
				delta = 7
			}
			delta += 7
		} else if delta == 0 && !inclusive {
			delta = 7
		}
		return base.AddDate(0, 0, delta), nil

	case DateNormal:
		return nextOccurrence(base, d.Year, time.Month(d.Month), d.Day, inclusive)

	case DateSpecial:
		e, _ := lookupSpecialDate(d.Special)
		return nextOccurrence(base, 0, e.month, e.day, inclusive)
	}

	return time.Time{}, validityError("unknown date kind %d", d.Kind)
}

// nextOccurrence finds month/day on or after base (after, when exclusive).
// A non-zero year pins the search to that year.
func nextOccurrence(base time.Time, year int, month time.Month, day int, inclusive bool) (time.Time, error) {
	first, last := base.Year(), base.Year()+occurrenceYears
	if year != 0 {
		first, last = year, year
	}

	for y := first; y <= last; y++ {
		if day > daysIn(month, y) {
			continue
		}

		c := time.Date(y, month, day, 0, 0, 0, 0, base.Location())
		if c.After(base) || (inclusive && c.Equal(base)) {
			return c, nil
		}
	}

	return time.Time{}, validityError("no %s %d after %s", month, day, base.Format(time.DateOnly))
}

func (d DateToken) variant() string {
	switch d.Kind {
	case DateEmpty:
		return "EmptyDateToken"
	case DateRelative:
		return "RelativeDateToken"
	case DateDayOfWeek:
		return "DayOfWeekDateToken"
	case DateNormal:
		return "NormalDateToken"
	case DateSpecial:
		return "SpecialDateToken"
	}
	return "DateToken"
}
