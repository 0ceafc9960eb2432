/* Copyright (c) 2021 David Bulkow */

package timerstart

import "time"

type TimeKind uint8

const (
	TimeEmpty TimeKind = iota
	TimeSpecial
	TimeNormal
)

// Period is the half of the day of a 12-hour clock reading.
type Period uint8

const (
	PeriodUndefined Period = iota
	PeriodAM
	PeriodPM
)

func (p Period) String() string {
	switch p {
	case PeriodUndefined:
		return "undefined"
	case PeriodAM:
		return "am"
	case PeriodPM:
		return "pm"
	default:
		return "unknown"
	}
}

// SpecialTime names a fixed wall clock instant.
type SpecialTime uint8

const (
	Midday SpecialTime = iota + 1
	Midnight
)

type specialTimeEntry struct {
	id     SpecialTime
	group  string // match group and resource key
	hour   int
	minute int
	second int
}

var specialTimes = []specialTimeEntry{
	{id: Midday, group: "midday", hour: 12},
	{id: Midnight, group: "midnight", hour: 0},
}

func lookupSpecialTime(id SpecialTime) (specialTimeEntry, bool) {
	for _, e := range specialTimes {
		if e.id == id {
			return e, true
		}
	}
	return specialTimeEntry{}, false
}

// TimeToken is the time-of-day part of a timer start. Hour is on a 12-hour
// clock (1-12) for TimeNormal.
type TimeToken struct {
	Kind    TimeKind    `cbor:"1,keyasint,omitempty"`
	Hour    int         `cbor:"2,keyasint,omitempty"`
	Minute  int         `cbor:"3,keyasint,omitempty"`
	Second  int         `cbor:"4,keyasint,omitempty"`
	Period  Period      `cbor:"5,keyasint,omitempty"`
	Special SpecialTime `cbor:"6,keyasint,omitempty"`
}

func EmptyTime() TimeToken { return TimeToken{Kind: TimeEmpty} }

func NormalTime(hour, minute, second int, period Period) TimeToken {
	return TimeToken{Kind: TimeNormal, Hour: hour, Minute: minute, Second: second, Period: period}
}

func NamedTime(s SpecialTime) TimeToken { return TimeToken{Kind: TimeSpecial, Special: s} }

func (t TimeToken) IsValid() bool {
	switch t.Kind {
	case TimeEmpty:
		return true
	case TimeSpecial:
		_, ok := lookupSpecialTime(t.Special)
		return ok
	case TimeNormal:
		return t.Hour >= 1 && t.Hour <= 12 &&
			t.Minute >= 0 && t.Minute <= 59 &&
			t.Second >= 0 && t.Second <= 59 &&
			t.Period <= PeriodPM
	}
	return false
}

func (t TimeToken) IsMidnight() bool {
	return t.Kind == TimeNormal && t.Hour == 12 && t.Minute == 0 && t.Second == 0 && t.Period == PeriodAM
}

func (t TimeToken) IsMidday() bool {
	return t.Kind == TimeNormal && t.Hour == 12 && t.Minute == 0 && t.Second == 0 && t.Period == PeriodPM
}

// ToDateTime places the time on the date of datePart.
//
// A normal time with no period is read as the earlier of its two 12-hour
// readings unless that is before minDate. A special time is placed as is;
// rolling the date forward is the caller's job.
func (t TimeToken) ToDateTime(minDate, datePart time.Time) (time.Time, error) {
	if !t.IsValid() {
		return time.Time{}, validityError("%s %+v out of range", t.variant(), timeFields(t))
	}

	y, m, d := datePart.Date()
	at := func(hour, minute, second int) time.Time {
		return time.Date(y, m, d, hour, minute, second, 0, datePart.Location())
	}

	switch t.Kind {
	case TimeEmpty:
		return at(0, 0, 0), nil
	case TimeSpecial:
		e, _ := lookupSpecialTime(t.Special)
		return at(e.hour, e.minute, e.second), nil
	}

	early := at(t.Hour%12, t.Minute, t.Second)
	late := at(t.Hour%12+12, t.Minute, t.Second)

	switch t.Period {
	case PeriodAM:
		return early, nil
	case PeriodPM:
		return late, nil
	}

	if early.Before(minDate) {
		return late, nil
	}
	return early, nil
}

func (t TimeToken) variant() string {
	switch t.Kind {
	case TimeEmpty:
		return "EmptyTimeToken"
	case TimeSpecial:
		return "SpecialTimeToken"
	case TimeNormal:
		return "NormalTimeToken"
	}
	return "TimeToken"
}
