/* Copyright (c) 2021 David Bulkow */

package timerstart

import "time"

// latest year an end time may fall in
const maxYear = 9999

// months with 31 days
var months31 = map[time.Month]bool{
	time.January:  true,
	time.March:    true,
	time.May:      true,
	time.July:     true,
	time.August:   true,
	time.October:  true,
	time.December: true,
}

func isLeapYear(year int) bool {
	if year%4 == 0 {
		if year%100 == 0 {
			if year%400 == 0 {
				return true
			}
			return false
		}
		return true
	}
	return false
}

func daysIn(month time.Month, year int) int {
	if month == time.February {
		if isLeapYear(year) {
			return 29
		}
		return 28
	}
	if months31[month] {
		return 31
	}
	return 30
}

// dateValid checks a day of month. A zero year means any year, which lets
// February 29 through.
func dateValid(year, month, day int) bool {
	if month < 1 || month > 12 {
		return false
	}
	if day < 1 {
		return false
	}
	if year == 0 {
		return day <= daysIn(time.Month(month), 2000)
	}
	return day <= daysIn(time.Month(month), year)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// shiftMonths moves t by n calendar months, clamping the day to the last
// day of the target month.
func shiftMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())

	if last := daysIn(first.Month(), first.Year()); d > last {
		d = last
	}

	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
