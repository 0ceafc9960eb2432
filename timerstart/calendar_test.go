/* Copyright (c) 2021 David Bulkow */

package timerstart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	defaultNow = "2017-04-01 23:47:00 -0400 EDT" // a Saturday
	timeLayout = "2006-01-02 15:04:05 -0700 MST"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	if s == "" {
		s = defaultNow
	}
	tm, err := time.Parse(timeLayout, s)
	require.NoError(t, err, "time parse")
	return tm
}

func TestIsLeapYear(t *testing.T) {
	for year, want := range map[int]bool{
		1900: false,
		2000: true,
		2016: true,
		2017: false,
		2100: false,
		2400: true,
	} {
		assert.Equal(t, want, isLeapYear(year), "year %d", year)
	}
}

func TestDateValid(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
		valid            bool
	}{
		{name: "ordinary", year: 2017, month: 4, day: 30, valid: true},
		{name: "april 31", year: 2017, month: 4, day: 31},
		{name: "leap day", year: 2016, month: 2, day: 29, valid: true},
		{name: "no leap day", year: 2017, month: 2, day: 29},
		{name: "any year leap day", year: 0, month: 2, day: 29, valid: true},
		{name: "any year feb 30", year: 0, month: 2, day: 30},
		{name: "day zero", year: 2017, month: 1, day: 0},
		{name: "month 13", year: 2017, month: 13, day: 1},
		{name: "month zero", year: 2017, month: 0, day: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, dateValid(tc.year, tc.month, tc.day))
		})
	}
}

func TestShiftMonths(t *testing.T) {
	tests := []struct {
		name  string
		start string
		n     int
		want  string
	}{
		{name: "clamp to february", start: "2017-01-31 10:00:00 -0500 EST", n: 1, want: "2017-02-28 10:00:00 -0500 EST"},
		{name: "clamp to leap february", start: "2016-01-31 10:00:00 -0500 EST", n: 1, want: "2016-02-29 10:00:00 -0500 EST"},
		{name: "across year", start: "2017-11-30 08:15:00 -0500 EST", n: 3, want: "2018-02-28 08:15:00 -0500 EST"},
		{name: "no clamp", start: "2017-01-15 10:00:00 -0500 EST", n: 12, want: "2018-01-15 10:00:00 -0500 EST"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := shiftMonths(mustTime(t, tc.start), tc.n)
			assert.True(t, got.Equal(mustTime(t, tc.want)), "got %s, want %s", got, tc.want)
		})
	}
}
