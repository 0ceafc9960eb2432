/* Copyright (c) 2021 David Bulkow */

package timerstart

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationEndTime(t *testing.T) {
	tests := []struct {
		name     string
		duration DurationToken
		now      string
		end      string
		error    bool
	}{
		{
			name:     "hours and minutes",
			duration: DurationToken{Hours: 5, Minutes: 3},
			end:      "2017-04-02 04:50:00 -0400 EDT",
		},
		{
			name:     "fractional hours",
			duration: DurationToken{Hours: 1.5},
			end:      "2017-04-02 01:17:00 -0400 EDT",
		},
		{
			name:     "half a day",
			duration: DurationToken{Days: 0.5},
			end:      "2017-04-02 11:47:00 -0400 EDT",
		},
		{
			name:     "weeks",
			duration: DurationToken{Weeks: 2},
			end:      "2017-04-15 23:47:00 -0400 EDT",
		},
		{
			name:     "month clamps to last day",
			duration: DurationToken{Months: 1},
			now:      "2017-01-31 10:00:00 -0500 EST",
			end:      "2017-02-28 10:00:00 -0500 EST",
		},
		{
			name:     "hours before months",
			duration: DurationToken{Months: 1, Hours: 2},
			now:      "2017-01-30 23:00:00 -0500 EST",
			end:      "2017-02-28 01:00:00 -0500 EST",
		},
		{
			name:     "year from leap day",
			duration: DurationToken{Years: 1},
			now:      "2016-02-29 12:00:00 -0500 EST",
			end:      "2017-02-28 12:00:00 -0500 EST",
		},
		{
			name:     "half a month",
			duration: DurationToken{Months: 0.5},
			now:      "2017-04-01 00:00:00 -0400 EDT",
			end:      "2017-04-16 00:00:00 -0400 EDT",
		},
		{
			name:     "zero",
			duration: DurationToken{},
			error:    true,
		},
		{
			name:     "negative",
			duration: DurationToken{Minutes: -5},
			error:    true,
		},
		{
			name:     "not a number",
			duration: DurationToken{Seconds: math.NaN()},
			error:    true,
		},
		{
			name:     "past year 9999",
			duration: DurationToken{Years: 9000},
			error:    true,
		},
		{
			name:     "too many months",
			duration: DurationToken{Months: 1e9},
			error:    true,
		},
		{
			name:     "too many hours",
			duration: DurationToken{Hours: 1e12},
			error:    true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			now := mustTime(t, tc.now)

			end, err := tc.duration.EndTime(now)
			if tc.error {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrValidity), "want validity error, got %v", err)
				return
			}

			require.NoError(t, err)
			assert.True(t, end.Equal(mustTime(t, tc.end)), "got %s, want %s", end, tc.end)
		})
	}
}

func TestDurationEndTimeAfterStart(t *testing.T) {
	now := mustTime(t, "")

	for _, d := range []DurationToken{
		{Seconds: 1},
		{Minutes: 0.01},
		{Days: 1},
		{Years: 1, Months: 1, Weeks: 1, Days: 1, Hours: 1, Minutes: 1, Seconds: 1},
	} {
		end, err := d.EndTime(now)
		require.NoError(t, err, "%+v", d)
		assert.True(t, end.After(now), "%+v ends at %s", d, end)
	}
}

func TestDurationIsValid(t *testing.T) {
	assert.True(t, DurationToken{}.IsValid())
	assert.True(t, DurationToken{Hours: 1.5}.IsValid())
	assert.False(t, DurationToken{Hours: -1}.IsValid())
	assert.False(t, DurationToken{Days: math.Inf(1)}.IsValid())
	assert.True(t, DurationToken{}.IsZero())
	assert.False(t, DurationToken{Seconds: 1}.IsZero())
}
