/* Copyright (c) 2021 David Bulkow */

package timerstart

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbulkow/timerstart/locale"
)

func mustLocale(t *testing.T, tag string) *locale.Locale {
	t.Helper()
	loc, err := locale.Load(tag)
	require.NoError(t, err, "locale %s", tag)
	return loc
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		locale  string
		args    string
		prefer  bool
		want    TimerStart
		invalid bool
		error   error
	}{
		{name: "compact", args: "5h3m", want: FromDuration(DurationToken{Hours: 5, Minutes: 3})},
		{name: "repeated unit summed", args: "1h1h", want: FromDuration(DurationToken{Hours: 2})},
		{name: "bare number is minutes", args: "90", want: FromDuration(DurationToken{Minutes: 90})},
		{name: "fractional minutes", args: "1.5", want: FromDuration(DurationToken{Minutes: 1.5})},
		{name: "military alone is minutes", args: "1530", want: FromDuration(DurationToken{Minutes: 1530})},
		{name: "surrounding space", args: "  5m  ", want: FromDuration(DurationToken{Minutes: 5})},
		{name: "compact months", args: "3mo 2w", want: FromDuration(DurationToken{Months: 3, Weeks: 2})},
		{name: "verbose", args: "5 hours 3 minutes", want: FromDuration(DurationToken{Hours: 5, Minutes: 3})},
		{name: "verbose and", args: "1 hour and 30 minutes", want: FromDuration(DurationToken{Hours: 1, Minutes: 30})},
		{name: "verbose comma", args: "2 days, 1 hour", want: FromDuration(DurationToken{Days: 2, Hours: 1})},
		{name: "verbose in", args: "in 2 days", want: FromDuration(DurationToken{Days: 2})},
		{name: "verbose caps", args: "10 MINUTES", want: FromDuration(DurationToken{Minutes: 10})},

		{name: "24 hour time", args: "15:30", want: FromDateTime(EmptyDate(), NormalTime(3, 30, 0, PeriodPM))},
		{name: "ambiguous time", args: "3:30", want: FromDateTime(EmptyDate(), NormalTime(3, 30, 0, PeriodUndefined))},
		{name: "seconds", args: "3:30:15 am", want: FromDateTime(EmptyDate(), NormalTime(3, 30, 15, PeriodAM))},
		{name: "short pm", args: "3pm", want: FromDateTime(EmptyDate(), NormalTime(3, 0, 0, PeriodPM))},
		{name: "short pm caps", args: "3 PM", want: FromDateTime(EmptyDate(), NormalTime(3, 0, 0, PeriodPM))},
		{name: "dotted am", args: "7 a.m.", want: FromDateTime(EmptyDate(), NormalTime(7, 0, 0, PeriodAM))},
		{name: "hour zero", args: "0:15", want: FromDateTime(EmptyDate(), NormalTime(12, 15, 0, PeriodAM))},
		{name: "twelve midnight", args: "12 midnight", want: FromDateTime(EmptyDate(), NormalTime(12, 0, 0, PeriodAM))},
		{name: "noon", args: "noon", want: FromDateTime(EmptyDate(), NamedTime(Midday))},
		{name: "midnight caps", args: "Midnight", want: FromDateTime(EmptyDate(), NamedTime(Midnight))},

		{name: "tomorrow", args: "tomorrow", want: FromDateTime(RelativeDate(Tomorrow), EmptyTime())},
		{name: "tomorrow at noon", args: "tomorrow at noon", want: FromDateTime(RelativeDate(Tomorrow), NamedTime(Midday))},
		{name: "noon tomorrow", args: "noon tomorrow", want: FromDateTime(RelativeDate(Tomorrow), NamedTime(Midday))},
		{name: "military beside a date", args: "tomorrow 1530", want: FromDateTime(RelativeDate(Tomorrow), NormalTime(3, 30, 0, PeriodPM))},
		{name: "next friday", args: "next friday", want: FromDateTime(WeekdayDate(time.Friday, RelationNext), EmptyTime())},
		{name: "friday at 3pm", args: "friday at 3pm", want: FromDateTime(WeekdayDate(time.Friday, RelationUndefined), NormalTime(3, 0, 0, PeriodPM))},
		{name: "3pm on friday", args: "3pm on fri", want: FromDateTime(WeekdayDate(time.Friday, RelationUndefined), NormalTime(3, 0, 0, PeriodPM))},
		{name: "year not military", args: "january 5 2027", want: FromDateTime(NormalDate(2027, 1, 5), EmptyTime())},
		{name: "month day time", args: "jan 5th at 8:15 pm", want: FromDateTime(NormalDate(0, 1, 5), NormalTime(8, 15, 0, PeriodPM))},
		{name: "day of month", args: "the 5th of may", want: FromDateTime(NormalDate(0, 5, 5), EmptyTime())},
		{name: "iso date", args: "2027-01-05 3pm", want: FromDateTime(NormalDate(2027, 1, 5), NormalTime(3, 0, 0, PeriodPM))},
		{name: "slash date", args: "12/24", want: FromDateTime(NormalDate(0, 12, 24), EmptyTime())},
		{name: "christmas eve", args: "christmas eve", want: FromDateTime(NamedDate(ChristmasEve), EmptyTime())},
		{name: "christmas at midnight", args: "Christmas at midnight", want: FromDateTime(NamedDate(ChristmasDay), NamedTime(Midnight))},
		{name: "new year's eve", args: "new year's eve", want: FromDateTime(NamedDate(NewYearsEve), EmptyTime())},

		{name: "suffix keeps hour", args: "15pm", want: FromDateTime(EmptyDate(), NormalTime(15, 0, 0, PeriodPM)), invalid: true},
		{name: "minute out of range", args: "3:75", want: FromDateTime(EmptyDate(), NormalTime(3, 75, 0, PeriodUndefined)), invalid: true},
		{name: "february 30", args: "feb 30", want: FromDateTime(NormalDate(0, 2, 30), EmptyTime()), invalid: true},

		{name: "prefer 24 morning", args: "9:30", prefer: true, want: FromDateTime(EmptyDate(), NormalTime(9, 30, 0, PeriodAM))},
		{name: "prefer 24 noon", args: "12:00", prefer: true, want: FromDateTime(EmptyDate(), NormalTime(12, 0, 0, PeriodPM))},
		{name: "prefer 24 midnight", args: "00:10", prefer: true, want: FromDateTime(EmptyDate(), NormalTime(12, 10, 0, PeriodAM))},
		{name: "prefer 24 suffix wins", args: "3:30 pm", prefer: true, want: FromDateTime(EmptyDate(), NormalTime(3, 30, 0, PeriodPM))},
		{name: "prefer 24 bare hour", args: "9 o'clock", prefer: true, want: FromDateTime(EmptyDate(), NormalTime(9, 0, 0, PeriodUndefined))},

		{name: "de duration", locale: "de", args: "5 Stunden 3 Minuten", want: FromDuration(DurationToken{Hours: 5, Minutes: 3})},
		{name: "de decimal comma", locale: "de", args: "1,5h", want: FromDuration(DurationToken{Hours: 1.5})},
		{name: "de tomorrow", locale: "de", args: "morgen um 15:30", want: FromDateTime(RelativeDate(Tomorrow), NormalTime(3, 30, 0, PeriodPM))},
		{name: "de midnight", locale: "de", args: "Mitternacht", want: FromDateTime(EmptyDate(), NamedTime(Midnight))},
		{name: "de next friday", locale: "de", args: "nächsten Freitag", want: FromDateTime(WeekdayDate(time.Friday, RelationNext), EmptyTime())},
		{name: "de numeric date", locale: "de", args: "24.12.2026", want: FromDateTime(NormalDate(2026, 12, 24), EmptyTime())},
		{name: "de short date", locale: "de", args: "24.12", want: FromDateTime(NormalDate(0, 12, 24), EmptyTime())},
		{name: "de short date trailing point", locale: "de", args: "24.12.", want: FromDateTime(NormalDate(0, 12, 24), EmptyTime())},
		{name: "de short date at time", locale: "de", args: "24.12. um 18 Uhr", want: FromDateTime(NormalDate(0, 12, 24), NormalTime(6, 0, 0, PeriodPM))},
		{name: "de point is not a decimal", locale: "de", args: "1.5h", error: ErrFormat},
		{name: "de uhr", locale: "de-AT", args: "am 5. Januar um 8 Uhr", want: FromDateTime(NormalDate(0, 1, 5), NormalTime(8, 0, 0, PeriodUndefined))},

		{name: "empty", args: "", error: ErrFormat},
		{name: "blank", args: "   ", error: ErrFormat},
		{name: "gibberish", args: "whenever", error: ErrFormat},
		{name: "negative", args: "-5m", error: ErrFormat},
		{name: "trailing text", args: "5h because", error: ErrFormat},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.locale == "" {
				tc.locale = "en"
			}
			loc := mustLocale(t, tc.locale)

			got, err := Parse(tc.args, loc, ParseOptions{Prefer24Hour: tc.prefer})
			if tc.error != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.error), "want %v, got %v", tc.error, err)

				var e *Error
				require.True(t, errors.As(err, &e))
				assert.Equal(t, tc.args, e.Input())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, !tc.invalid, got.IsValid())
		})
	}
}

func TestParseNoLocale(t *testing.T) {
	_, err := Parse("5m", nil, ParseOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrArgument))
}

func TestParseOverflowSkipsCandidate(t *testing.T) {
	loc := mustLocale(t, "en")

	// matches the bare minutes grammar but is out of float64 range
	_, err := Parse(strings.Repeat("9", 400), loc, ParseOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFormat))
	assert.NotNil(t, errors.Unwrap(err), "last candidate fault is kept")
}

func TestEmptyPairExcluded(t *testing.T) {
	for _, tag := range []string{"en", "de"} {
		t.Run(tag, func(t *testing.T) {
			p := NewParser(nil)
			g := p.grammar(mustLocale(t, tag))

			require.NoError(t, g.err)
			require.NotEmpty(t, g.candidates)

			for _, c := range g.candidates {
				assert.False(t, strings.Contains(c.name, "EmptyDate") && strings.Contains(c.name, "EmptyTime"), c.name)
			}

			assert.True(t, strings.HasPrefix(g.candidates[0].name, "Duration"), "duration grammars come first")
		})
	}
}

func TestCompatibility(t *testing.T) {
	empty := dateProviders[DateEmpty]
	assert.False(t, empty.compatibleWith(timeProviders[TimeEmpty].name))
	assert.False(t, timeProviders[TimeEmpty].compatibleWith(empty.name))
	assert.True(t, empty.compatibleWith(timeProviders[TimeNormal].name))
	assert.True(t, timeProviders[TimeEmpty].compatibleWith(dateProviders[DateRelative].name))
}

func TestParserCachesGrammar(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p := NewParser(logger)
	loc := mustLocale(t, "en")

	_, err := p.Parse("5m", loc, ParseOptions{})
	require.NoError(t, err)
	_, err = p.Parse("noon", loc, ParseOptions{})
	require.NoError(t, err)

	assert.Len(t, p.grammars, 1)
	assert.Equal(t, 1, strings.Count(buf.String(), "grammar compiled"))
	assert.Contains(t, buf.String(), "matched")
}

func TestMustParse(t *testing.T) {
	loc := mustLocale(t, "en")
	assert.Equal(t, FromDuration(DurationToken{Minutes: 5}), MustParse("5m", loc, ParseOptions{}))
	assert.Panics(t, func() { MustParse("whenever", loc, ParseOptions{}) })
}
