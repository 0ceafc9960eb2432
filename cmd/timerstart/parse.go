/* Copyright (c) 2021 David Bulkow */

package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dbulkow/timerstart/internal/history"
	"github.com/dbulkow/timerstart/timerstart"
)

const displayTime = "2006-01-02 15:04:05 -0700 MST"

var (
	nowFlag   string
	showCBOR  bool
	noHistory bool
)

func init() {
	parseCmd := &cobra.Command{
		Use:     "parse <timer start>",
		Aliases: []string{"p"},
		Short:   "Parse a timer start and show its end time",
		Long: `Parse a timer start and show its end time

A timer start is a duration ("5h3m", "90", "1 hour and 30 minutes") or a
date and time of day ("15:30", "3pm", "noon", "tomorrow at noon",
"next friday", "christmas eve at 6pm"). A bare number is minutes.

The end time is the first instant after now that the input names. Accepted
inputs are added to the recent list.
`,
		Args: cobra.MinimumNArgs(1),
		RunE: parse,
	}

	parseCmd.Flags().StringVar(&nowFlag, "now", "", "resolve against this time instead of the current time")
	parseCmd.Flags().BoolVar(&showCBOR, "cbor", false, "show the encoded timer start in hex")
	parseCmd.Flags().BoolVar(&noHistory, "no-history", false, "do not add to the recent list")

	RootCmd.AddCommand(parseCmd)
}

var nowLayouts = []string{
	time.RFC3339,
	displayTime,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func parseNow(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}

	for _, layout := range nowLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("--now %q: expected a time like %q", s, displayTime)
}

func parse(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	input := strings.Join(args, " ")

	now, err := parseNow(nowFlag)
	if err != nil {
		return err
	}

	start, err := parser.Parse(input, loc, timerstart.ParseOptions{Prefer24Hour: cfg.Prefer24Hour})
	if err != nil {
		return err
	}

	display := start.Format(loc, timerstart.FormatOptions{Prefer24Hour: cfg.Prefer24Hour})

	fmt.Fprintf(out, "input:   %s\n", input)
	fmt.Fprintf(out, "display: %s\n", display)

	if showCBOR {
		b, err := timerstart.Marshal(start)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "cbor:    %s\n", hex.EncodeToString(b))
	}

	end, err := start.EndTime(now)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "end:     %s\n", end.Format(displayTime))
	fmt.Fprintf(out, "in:      %s\n", end.Sub(now).Round(time.Second))

	if noHistory || cfg.HistorySize == 0 || cfg.HistoryFile == "" {
		return nil
	}

	return remember(history.Entry{
		Input:   input,
		Locale:  loc.Tag,
		Display: display,
		End:     end,
	})
}

func remember(e history.Entry) error {
	h, err := history.Open(cfg.HistoryFile)
	if err != nil {
		return fmt.Errorf("recent list: %w", err)
	}

	e, err = h.Add(e)
	switch {
	case errors.Is(err, history.ErrTooLarge):
		logger.Warn("input not added to the recent list", "error", err)
		return nil
	case err != nil:
		return fmt.Errorf("recent list: %w", err)
	}

	logger.Debug("remembered", "id", e.ID, "input", e.Input)

	return h.Compact(cfg.HistorySize)
}
