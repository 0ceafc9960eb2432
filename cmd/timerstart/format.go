/* Copyright (c) 2021 David Bulkow */

package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbulkow/timerstart/locale"
	"github.com/dbulkow/timerstart/timerstart"
)

var (
	formatTo   string
	formatCBOR string
)

func init() {
	formatCmd := &cobra.Command{
		Use:     "format [<timer start>]",
		Aliases: []string{"fmt"},
		Short:   "Show a timer start in canonical form",
		Long: `Show a timer start in canonical form

The input is read in the --locale language and shown in the --to
language, so "tomorrow at noon" --to de shows "morgen um Mittag".
A timer start encoded by "parse --cbor" can be given with --cbor instead.
`,
		RunE: format,
	}

	formatCmd.Flags().StringVar(&formatTo, "to", "", "language tag to display in (default --locale)")
	formatCmd.Flags().StringVar(&formatCBOR, "cbor", "", "hex encoded timer start")

	RootCmd.AddCommand(formatCmd)
}

func format(cmd *cobra.Command, args []string) error {
	var (
		start timerstart.TimerStart
		err   error
	)

	switch {
	case formatCBOR != "" && len(args) > 0:
		return errors.New("give either a timer start or --cbor, not both")

	case formatCBOR != "":
		b, err := hex.DecodeString(formatCBOR)
		if err != nil {
			return fmt.Errorf("--cbor: %w", err)
		}
		start, err = timerstart.Unmarshal(b)
		if err != nil {
			return err
		}

	case len(args) > 0:
		start, err = parser.Parse(strings.Join(args, " "), loc, timerstart.ParseOptions{Prefer24Hour: cfg.Prefer24Hour})
		if err != nil {
			return err
		}

	default:
		return errors.New("nothing to format")
	}

	to := loc
	if formatTo != "" {
		to, err = locale.Load(formatTo)
		if err != nil {
			return fmt.Errorf("--to %q: %w", formatTo, err)
		}
	}

	if !start.IsValid() {
		logger.Warn("timer start is not valid", "start", fmt.Sprintf("%+v", start))
	}

	fmt.Fprintln(cmd.OutOrStdout(), start.Format(to, timerstart.FormatOptions{Prefer24Hour: cfg.Prefer24Hour}))

	return nil
}
