/* Copyright (c) 2021 David Bulkow */

package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dbulkow/timerstart/internal/history"
)

var (
	recentCount  int
	recentClear  bool
	recentDelete string
	recentLong   bool
)

func init() {
	recentCmd := &cobra.Command{
		Use:     "recent",
		Aliases: []string{"ls"},
		Short:   "List recently parsed timer starts",
		Long: `List recently parsed timer starts, newest first

Each input is listed once. The list keeps at most history_size entries
(config file) and is stored in TIMERSTART_HISTORY.
`,
		Args: cobra.NoArgs,
		RunE: recent,
	}

	recentCmd.Flags().IntVarP(&recentCount, "count", "n", 0, "number of entries (default history_size)")
	recentCmd.Flags().BoolVar(&recentClear, "clear", false, "empty the list")
	recentCmd.Flags().StringVar(&recentDelete, "delete", "", "remove the entry with this id")
	recentCmd.Flags().BoolVarP(&recentLong, "long", "l", false, "show ids and end times")

	RootCmd.AddCommand(recentCmd)
}

func recent(cmd *cobra.Command, args []string) error {
	if cfg.HistoryFile == "" {
		return errors.New("no history file configured")
	}

	h, err := history.Open(cfg.HistoryFile)
	if err != nil {
		return fmt.Errorf("recent list: %w", err)
	}

	switch {
	case recentClear:
		return h.Clear()

	case recentDelete != "":
		id, err := uuid.Parse(recentDelete)
		if err != nil {
			return fmt.Errorf("--delete: %w", err)
		}
		return h.Delete(id)
	}

	n := recentCount
	if n <= 0 {
		n = cfg.HistorySize
	}

	entries, err := h.Recent(n)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	for _, e := range entries {
		if recentLong {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Locale, e.Input, e.Display, e.End.Format(displayTime))
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", e.Input, e.Display)
	}

	return nil
}
