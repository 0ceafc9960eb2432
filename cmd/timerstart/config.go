/* Copyright (c) 2021 David Bulkow */

package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbulkow/timerstart/internal/config"
	"github.com/dbulkow/timerstart/locale"
)

var configShow bool

func init() {
	configCmd := &cobra.Command{
		Use:     "config",
		Aliases: []string{"cfg"},
		Short:   "Write or display configuration fields",
		Long: `Write or display configuration fields

Prompts for each field, showing the current value as the default. With
--show the settings in effect are printed instead.
`,
		Args: cobra.NoArgs,
		RunE: configure,
	}

	configCmd.Flags().BoolVar(&configShow, "show", false, "display the settings in effect")

	RootCmd.AddCommand(configCmd)
}

func configure(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if configShow {
		fmt.Fprintf(out, "config:       %s\n", confFile)
		fmt.Fprintf(out, "locale:       %s (%s)\n", cfg.Locale, loc.Name)
		fmt.Fprintf(out, "prefer24hour: %t\n", cfg.Prefer24Hour)
		fmt.Fprintf(out, "history:      %s\n", cfg.HistoryFile)
		fmt.Fprintf(out, "history_size: %d\n", cfg.HistorySize)
		return nil
	}

	// environment overrides are not written back
	saved, err := config.Read(confFile)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	ask := func(prompt, current string) string {
		fmt.Fprintf(out, "%s (default \"%s\"): ", prompt, current)
		text, _ := reader.ReadString('\n')
		text = strings.TrimSpace(text)
		if text == "" {
			return current
		}
		return text
	}

	tag := ask("Language     (en, de, ...)", saved.Locale)
	l, err := locale.Load(tag)
	if err != nil {
		return fmt.Errorf("language %q: %w", tag, err)
	}
	if l.Tag != tag {
		fmt.Fprintf(out, "using %s (%s)\n", l.Tag, l.Name)
	}
	saved.Locale = tag

	yes := ask("24-hour clock (y/n)", map[bool]string{true: "y", false: "n"}[saved.Prefer24Hour])
	switch strings.ToLower(yes) {
	case "y", "yes":
		saved.Prefer24Hour = true
	case "n", "no":
		saved.Prefer24Hour = false
	default:
		return fmt.Errorf("answer y or n, not %q", yes)
	}

	size := ask("Recent list length", strconv.Itoa(saved.HistorySize))
	saved.HistorySize, err = strconv.Atoi(size)
	if err != nil || saved.HistorySize < 0 {
		return fmt.Errorf("recent list length %q is not a count", size)
	}

	if err := saved.Save(confFile); err != nil {
		return err
	}

	fmt.Fprintf(out, "wrote %s\n", confFile)

	return nil
}
