/* Copyright (c) 2021 David Bulkow */

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbulkow/timerstart/internal/config"
	"github.com/dbulkow/timerstart/locale"
	"github.com/dbulkow/timerstart/timerstart"
)

var RootCmd = &cobra.Command{
	Use:   "timerstart",
	Short: "Parse timer start times",
	Long: `Parse and display timer start times such as "5h3m", "15:30",
"midnight" or "tomorrow at noon".

environment:
    TIMERSTART_CONFIG   config filename
                        TIMERSTART_CONFIG_VALUE
    TIMERSTART_LOCALE   language tag, e.g. en or de
    TIMERSTART_PREFER24 show times on the 24-hour clock
    TIMERSTART_HISTORY  log of recent inputs
    TIMERSTART_HISTORY_SIZE
                        entries kept in the log, 0 disables it
`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

var (
	confFile  string
	localeTag string
	prefer24  bool
	verbose   bool

	cfg    config.Config
	loc    *locale.Locale
	logger *slog.Logger
	parser *timerstart.Parser
)

func init() {
	confFile = config.NewEnv(config.EnvPrefix).Get(config.EnvConfig, config.ConfFile())

	RootCmd.Long = strings.ReplaceAll(RootCmd.Long, "TIMERSTART_CONFIG_VALUE", confFile)

	RootCmd.PersistentFlags().StringVar(&confFile, "config", confFile, "config file")
	RootCmd.PersistentFlags().StringVarP(&localeTag, "locale", "L", "", "language tag, overrides the config file")
	RootCmd.PersistentFlags().BoolVar(&prefer24, "24h", false, "show and read times on the 24-hour clock")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log parser decisions to stderr")
}

// setup resolves settings for every command: config file, then
// environment, then flags.
func setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	var err error

	cfg, err = config.Load(confFile)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("locale") {
		cfg.Locale = localeTag
	}
	if cmd.Flags().Changed("24h") {
		cfg.Prefer24Hour = prefer24
	}

	loc, err = locale.Load(cfg.Locale)
	if err != nil {
		return fmt.Errorf("locale %q: %w", cfg.Locale, err)
	}

	logger.Debug("settings", "config", confFile, "locale", loc.Tag, "prefer24", cfg.Prefer24Hour, "history", cfg.HistoryFile)

	parser = timerstart.NewParser(logger)

	return nil
}

func main() {
	err := RootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
