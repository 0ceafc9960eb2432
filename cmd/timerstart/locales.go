/* Copyright (c) 2021 David Bulkow */

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbulkow/timerstart/locale"
)

func init() {
	localesCmd := &cobra.Command{
		Use:   "locales",
		Short: "List the languages timer starts can be written in",
		Long:  "List the languages timer starts can be written in; the current one is marked",
		Args:  cobra.NoArgs,
		RunE:  locales,
	}

	RootCmd.AddCommand(localesCmd)
}

func locales(cmd *cobra.Command, args []string) error {
	tags, err := locale.Available()
	if err != nil {
		return err
	}

	for _, tag := range tags {
		l, err := locale.Load(tag)
		if err != nil {
			return err
		}

		mark := " "
		if l == loc {
			mark = "*"
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %-4s %s\n", mark, l.Tag, l.Name)
	}

	return nil
}
