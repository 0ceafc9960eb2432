/* Copyright (c) 2021 David Bulkow */

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// set with -ldflags "-X main.GitHash=... -X main.BuildTime=..."
var (
	GitHash   = "unknown"
	BuildTime = "unknown"
)

func init() {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Display git hash and build data",
		Long:  "Display git hash and build data",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Git Commit Hash: %s\n", GitHash)
			fmt.Fprintf(cmd.OutOrStdout(), "Build Time:      %s\n", BuildTime)
		},
	}

	RootCmd.AddCommand(versionCmd)
}
