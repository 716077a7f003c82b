package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// These are populated at build time via -ldflags
var (
	Version    = "devel"
	CommitHash = "none"
)

func versionString() string {
	return fmt.Sprintf("%s (commit %s)", Version, CommitHash)
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		// version needs no config
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), programName+" "+versionString())
		},
	}
}
