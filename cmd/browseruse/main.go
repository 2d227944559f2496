// Package main provides the browseruse command, an operator CLI that
// acquires a browser instance — by launching one, attaching to a remote
// endpoint, or reusing a locally running process — and holds it until
// interrupted.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "browseruse",
		Short: "Acquire and manage browser instances for automation",
		Long: "browseruse obtains a live browser instance for automation tooling: " +
			"launch a fresh one, reuse an instance already listening on the debug port, " +
			"or attach to a remote endpoint over CDP or WebSocket.",
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("browseruse %s (commit: %s, built: %s)\n", Version, Commit, BuildDate)
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newLaunchCmd())
	rootCmd.AddCommand(newAttachCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
