// Package cmd contains the ledger client commands.
package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	nodeURL string
	timeout time.Duration
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&nodeURL, "url", "u", "http://localhost:5000", "Url of the node.")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "How long to wait for the node.")
}

var rootCmd = &cobra.Command{
	Use:          "ledger",
	Short:        "Client for a ledger node",
	SilenceUsage: true,
}

// Execute runs the command line and exits with a failure status on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
