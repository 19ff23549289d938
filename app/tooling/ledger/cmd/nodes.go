package cmd

import (
	"net/http"

	"github.com/spf13/cobra"
)

// registerCmd represents the register command
var registerCmd = &cobra.Command{
	Use:   "register <address>...",
	Short: "Register peer nodes with the node",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nodes := struct {
			Nodes []string `json:"nodes"`
		}{
			Nodes: args,
		}

		return call(cmd, http.MethodPost, "/nodes/register", nodes)
	},
}

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Run consensus against the known peers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd, http.MethodGet, "/nodes/resolve", nil)
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(resolveCmd)
}
