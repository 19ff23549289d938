package cmd

import (
	"net/http"
	"strconv"

	"github.com/spf13/cobra"
)

// mineCmd represents the mine command
var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine the pending transactions into a new block",
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd, http.MethodGet, "/mine", nil)
	},
}

// chainCmd represents the chain command
var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Show the full chain held by the node",
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd, http.MethodGet, "/chain", nil)
	},
}

// blockCmd represents the block command
var blockCmd = &cobra.Command{
	Use:   "block <index>",
	Short: "Show a single block and its hash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := strconv.ParseUint(args[0], 10, 64); err != nil {
			return err
		}
		return call(cmd, http.MethodGet, "/blocks/"+args[0], nil)
	},
}

func init() {
	rootCmd.AddCommand(mineCmd)
	rootCmd.AddCommand(chainCmd)
	rootCmd.AddCommand(blockCmd)
}
