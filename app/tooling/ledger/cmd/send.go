package cmd

import (
	"net/http"

	"github.com/spf13/cobra"
)

var (
	sender    string
	recipient string
	amount    float64
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Queue a transaction for the next block",
	RunE: func(cmd *cobra.Command, args []string) error {
		tx := struct {
			Sender    string  `json:"sender"`
			Recipient string  `json:"recipient"`
			Amount    float64 `json:"amount"`
		}{
			Sender:    sender,
			Recipient: recipient,
			Amount:    amount,
		}

		return call(cmd, http.MethodPost, "/transactions/new", tx)
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&sender, "from", "f", "", "Sender of the transaction.")
	sendCmd.Flags().StringVarP(&recipient, "to", "t", "", "Recipient of the transaction.")
	sendCmd.Flags().Float64VarP(&amount, "amount", "a", 0, "Amount to send.")
	sendCmd.MarkFlagRequired("from")
	sendCmd.MarkFlagRequired("to")
}
