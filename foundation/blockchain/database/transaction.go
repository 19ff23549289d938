package database

import (
	"fmt"
	"math"
)

// RewardSender is the sender recorded on the transaction that pays a node
// for mining a block.
const RewardSender = "0"

// =============================================================================

// Tx is the transactional information between two parties. There is no
// signature or balance checking, the parties are opaque identifiers.
type Tx struct {
	Sender    string  `json:"sender"`
	Recipient string  `json:"recipient"`
	Amount    float64 `json:"amount"`
}

// NewTx constructs a new transaction.
func NewTx(sender string, recipient string, amount float64) (Tx, error) {
	tx := Tx{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	}

	if err := tx.Validate(); err != nil {
		return Tx{}, err
	}

	return tx, nil
}

// NewRewardTx constructs the transaction paying the mining reward to the
// specified node.
func NewRewardTx(nodeID string, reward float64) Tx {
	return Tx{
		Sender:    RewardSender,
		Recipient: nodeID,
		Amount:    reward,
	}
}

// Validate performs the shape checks that keep the canonical encoding sane.
func (tx Tx) Validate() error {
	if tx.Sender == "" {
		return fmt.Errorf("transaction invalid, missing sender")
	}

	if tx.Recipient == "" {
		return fmt.Errorf("transaction invalid, missing recipient")
	}

	if math.IsNaN(tx.Amount) || math.IsInf(tx.Amount, 0) {
		return fmt.Errorf("transaction invalid, amount is not a number")
	}

	if tx.Amount < 0 {
		return fmt.Errorf("transaction invalid, negative amount %v", tx.Amount)
	}

	return nil
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s->%s:%v", tx.Sender, tx.Recipient, tx.Amount)
}

// canonical returns the map form of the transaction used for hashing.
func (tx Tx) canonical() map[string]any {
	return map[string]any{
		"sender":    tx.Sender,
		"recipient": tx.Recipient,
		"amount":    tx.Amount,
	}
}
