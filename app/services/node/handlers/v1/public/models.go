package public

import (
	"github.com/ardanlabs/ledger/business/sys/validate"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// newTx is what a client sends to queue a transaction. The amount is a
// pointer so a missing amount can be told apart from zero.
type newTx struct {
	Sender    string   `json:"sender" validate:"required"`
	Recipient string   `json:"recipient" validate:"required"`
	Amount    *float64 `json:"amount" validate:"required,gte=0"`
}

// Validate checks the data in the model is considered clean.
func (ntx newTx) Validate() error {
	return validate.Check(ntx)
}

func (ntx newTx) toTx() database.Tx {
	return database.Tx{
		Sender:    ntx.Sender,
		Recipient: ntx.Recipient,
		Amount:    *ntx.Amount,
	}
}

// newNodes is the set of peer addresses a client asks this node to track.
type newNodes struct {
	Nodes []string `json:"nodes" validate:"required,min=1,dive,required"`
}

// Validate checks the data in the model is considered clean.
func (nn newNodes) Validate() error {
	return validate.Check(nn)
}

// =============================================================================

type message struct {
	Message string `json:"message"`
}

type minedBlock struct {
	Message      string        `json:"message"`
	Index        uint64        `json:"index"`
	Transactions []database.Tx `json:"transactions"`
	Proof        uint64        `json:"proof"`
	PreviousHash string        `json:"previous_hash"`
}

type registered struct {
	Message    string   `json:"message"`
	TotalNodes []string `json:"total_nodes"`
}

type resolved struct {
	Message string           `json:"message"`
	Chain   []database.Block `json:"chain"`
}

type block struct {
	Hash string `json:"hash"`
	database.Block
}
