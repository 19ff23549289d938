package state

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// AddTransaction places a new transaction into the mempool and returns the
// index of the block it is expected to be placed in. That is a promise
// about the next block, not a guarantee.
func (s *State) AddTransaction(tx database.Tx) (uint64, error) {
	if err := tx.Validate(); err != nil {
		return 0, err
	}

	// The pool and the latest block are read together so the promised
	// index matches the block the next drain will produce.
	s.mu.Lock()
	s.mempool.Add(tx)
	index := s.db.LatestBlock().Index + 1
	s.mu.Unlock()

	s.evHandler("state: AddTransaction: tx[%s]: blk[%d]", tx, index)

	if s.autoMine {
		s.Worker.SignalStartMining()
	}

	return index, nil
}
