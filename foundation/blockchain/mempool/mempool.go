// Package mempool maintains the mempool for the blockchain.
package mempool

import (
	"sync"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// Mempool represents the ordered set of transactions waiting to be placed
// into the next block.
type Mempool struct {
	pool []database.Tx
	mu   sync.RWMutex
}

// New constructs a new, empty mempool.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transaction in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Add appends a transaction to the end of the pool and returns the new
// number of transactions in the pool.
func (mp *Mempool) Add(tx database.Tx) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(mp.pool, tx)

	return len(mp.pool)
}

// Drain returns every transaction in insertion order and leaves the pool
// empty. The returned slice is never nil.
func (mp *Mempool) Drain() []database.Tx {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	trans := mp.pool
	if trans == nil {
		trans = []database.Tx{}
	}
	mp.pool = nil

	return trans
}

// Copy returns the transactions currently in the pool.
func (mp *Mempool) Copy() []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	trans := make([]database.Tx, len(mp.pool))
	copy(trans, mp.pool)

	return trans
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = nil
}
