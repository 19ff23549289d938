// Package database handles the lower level support for maintaining the
// blockchain in memory. Nothing is persisted across restarts.
package database

import (
	"sync"
)

// Database manages the ordered set of blocks that make up the chain. Blocks
// are only ever appended or the whole chain is replaced.
type Database struct {
	mu     sync.RWMutex
	blocks []Block
}

// New constructs a new database holding only the specified genesis block.
func New(genesisBlock Block) *Database {
	return &Database{
		blocks: []Block{genesisBlock},
	}
}

// Write adds a new block to the end of the chain.
func (db *Database) Write(block Block) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.blocks = append(db.blocks, block)
}

// Replace substitutes the entire chain with the specified blocks.
func (db *Database) Replace(blocks []Block) error {
	if len(blocks) == 0 {
		return ErrEmptyChain
	}

	chain := make([]Block, len(blocks))
	copy(chain, blocks)

	db.mu.Lock()
	defer db.mu.Unlock()

	db.blocks = chain

	return nil
}

// LatestBlock returns the most recently appended block.
func (db *Database) LatestBlock() Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	// The genesis block is written on construction and Replace refuses an
	// empty chain, so this can only happen through a zero value Database.
	if len(db.blocks) == 0 {
		panic(ErrEmptyChain)
	}

	return db.blocks[len(db.blocks)-1]
}

// Length returns the number of blocks in the chain.
func (db *Database) Length() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return len(db.blocks)
}

// Copy returns a copy of the chain.
func (db *Database) Copy() []Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	blocks := make([]Block, len(db.blocks))
	copy(blocks, db.blocks)

	return blocks
}

// GetBlock returns the block with the specified index.
func (db *Database) GetBlock(index uint64) (Block, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if index == 0 || index > uint64(len(db.blocks)) {
		return Block{}, false
	}

	return db.blocks[index-1], true
}
