package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/pow"
)

// ErrChainChanged is returned when the chain moved on while a proof was
// being searched for, making the solution stale.
var ErrChainChanged = errors.New("chain changed while mining, proof is stale")

// =============================================================================

// NewBlock forges a new block containing every transaction in the mempool
// and adds it to the chain. When prevHash is empty the hash of the current
// latest block is used. The proof is not verified, that is the caller's job.
func (s *State) NewBlock(proof uint64, prevHash string) database.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.appendBlock(proof, prevHash)
}

// MineNewBlock performs the proof of work against the latest block, pays
// this node the mining reward and adds the new block to the chain. The
// search can be cancelled through the context.
func (s *State) MineNewBlock(ctx context.Context) (database.Block, error) {
	s.evHandler("state: MineNewBlock: MINING: started")
	defer s.evHandler("state: MineNewBlock: MINING: completed")

	prevBlock := s.db.LatestBlock()

	s.evHandler("state: MineNewBlock: MINING: perform POW: prevBlk[%s]: lastProof[%d]", prevBlock, prevBlock.Proof)

	// The search runs outside the lock so transactions and peer chains
	// can still be accepted while we work.
	proof, err := pow.SearchContext(ctx, prevBlock.Proof)
	if err != nil {
		s.evHandler("state: MineNewBlock: MINING: CANCELLED")
		return database.Block{}, err
	}

	s.evHandler("state: MineNewBlock: MINING: SOLVED: proof[%d]", proof)

	s.mu.Lock()
	defer s.mu.Unlock()

	// A peer chain may have replaced ours or another block may have been
	// added while searching. The proof only makes sense on the block it
	// was searched against.
	prevHash := prevBlock.Hash()
	if s.db.LatestBlock().Hash() != prevHash {
		return database.Block{}, ErrChainChanged
	}

	// We must receive a reward for finding the proof.
	s.mempool.Add(database.NewRewardTx(s.nodeID, s.genesis.MiningReward))

	return s.appendBlock(proof, prevHash), nil
}

// =============================================================================

// appendBlock drains the mempool into a new block and writes it to the
// chain. The caller must hold the state mutex.
func (s *State) appendBlock(proof uint64, prevHash string) database.Block {

	// Hash the current latest block before anything is changed.
	if prevHash == "" {
		prevHash = s.db.LatestBlock().Hash()
	}

	index := uint64(s.db.Length()) + 1
	trans := s.mempool.Drain()

	block := database.NewBlock(index, trans, proof, prevHash)
	s.db.Write(block)

	s.evHandler("state: appendBlock: blk[%s]: numTrans[%d]", block, len(trans))
	s.blockEvent(block)

	return block
}

// blockEvent provides a specific event about a new block in the chain for
// application specific support.
func (s *State) blockEvent(block database.Block) {
	blockJSON, err := json.Marshal(block)
	if err != nil {
		blockJSON = []byte(fmt.Sprintf("%q", err.Error()))
	}

	s.evHandler(`viewer: block: {"hash":%q,"block":%s}`, block.Hash(), string(blockJSON))
}
