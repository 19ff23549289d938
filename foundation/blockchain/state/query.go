package state

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
)

// RetrieveLatestBlock returns the most recently added block.
func (s *State) RetrieveLatestBlock() database.Block {
	return s.db.LatestBlock()
}

// RetrieveChain returns a copy of the full chain.
func (s *State) RetrieveChain() []database.Block {
	return s.db.Copy()
}

// RetrieveBlock returns the block at the specified index.
func (s *State) RetrieveBlock(index uint64) (database.Block, bool) {
	return s.db.GetBlock(index)
}

// RetrieveMempool returns a copy of the pending transactions.
func (s *State) RetrieveMempool() []database.Tx {
	return s.mempool.Copy()
}

// RetrieveGenesis returns the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveKnownPeers retrieves a copy of the known peer list.
func (s *State) RetrieveKnownPeers() []peer.Peer {
	return s.knownPeers.Copy(s.host)
}

// RetrieveNodeID returns the identifier this node is paid under.
func (s *State) RetrieveNodeID() string {
	return s.nodeID
}

// RetrieveHost returns the host this node is reachable at.
func (s *State) RetrieveHost() string {
	return s.host
}

// QueryChainLength returns the number of blocks in the chain.
func (s *State) QueryChainLength() int {
	return s.db.Length()
}

// QueryMempoolLength returns the current length of the mempool.
func (s *State) QueryMempoolLength() int {
	return s.mempool.Count()
}
