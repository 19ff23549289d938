// Package state is the core API for the ledger and implements all the
// business rules and processing.
package state

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/blockchain/mempool"
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
)

// defaultPeerTimeout bounds a single request made to a peer.
const defaultPeerTimeout = 5 * time.Second

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of the ledger.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for mining and consensus resolution.
type Worker interface {
	Shutdown()
	SignalStartMining()
	SignalCancelMining()
}

// =============================================================================

// Config represents the configuration required to start
// the ledger node.
type Config struct {
	NodeID      string
	Host        string
	Genesis     genesis.Genesis
	KnownPeers  *peer.PeerSet
	PeerTimeout time.Duration
	AutoMine    bool
	EvHandler   EventHandler
}

// State manages the chain, the mempool and the set of known peers. The
// mutex makes the drain-and-append sequence and the consensus
// compare-and-replace single critical sections.
type State struct {
	mu sync.Mutex

	nodeID    string
	host      string
	autoMine  bool
	evHandler EventHandler

	genesis    genesis.Genesis
	knownPeers *peer.PeerSet
	mempool    *mempool.Mempool
	db         *database.Database
	client     *http.Client

	Worker Worker
}

// New constructs a new ledger and forges the genesis block.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	if cfg.Genesis.PreviousHash == "" {
		return nil, errors.New("genesis previous hash sentinel is required")
	}

	knownPeers := cfg.KnownPeers
	if knownPeers == nil {
		knownPeers = peer.NewPeerSet()
	}

	timeout := cfg.PeerTimeout
	if timeout <= 0 {
		timeout = defaultPeerTimeout
	}

	// The chain always starts with the genesis block so there is
	// always a latest block.
	genesisBlock := cfg.Genesis.Block()
	ev("state: New: genesis block forged: blk[%s]", genesisBlock)

	state := State{
		nodeID:    cfg.NodeID,
		host:      cfg.Host,
		autoMine:  cfg.AutoMine,
		evHandler: ev,

		genesis:    cfg.Genesis,
		knownPeers: knownPeers,
		mempool:    mempool.New(),
		db:         database.New(genesisBlock),
		client:     &http.Client{Timeout: timeout},

		Worker: noopWorker{},
	}

	// The Worker is set to a no-op value here. The call to worker.Run will
	// assign itself and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	// Stop all blockchain writing activity.
	s.Worker.Shutdown()

	return nil
}

// =============================================================================

// noopWorker is used until a real worker registers itself.
type noopWorker struct{}

func (noopWorker) Shutdown()           {}
func (noopWorker) SignalStartMining()  {}
func (noopWorker) SignalCancelMining() {}
