package state

import (
	"context"
	"sync"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
)

// peerChain is the result of asking a single peer for its chain.
type peerChain struct {
	peer peer.Peer
	resp peer.ChainResponse
	err  error
}

// Resolve implements the longest valid chain rule. Every known peer is asked
// for its chain and the local chain is replaced when a peer holds a chain
// that is strictly longer and valid. Peers that can't be reached or send a
// bad chain are skipped. It reports whether the local chain was replaced.
func (s *State) Resolve(ctx context.Context) (bool, error) {
	s.evHandler("state: Resolve: started")
	defer s.evHandler("state: Resolve: completed")

	peers := s.RetrieveKnownPeers()

	// Ask all the peers at the same time. Each G owns one slot in the
	// results so no synchronization is needed beyond the WaitGroup.
	results := make([]peerChain, len(peers))

	var wg sync.WaitGroup
	wg.Add(len(peers))

	for i, pr := range peers {
		go func(i int, pr peer.Peer) {
			defer wg.Done()

			resp, err := s.NetRequestPeerChain(ctx, pr)
			results[i] = peerChain{peer: pr, resp: resp, err: err}
		}(i, pr)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return false, err
	}

	// The results are in the same host order as the peer list, so the
	// candidate picked here doesn't depend on which request finished first.
	maxLength := s.db.Length()
	var candidate []database.Block

	for _, res := range results {
		if res.err != nil {
			s.evHandler("state: Resolve: peer[%s]: WARNING: skipped: %s", res.peer, res.err)
			continue
		}

		if res.resp.Length <= maxLength {
			s.evHandler("state: Resolve: peer[%s]: length[%d] not longer than [%d]", res.peer, res.resp.Length, maxLength)
			continue
		}

		if err := database.ValidateChain(res.resp.Chain, s.evHandler); err != nil {
			s.evHandler("state: Resolve: peer[%s]: WARNING: invalid chain: %s", res.peer, err)
			continue
		}

		s.evHandler("state: Resolve: peer[%s]: candidate chain: length[%d]", res.peer, res.resp.Length)

		maxLength = res.resp.Length
		candidate = res.resp.Chain
	}

	if candidate == nil {
		s.evHandler("state: Resolve: our chain is authoritative")
		return false, nil
	}

	return s.replaceChain(candidate)
}

// replaceChain swaps in the specified chain if it is still longer than ours.
// Blocks may have been added while the peers were being queried.
func (s *State) replaceChain(blocks []database.Block) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(blocks) <= s.db.Length() {
		s.evHandler("state: replaceChain: local chain grew to [%d], candidate [%d] discarded", s.db.Length(), len(blocks))
		return false, nil
	}

	if err := s.db.Replace(blocks); err != nil {
		return false, err
	}

	s.evHandler("state: replaceChain: our chain was replaced: length[%d]", len(blocks))

	// Any mining in progress is working against a block that may no
	// longer be the latest.
	s.Worker.SignalCancelMining()

	return true, nil
}
