package state

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
)

// RegisterPeer parses the URL-like address and adds the network location to
// the set of known peers. It reports false when the peer was already known.
func (s *State) RegisterPeer(address string) (bool, error) {
	pr, err := peer.Parse(address)
	if err != nil {
		return false, err
	}

	// Don't add this running node to the known peer list.
	if pr.Match(s.host) {
		return false, nil
	}

	added := s.knownPeers.Add(pr)
	if added {
		s.evHandler("state: RegisterPeer: adding peer-node %s", pr)
	}

	return added, nil
}
