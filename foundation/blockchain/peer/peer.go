// Package peer maintains the peer related information such as the set
// of know peers and the shape of the chain they report.
package peer

import (
	"errors"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// ErrInvalidAddress is returned when no host can be found in an address.
var ErrInvalidAddress = errors.New("address has no network location")

// Peer represents information about a Node in the network.
type Peer struct {
	Host string
}

// New contructs a new info value.
func New(host string) Peer {
	return Peer{
		Host: host,
	}
}

// Parse constructs a peer from a URL-like address. Only the host:port
// portion is kept, the scheme and path are discarded.
func Parse(address string) (Peer, error) {
	host, err := ParseHost(address)
	if err != nil {
		return Peer{}, err
	}

	return New(host), nil
}

// ParseHost extracts the network location from an address such as
// "http://192.168.0.5:5000/chain". A bare "192.168.0.5:5000" is accepted.
func ParseHost(address string) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", ErrInvalidAddress
	}

	if !strings.Contains(address, "://") {
		address = "http://" + address
	}

	u, err := url.Parse(address)
	if err != nil {
		return "", err
	}

	if u.Host == "" {
		return "", ErrInvalidAddress
	}

	return u.Host, nil
}

// Match validates if the specified host matches this node.
func (p Peer) Match(host string) bool {
	return p.Host == host
}

// String implements the fmt.Stringer interface for logging.
func (p Peer) String() string {
	return p.Host
}

// =============================================================================

// ChainResponse represents the chain a peer reports when asked.
type ChainResponse struct {
	Chain  []database.Block `json:"chain"`
	Length int              `json:"length"`
}

// =============================================================================

// PeerSet represents the data representation to maintain a set of known peers.
type PeerSet struct {
	mu  sync.RWMutex
	set map[Peer]struct{}
}

// NewPeerSet constructs a new info set to manage node peer information.
func NewPeerSet() *PeerSet {
	return &PeerSet{
		set: make(map[Peer]struct{}),
	}
}

// Add adds a new node to the set. It reports false when the peer was
// already known.
func (ps *PeerSet) Add(peer Peer) bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	_, exists := ps.set[peer]
	if !exists {
		ps.set[peer] = struct{}{}
		return true
	}

	return false
}

// Len returns the number of known peers.
func (ps *PeerSet) Len() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	return len(ps.set)
}

// Copy returns a list of the known peers sorted by host, excluding the
// specified host.
func (ps *PeerSet) Copy(host string) []Peer {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	peers := make([]Peer, 0, len(ps.set))
	for peer := range ps.set {
		if !peer.Match(host) {
			peers = append(peers, peer)
		}
	}

	sort.Slice(peers, func(i, j int) bool {
		return peers[i].Host < peers[j].Host
	})

	return peers
}
