package peer_test

import (
	"errors"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
)

func Test_CRUD(t *testing.T) {
	type table struct {
		name  string
		peers []peer.Peer
		exp   int
	}

	tt := []table{
		{
			name:  "basic",
			peers: []peer.Peer{{Host: "host1"}, {Host: "host2"}, {Host: "host3"}},
			exp:   3,
		},
		{
			name:  "duplicates",
			peers: []peer.Peer{{Host: "host1"}, {Host: "host2"}, {Host: "host2"}, {Host: "host1"}},
			exp:   2,
		},
	}

	for _, tst := range tt {
		f := func(t *testing.T) {
			ps := peer.NewPeerSet()

			for _, peer := range tst.peers {
				ps.Add(peer)
			}

			if ps.Len() != tst.exp {
				t.Logf("Test %s:\tgot: %d", tst.name, ps.Len())
				t.Logf("Test %s:\texp: %d", tst.name, tst.exp)
				t.Fatalf("Test %s:\tShould ignore duplicate peers.", tst.name)
			}

			peers := ps.Copy("")
			if len(peers) != tst.exp {
				t.Logf("Test %s:\tgot: %d", tst.name, len(peers))
				t.Logf("Test %s:\texp: %d", tst.name, tst.exp)
				t.Fatalf("Test %s:\tShould get back the right peers.", tst.name)
			}

			for i := 1; i < len(peers); i++ {
				if peers[i-1].Host >= peers[i].Host {
					t.Fatalf("Test %s:\tShould get back the peers sorted by host.", tst.name)
				}
			}

			peers = ps.Copy("host2")
			if len(peers) != tst.exp-1 {
				t.Logf("Test %s:\tgot: %d", tst.name, len(peers))
				t.Logf("Test %s:\texp: %d", tst.name, tst.exp-1)
				t.Fatalf("Test %s:\tShould get back the right peers.", tst.name)
			}

			if ps.Add(tst.peers[0]) {
				t.Fatalf("Test %s:\tShould report an existing peer as not added.", tst.name)
			}
		}

		t.Run(tst.name, f)
	}
}

func Test_ParseHost(t *testing.T) {
	type table struct {
		name    string
		address string
		host    string
		err     error
	}

	tt := []table{
		{name: "url", address: "http://192.168.0.5:5000", host: "192.168.0.5:5000"},
		{name: "url-path", address: "https://192.168.0.5:5000/v1/chain?x=1", host: "192.168.0.5:5000"},
		{name: "bare", address: "192.168.0.5:5000", host: "192.168.0.5:5000"},
		{name: "name", address: "node2:8080", host: "node2:8080"},
		{name: "empty", address: "   ", err: peer.ErrInvalidAddress},
		{name: "no-host", address: "http:///chain", err: peer.ErrInvalidAddress},
	}

	for _, tst := range tt {
		f := func(t *testing.T) {
			host, err := peer.ParseHost(tst.address)

			if tst.err != nil {
				if !errors.Is(err, tst.err) {
					t.Fatalf("Test %s:\tShould get back error %v, got %v.", tst.name, tst.err, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Test %s:\tShould be able to parse the address: %v", tst.name, err)
			}

			if host != tst.host {
				t.Logf("Test %s:\tgot: %s", tst.name, host)
				t.Logf("Test %s:\texp: %s", tst.name, tst.host)
				t.Fatalf("Test %s:\tShould keep only the network location.", tst.name)
			}

			p, err := peer.Parse(tst.address)
			if err != nil || !p.Match(tst.host) {
				t.Fatalf("Test %s:\tShould construct a matching peer.", tst.name)
			}
		}

		t.Run(tst.name, f)
	}
}
