package worker_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/blockchain/worker"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_AutoMine(t *testing.T) {
	t.Log("Given the need to mine pending transactions in the background.")
	{
		st := newState(t, true)

		w := worker.Run(st, time.Hour, nil)
		defer w.Shutdown()

		if _, err := st.AddTransaction(database.Tx{Sender: "bill", Recipient: "ale", Amount: 3}); err != nil {
			t.Fatalf("\t%s\tTest 0:\tShould be able to add a transaction: %v", failed, err)
		}

		if !waitFor(func() bool { return st.QueryChainLength() == 2 }) {
			t.Fatalf("\t%s\tTest 0:\tShould mine a block in the background.", failed)
		}
		t.Logf("\t%s\tTest 0:\tShould mine a block in the background.", success)

		if !database.IsValidChain(st.RetrieveChain()) {
			t.Fatalf("\t%s\tTest 0:\tShould produce a valid chain.", failed)
		}
		t.Logf("\t%s\tTest 0:\tShould produce a valid chain.", success)
	}
}

func Test_PeriodicResolve(t *testing.T) {
	t.Log("Given the need to adopt longer peer chains periodically.")
	{
		remote := newState(t, false)
		for i := 0; i < 2; i++ {
			if _, err := remote.MineNewBlock(context.Background()); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to mine the peer chain: %v", failed, err)
			}
		}

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			chain := remote.RetrieveChain()
			json.NewEncoder(w).Encode(peer.ChainResponse{Chain: chain, Length: len(chain)})
		}))
		defer srv.Close()

		local := newState(t, false)
		if _, err := local.RegisterPeer(srv.URL); err != nil {
			t.Fatalf("\t%s\tTest 0:\tShould be able to register the peer: %v", failed, err)
		}

		w := worker.Run(local, 20*time.Millisecond, nil)
		defer w.Shutdown()

		if !waitFor(func() bool { return local.QueryChainLength() == 3 }) {
			t.Fatalf("\t%s\tTest 0:\tShould adopt the peer chain.", failed)
		}
		t.Logf("\t%s\tTest 0:\tShould adopt the peer chain.", success)

		if local.RetrieveLatestBlock().Hash() != remote.RetrieveLatestBlock().Hash() {
			t.Fatalf("\t%s\tTest 0:\tShould hold the same latest block as the peer.", failed)
		}
		t.Logf("\t%s\tTest 0:\tShould hold the same latest block as the peer.", success)
	}
}

// =============================================================================

func newState(t *testing.T, autoMine bool) *state.State {
	t.Helper()

	st, err := state.New(state.Config{
		NodeID:   "worker-test",
		Host:     "localhost:9080",
		Genesis:  genesis.Default(),
		AutoMine: autoMine,
	})
	if err != nil {
		t.Fatalf("Should be able to construct the state: %v", err)
	}

	return st
}

func waitFor(f func() bool) bool {
	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		if f() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}

	return false
}
