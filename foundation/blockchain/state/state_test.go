package state_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
	"github.com/ardanlabs/ledger/foundation/blockchain/pow"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func ifErrFailNow(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Error(err)
		t.FailNow()
	}
}

// =============================================================================

func Test_NewBlock(t *testing.T) {
	st := newState(t, "node1")

	t.Log("Given the need to add a block with pending transactions.")
	{
		chain := st.RetrieveChain()
		if len(chain) != 1 || chain[0].Index != 1 || chain[0].Proof != genesis.DefaultProofSeed || chain[0].PreviousHash != genesis.DefaultPreviousHash {
			t.Fatalf("\t%s\tTest 0:\tShould start with the genesis block: %+v", failed, chain)
		}
		if !database.IsValidChain(chain) {
			t.Fatalf("\t%s\tTest 0:\tShould start with a valid chain.", failed)
		}
		t.Logf("\t%s\tTest 0:\tShould start with a valid genesis only chain.", success)

		txs := []database.Tx{
			{Sender: "bill", Recipient: "ale", Amount: 5},
			{Sender: "ale", Recipient: "kevin", Amount: 2.5},
		}
		for _, tx := range txs {
			index, err := st.AddTransaction(tx)
			ifErrFailNow(t, err)

			if index != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould promise block 2, got %d.", failed, index)
			}
		}
		t.Logf("\t%s\tTest 0:\tShould promise the next block index.", success)

		if _, err := st.AddTransaction(database.Tx{Recipient: "ale"}); err == nil {
			t.Fatalf("\t%s\tTest 0:\tShould reject a transaction without a sender.", failed)
		}
		t.Logf("\t%s\tTest 0:\tShould reject a transaction without a sender.", success)

		genesisHash := st.RetrieveLatestBlock().Hash()
		block := st.NewBlock(pow.Search(genesis.DefaultProofSeed), "")

		if block.Index != 2 || block.PreviousHash != genesisHash {
			t.Fatalf("\t%s\tTest 0:\tShould link the block to the genesis block: %+v", failed, block)
		}
		t.Logf("\t%s\tTest 0:\tShould link the block to the genesis block.", success)

		if len(block.Transactions) != len(txs) {
			t.Fatalf("\t%s\tTest 0:\tShould place every pending transaction in the block, got %d.", failed, len(block.Transactions))
		}
		for i, tx := range block.Transactions {
			if tx != txs[i] {
				t.Fatalf("\t%s\tTest 0:\tShould keep insertion order: got %s, exp %s.", failed, tx, txs[i])
			}
		}
		t.Logf("\t%s\tTest 0:\tShould place every pending transaction in the block in order.", success)

		if st.QueryMempoolLength() != 0 {
			t.Fatalf("\t%s\tTest 0:\tShould leave the mempool empty.", failed)
		}
		t.Logf("\t%s\tTest 0:\tShould leave the mempool empty.", success)

		if err := database.ValidateChain(st.RetrieveChain(), nil); err != nil {
			t.Fatalf("\t%s\tTest 0:\tShould have a valid two block chain: %v", failed, err)
		}
		t.Logf("\t%s\tTest 0:\tShould have a valid two block chain.", success)

		chain = st.RetrieveChain()
		chain[1].PreviousHash = "0123456789abcdef"
		if database.IsValidChain(chain) {
			t.Fatalf("\t%s\tTest 0:\tShould reject a corrupted previous hash.", failed)
		}
		t.Logf("\t%s\tTest 0:\tShould reject a corrupted previous hash.", success)

		explicit := st.NewBlock(7, "cafe")
		if explicit.PreviousHash != "cafe" || explicit.Index != 3 {
			t.Fatalf("\t%s\tTest 0:\tShould use the supplied previous hash: %+v", failed, explicit)
		}
		t.Logf("\t%s\tTest 0:\tShould use the supplied previous hash.", success)
	}
}

func Test_MineNewBlock(t *testing.T) {
	st := newState(t, "miner")

	t.Log("Given the need to mine a new block.")
	{
		_, err := st.AddTransaction(database.Tx{Sender: "bill", Recipient: "ale", Amount: 1})
		ifErrFailNow(t, err)

		block, err := st.MineNewBlock(context.Background())
		if err != nil {
			t.Fatalf("\t%s\tTest 0:\tShould be able to mine a block: %v", failed, err)
		}
		t.Logf("\t%s\tTest 0:\tShould be able to mine a block.", success)

		if !pow.Verify(genesis.DefaultProofSeed, block.Proof) {
			t.Fatalf("\t%s\tTest 0:\tShould find a proof that verifies.", failed)
		}
		t.Logf("\t%s\tTest 0:\tShould find a proof that verifies.", success)

		if len(block.Transactions) != 2 {
			t.Fatalf("\t%s\tTest 0:\tShould include the pending and reward transactions, got %d.", failed, len(block.Transactions))
		}
		reward := block.Transactions[1]
		if reward.Sender != database.RewardSender || reward.Recipient != "miner" || reward.Amount != genesis.DefaultMiningReward {
			t.Fatalf("\t%s\tTest 0:\tShould pay the mining reward to this node: %s", failed, reward)
		}
		t.Logf("\t%s\tTest 0:\tShould pay the mining reward to this node.", success)

		if !database.IsValidChain(st.RetrieveChain()) {
			t.Fatalf("\t%s\tTest 0:\tShould have a valid chain.", failed)
		}
		t.Logf("\t%s\tTest 0:\tShould have a valid chain.", success)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := st.MineNewBlock(ctx); err == nil {
			t.Fatalf("\t%s\tTest 0:\tShould stop mining when cancelled.", failed)
		}
		if st.QueryChainLength() != 2 {
			t.Fatalf("\t%s\tTest 0:\tShould not add a block when cancelled.", failed)
		}
		t.Logf("\t%s\tTest 0:\tShould stop mining when cancelled.", success)
	}
}

func Test_Resolve(t *testing.T) {
	t.Log("Given the need to adopt the longest valid chain.")
	{
		local := newState(t, "local")
		mine(t, local, 1)

		longer := newState(t, "longer")
		mine(t, longer, 2)

		corrupt := newState(t, "corrupt")
		mine(t, corrupt, 1)
		invalidTwo := corrupt.RetrieveChain()
		invalidTwo[1].PreviousHash = "0123456789abcdef"

		longest := newState(t, "longest")
		mine(t, longest, 3)
		invalidFour := longest.RetrieveChain()
		invalidFour[3].Transactions = nil
		invalidFour[2].Proof++

		peers := []http.Handler{
			chainHandler(peer.ChainResponse{Chain: invalidTwo, Length: 2}),
			chainHandler(peer.ChainResponse{Chain: longer.RetrieveChain(), Length: 3}),
			chainHandler(peer.ChainResponse{Chain: invalidFour, Length: 4}),
			chainHandler(peer.ChainResponse{Chain: longest.RetrieveChain(), Length: 9}),
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "down", http.StatusInternalServerError)
			}),
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"chain": "nope"`))
			}),
		}

		for _, h := range peers {
			srv := httptest.NewServer(h)
			defer srv.Close()

			_, err := local.RegisterPeer(srv.URL + "/ignored/path")
			ifErrFailNow(t, err)
		}

		_, err := local.RegisterPeer("127.0.0.1:1")
		ifErrFailNow(t, err)

		replaced, err := local.Resolve(context.Background())
		ifErrFailNow(t, err)

		if !replaced {
			t.Fatalf("\t%s\tTest 0:\tShould replace the local chain.", failed)
		}
		t.Logf("\t%s\tTest 0:\tShould replace the local chain.", success)

		chain := local.RetrieveChain()
		if len(chain) != 3 || chain[2].Hash() != longer.RetrieveLatestBlock().Hash() {
			t.Fatalf("\t%s\tTest 0:\tShould adopt the valid three block chain, got %d blocks.", failed, len(chain))
		}
		t.Logf("\t%s\tTest 0:\tShould adopt the valid three block chain.", success)

		replaced, err = local.Resolve(context.Background())
		ifErrFailNow(t, err)

		if replaced {
			t.Fatalf("\t%s\tTest 0:\tShould keep the local chain on a tie.", failed)
		}
		t.Logf("\t%s\tTest 0:\tShould keep the local chain on a tie.", success)
	}
}

func Test_ResolveKeepsLocal(t *testing.T) {
	t.Log("Given the need to never shorten the local chain.")
	{
		local := newState(t, "local")
		mine(t, local, 2)
		before := local.RetrieveChain()

		shorter := newState(t, "shorter")
		mine(t, shorter, 1)

		srv := httptest.NewServer(chainHandler(peer.ChainResponse{Chain: shorter.RetrieveChain(), Length: 2}))
		defer srv.Close()

		mismatch := httptest.NewServer(chainHandler(peer.ChainResponse{Chain: shorter.RetrieveChain(), Length: 50}))
		defer mismatch.Close()

		for _, url := range []string{srv.URL, mismatch.URL} {
			_, err := local.RegisterPeer(url)
			ifErrFailNow(t, err)
		}

		replaced, err := local.Resolve(context.Background())
		ifErrFailNow(t, err)

		if replaced {
			t.Fatalf("\t%s\tTest 0:\tShould not replace the local chain.", failed)
		}

		after := local.RetrieveChain()
		if len(after) != len(before) || after[len(after)-1].Hash() != before[len(before)-1].Hash() {
			t.Fatalf("\t%s\tTest 0:\tShould leave the local chain untouched.", failed)
		}
		t.Logf("\t%s\tTest 0:\tShould leave the local chain untouched.", success)
	}
}

func Test_RegisterPeer(t *testing.T) {
	st := newState(t, "node1")

	t.Log("Given the need to register peers.")
	{
		added, err := st.RegisterPeer("http://192.168.0.5:5000")
		ifErrFailNow(t, err)
		if !added {
			t.Fatalf("\t%s\tTest 0:\tShould add a new peer.", failed)
		}

		added, err = st.RegisterPeer("https://192.168.0.5:5000/other")
		ifErrFailNow(t, err)
		if added {
			t.Fatalf("\t%s\tTest 0:\tShould ignore a duplicate peer.", failed)
		}

		added, err = st.RegisterPeer(st.RetrieveHost())
		ifErrFailNow(t, err)
		if added {
			t.Fatalf("\t%s\tTest 0:\tShould not add this node as a peer.", failed)
		}

		if _, err := st.RegisterPeer(""); err == nil {
			t.Fatalf("\t%s\tTest 0:\tShould reject an empty address.", failed)
		}

		peers := st.RetrieveKnownPeers()
		if len(peers) != 1 || peers[0].Host != "192.168.0.5:5000" {
			t.Fatalf("\t%s\tTest 0:\tShould keep only the network location: %v", failed, peers)
		}
		t.Logf("\t%s\tTest 0:\tShould keep a deduplicated set of network locations.", success)
	}
}

// =============================================================================

func newState(t *testing.T, nodeID string) *state.State {
	t.Helper()

	st, err := state.New(state.Config{
		NodeID:     nodeID,
		Host:       "localhost:9080",
		Genesis:    genesis.Default(),
		KnownPeers: peer.NewPeerSet(),
		EvHandler:  func(v string, args ...any) { t.Logf(v, args...) },
	})
	ifErrFailNow(t, err)

	return st
}

func mine(t *testing.T, st *state.State, blocks int) {
	t.Helper()

	for i := 0; i < blocks; i++ {
		_, err := st.MineNewBlock(context.Background())
		ifErrFailNow(t, err)
	}
}

func chainHandler(resp peer.ChainResponse) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chain" {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})
}
