package mempool_test

import (
	"sync"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/mempool"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestCRUD(t *testing.T) {
	type table struct {
		name string
		txs  []database.Tx
	}

	tt := []table{
		{
			name: "basic",
			txs: []database.Tx{
				{Sender: "bill", Recipient: "ale", Amount: 10},
				{Sender: "ale", Recipient: "kevin", Amount: 50},
				{Sender: "kevin", Recipient: "bill", Amount: 100},
				{Sender: "bill", Recipient: "kevin", Amount: 10},
			},
		},
		{
			name: "empty",
		},
	}

	t.Log("Given the need to validate mempool api.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a set of transaction.", testID)
			{
				f := func(t *testing.T) {
					mp := mempool.New()

					for i, tx := range tst.txs {
						if n := mp.Add(tx); n != i+1 {
							t.Fatalf("\t%s\tTest %d:\tShould get back the pool size %d, got %d.", failed, testID, i+1, n)
						}
						t.Logf("\t%s\tTest %d:\tShould be able to add new transaction: %s", success, testID, tx)
					}

					for i, tx := range mp.Copy() {
						if tx != tst.txs[i] {
							t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, tx)
							t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.txs[i])
							t.Fatalf("\t%s\tTest %d:\tShould get back the transactions in order.", failed, testID)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould get back the transactions in order.", success, testID)

					trans := mp.Drain()
					if trans == nil || len(trans) != len(tst.txs) {
						t.Fatalf("\t%s\tTest %d:\tShould drain every transaction, got %d.", failed, testID, len(trans))
					}
					for i, tx := range trans {
						if tx != tst.txs[i] {
							t.Fatalf("\t%s\tTest %d:\tShould drain in insertion order.", failed, testID)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould drain every transaction in insertion order.", success, testID)

					if mp.Count() != 0 {
						t.Fatalf("\t%s\tTest %d:\tShould leave the pool empty.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould leave the pool empty.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func TestConcurrentAdd(t *testing.T) {
	t.Log("Given the need to add transactions from many goroutines.")
	{
		const g = 50

		mp := mempool.New()

		var wg sync.WaitGroup
		wg.Add(g)
		for i := 0; i < g; i++ {
			go func() {
				defer wg.Done()
				mp.Add(database.Tx{Sender: "a", Recipient: "b", Amount: 1})
			}()
		}
		wg.Wait()

		if n := len(mp.Drain()); n != g {
			t.Fatalf("\t%s\tTest 0:\tShould not drop transactions, got %d.", failed, n)
		}
		t.Logf("\t%s\tTest 0:\tShould not drop transactions.", success)
	}
}
