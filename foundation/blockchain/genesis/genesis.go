// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// Default values used when no genesis file is provided.
const (
	DefaultProofSeed    = 100
	DefaultPreviousHash = "1"
	DefaultMiningReward = 1
)

// Genesis represents the genesis file.
type Genesis struct {
	Date         time.Time `json:"date"`          // Timestamp of the genesis block, zero means time of construction.
	ProofSeed    uint64    `json:"proof_seed"`    // Proof recorded on the genesis block.
	PreviousHash string    `json:"previous_hash"` // Sentinel recorded as the genesis block's previous hash.
	MiningReward float64   `json:"mining_reward"` // Reward for mining a block.
}

// Default returns the genesis values every node uses unless told otherwise.
func Default() Genesis {
	return Genesis{
		ProofSeed:    DefaultProofSeed,
		PreviousHash: DefaultPreviousHash,
		MiningReward: DefaultMiningReward,
	}
}

// =============================================================================

// Load opens and consumes the genesis file. Fields missing from the file
// keep their default values.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	genesis := Default()
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("decoding genesis file %q: %w", path, err)
	}

	if genesis.PreviousHash == "" {
		return Genesis{}, fmt.Errorf("genesis file %q: previous hash sentinel is empty", path)
	}

	if genesis.MiningReward < 0 {
		return Genesis{}, fmt.Errorf("genesis file %q: negative mining reward", path)
	}

	return genesis, nil
}

// Block forges the genesis block.
func (g Genesis) Block() database.Block {
	block := database.NewBlock(1, nil, g.ProofSeed, g.PreviousHash)
	if !g.Date.IsZero() {
		block.Timestamp = float64(g.Date.UnixMicro()) / 1e6
	}

	return block
}
