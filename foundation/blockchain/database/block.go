package database

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/pow"
	"github.com/ethereum/go-ethereum/common"
)

// ZeroHash is returned when a block can't be encoded for hashing.
const ZeroHash string = "0000000000000000000000000000000000000000000000000000000000000000"

// Set of errors returned when validating a chain.
var (
	ErrEmptyChain = errors.New("chain has no blocks")
)

// =============================================================================

// Block represents a group of transactions batched together and linked to
// the previous block by hash.
type Block struct {
	Index        uint64  `json:"index"`         // Position in the chain starting at 1.
	Timestamp    float64 `json:"timestamp"`     // Seconds since the epoch the block was forged.
	Transactions []Tx    `json:"transactions"`  // Pool contents drained into this block.
	Proof        uint64  `json:"proof"`         // Value that solves the POW puzzle against the previous proof.
	PreviousHash string  `json:"previous_hash"` // Hash of the previous block in the chain.
}

// NewBlock constructs the next block following the specified index.
func NewBlock(index uint64, trans []Tx, proof uint64, prevHash string) Block {
	if trans == nil {
		trans = []Tx{}
	}

	return Block{
		Index:        index,
		Timestamp:    Now(),
		Transactions: trans,
		Proof:        proof,
		PreviousHash: prevHash,
	}
}

// Hash returns the unique hash for the Block.
func (b Block) Hash() string {
	data, err := b.Canonical()
	if err != nil {
		return ZeroHash
	}

	hash := sha256.Sum256(data)
	return common.Bytes2Hex(hash[:])
}

// Canonical returns the bytes that are hashed for the block. Keys are sorted
// at every level and there is no insignificant whitespace, so two blocks
// with the same content always produce the same bytes.
func (b Block) Canonical() ([]byte, error) {
	trans := make([]map[string]any, len(b.Transactions))
	for i, tx := range b.Transactions {
		trans[i] = tx.canonical()
	}

	m := map[string]any{
		"index":         b.Index,
		"timestamp":     b.Timestamp,
		"transactions":  trans,
		"proof":         b.Proof,
		"previous_hash": b.PreviousHash,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encoding block %d: %w", b.Index, err)
	}

	// The encoder terminates the value with a newline.
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// ValidateNext checks this block can follow the specified previous block.
func (b Block) ValidateNext(prevBlock Block) error {
	if b.Index != prevBlock.Index+1 {
		return fmt.Errorf("block is not the next number, got %d, exp %d", b.Index, prevBlock.Index+1)
	}

	if hash := prevBlock.Hash(); b.PreviousHash != hash {
		return fmt.Errorf("previous block hash doesn't match, got %s, exp %s", b.PreviousHash, hash)
	}

	if !pow.Verify(prevBlock.Proof, b.Proof) {
		return fmt.Errorf("block %d proof %d doesn't solve the puzzle for previous proof %d", b.Index, b.Proof, prevBlock.Proof)
	}

	return nil
}

// String implements the fmt.Stringer interface for logging.
func (b Block) String() string {
	return fmt.Sprintf("%d:%s", b.Index, b.Hash())
}

// =============================================================================

// Now returns the current time as real valued seconds since the epoch.
func Now() float64 {
	return float64(time.Now().UnixMicro()) / 1e6
}
