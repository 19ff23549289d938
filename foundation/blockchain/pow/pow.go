// Package pow implements the proof of work puzzle that gates which blocks
// can be added to the chain.
package pow

import (
	"context"
	"crypto/sha256"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Difficulty is the number of leading hex zeros a solution must produce.
const Difficulty = 4

// prefix is the digest prefix a solved proof must match.
var prefix = strings.Repeat("0", Difficulty)

// checkInterval is how many attempts are made between context checks.
const checkInterval = 10_000

// =============================================================================

// Search finds the smallest proof that solves the puzzle for the specified
// last proof. The search can't be cancelled.
func Search(lastProof uint64) uint64 {
	proof, _ := SearchContext(context.Background(), lastProof)
	return proof
}

// SearchContext performs the same linear scan as Search but gives up when
// the context is cancelled.
func SearchContext(ctx context.Context, lastProof uint64) (uint64, error) {
	var proof uint64
	for {
		if proof%checkInterval == 0 && ctx.Err() != nil {
			return 0, ctx.Err()
		}

		if Verify(lastProof, proof) {
			return proof, nil
		}

		proof++
	}
}

// Verify checks the hash of the last proof and the proof concatenated as
// decimal strings begins with Difficulty zeros.
func Verify(lastProof uint64, proof uint64) bool {
	return strings.HasPrefix(Digest(lastProof, proof), prefix)
}

// Digest returns the lowercase hex SHA-256 of the two proofs concatenated.
func Digest(lastProof uint64, proof uint64) string {
	guess := strconv.AppendUint(nil, lastProof, 10)
	guess = strconv.AppendUint(guess, proof, 10)

	hash := sha256.Sum256(guess)
	return common.Bytes2Hex(hash[:])
}
