package database

import "fmt"

// ValidateChain walks every adjacent pair of blocks and checks the previous
// hash link and the proof of work. The genesis block is exempt from the
// linkage rules.
func ValidateChain(blocks []Block, evHandler func(v string, args ...any)) error {
	if len(blocks) == 0 {
		return ErrEmptyChain
	}

	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	if blocks[0].Index != 1 {
		return fmt.Errorf("genesis block has index %d, exp 1", blocks[0].Index)
	}

	for i := 1; i < len(blocks); i++ {
		prev, curr := blocks[i-1], blocks[i]

		ev("database: ValidateChain: validate: blk[%d]: check: linked to blk[%d]", curr.Index, prev.Index)

		if err := curr.ValidateNext(prev); err != nil {
			return fmt.Errorf("chain position %d: %w", i, err)
		}
	}

	return nil
}

// IsValidChain is the boolean form of ValidateChain.
func IsValidChain(blocks []Block) bool {
	return ValidateChain(blocks, nil) == nil
}
