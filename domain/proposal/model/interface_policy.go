package model

// Policy is the consensus policy collaborator: it decides the per-block
// resource caps, the next block's difficulty, and whether an individual
// staged transaction is fit to enter the next block.
type Policy interface {
	MaxBlockBytes(index uint64) int64
	MaxTransactionsPerBlock(index uint64) int
	MaxTransactionsPerSignerPerBlock(index uint64) int
	MinTransactionsPerBlock(index uint64) int
	NextBlockDifficulty(chain Chain) (uint64, error)

	// ValidateNextBlockTx returns a non-nil Violation if tx may not enter
	// the next block; a nil return means tx passed validation.
	ValidateNextBlockTx(chain Chain, tx *Transaction) error
}
