// Package policy provides a reference, static model.Policy: fixed
// resource caps and a trivial fixed difficulty, useful for wiring the demo
// binary and for tests that do not care about dynamic retargeting.
package policy

import "github.com/daglabs/proposer/domain/proposal/model"

// Static is a reference Policy whose caps and difficulty never vary with
// block index, and whose tx validation always succeeds. It gives the demo
// binary a minimal, honest Policy without
// pulling in a real difficulty-retargeting algorithm, which is out of this
// core's scope (Policy is a consumed collaborator, per SPEC_FULL.md §6).
type Static struct {
	BlockBytes            int64
	TransactionsPerBlock  int
	TransactionsPerSigner int
	MinTransactions       int
	Difficulty            uint64
}

// NextBlockDifficulty returns the fixed Difficulty, ignoring chain state.
func (s Static) NextBlockDifficulty(chain model.Chain) (uint64, error) {
	return s.Difficulty, nil
}

// MaxBlockBytes returns the fixed BlockBytes cap.
func (s Static) MaxBlockBytes(index uint64) int64 {
	return s.BlockBytes
}

// MaxTransactionsPerBlock returns the fixed TransactionsPerBlock cap.
func (s Static) MaxTransactionsPerBlock(index uint64) int {
	return s.TransactionsPerBlock
}

// MaxTransactionsPerSignerPerBlock returns the fixed TransactionsPerSigner cap.
func (s Static) MaxTransactionsPerSignerPerBlock(index uint64) int {
	return s.TransactionsPerSigner
}

// MinTransactionsPerBlock returns the fixed MinTransactions requirement.
func (s Static) MinTransactionsPerBlock(index uint64) int {
	return s.MinTransactions
}

// ValidateNextBlockTx always accepts: Static carries no transaction-level
// consensus rules of its own.
func (s Static) ValidateNextBlockTx(chain model.Chain, tx *model.Transaction) error {
	return nil
}
