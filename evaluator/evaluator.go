// Package evaluator is a reference model.ActionEvaluator: it does not
// interpret transaction payloads at all, producing a state root that is
// simply the codec's hash of the concatenated transaction IDs. Real chains
// plug in a collaborator that actually executes payloads against state;
// this one exists to exercise the Proposer's evaluate/persist/append
// sequencing end to end.
package evaluator

import (
	"github.com/daglabs/proposer/domain/proposal/model"
)

// Noop is a reference ActionEvaluator with a deterministic, payload-blind
// state root.
type Noop struct {
	codec model.BlockCodec
}

// New returns a Noop evaluator backed by codec.
func New(codec model.BlockCodec) *Noop {
	return &Noop{codec: codec}
}

// Evaluate produces a Block by hashing the pre-evaluation block's
// transaction IDs together as a placeholder state root, and recording one
// empty ActionEvaluation per transaction.
func (e *Noop) Evaluate(preEval model.PreEvaluationBlock, proposerKey []byte, chain model.Chain) (*model.Block, []model.ActionEvaluation, error) {
	txs := preEval.Content.Transactions
	buf := make([]byte, 0, len(txs)*model.HashSize)
	evaluations := make([]model.ActionEvaluation, len(txs))
	for i, tx := range txs {
		buf = append(buf, tx.ID[:]...)
		evaluations[i] = model.ActionEvaluation{TxID: tx.ID}
	}
	stateRootHash := e.codec.Hash(buf)

	hash := e.codec.HashBlock(preEval.Content, preEval.Nonce, preEval.PreEvaluationHash, stateRootHash, nil)

	block := &model.Block{
		PreEvaluation: preEval,
		StateRootHash: stateRootHash,
		Hash:          hash,
	}

	return block, evaluations, nil
}
