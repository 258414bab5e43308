package model

import (
	"time"

	"github.com/daglabs/proposer/util"
)

// BlockMetadata is the ephemeral header of a candidate block. It is
// discarded if mining aborts; nothing about it is persisted on its own.
type BlockMetadata struct {
	Index           uint64
	Difficulty      uint64
	TotalDifficulty uint64
	PublicKey       []byte // proposer's public key; may be nil for legacy genesis
	PreviousHash    Hash   // absent (zero) iff Index == 0
	HasPreviousHash bool
	Timestamp       time.Time
}

// Address derives the proposer Address this metadata's PublicKey hashes to,
// or the zero Address if no public key is set.
func (m *BlockMetadata) Address() util.Address {
	if len(m.PublicKey) == 0 {
		return util.Address{}
	}
	return util.NewAddressFromPublicKey(m.PublicKey)
}

// BlockContent pairs a BlockMetadata with the transaction list the gatherer
// produced. The transaction order is fixed for hashing: it is never
// reordered after TxGatherer returns it.
type BlockContent struct {
	Metadata     BlockMetadata
	Transactions []*Transaction
}

// PreEvaluationBlock is a BlockContent whose proof of work has been solved:
// Nonce and PreEvaluationHash satisfy the difficulty target embedded in
// Metadata, but the post-action state root is not yet known.
type PreEvaluationBlock struct {
	Content           BlockContent
	Nonce             uint64
	PreEvaluationHash Hash
}

// Block is a fully immutable, finalized block: a PreEvaluationBlock plus the
// state root that resulted from evaluating its transactions' actions, an
// optional proposer signature, and its final content hash.
type Block struct {
	PreEvaluation PreEvaluationBlock
	StateRootHash Hash
	Signature     []byte // optional
	Hash          Hash
}

// ActionEvaluation is one transaction's deterministic execution result,
// produced by the external ActionEvaluator and opaque to the core beyond
// being handed back to the Store and to Chain.Append.
type ActionEvaluation struct {
	TxID      Hash
	StateDiff []byte
}
