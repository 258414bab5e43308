package model

// ActionEvaluator is the external collaborator that deterministically
// executes every transaction's payload against current state, producing the
// state root that turns a PreEvaluationBlock into a finalized Block.
type ActionEvaluator interface {
	Evaluate(preEval PreEvaluationBlock, proposerKey []byte, chain Chain) (*Block, []ActionEvaluation, error)
}

// AppendOptions mirrors the named parameters chain.append(...) takes in the
// spec: which side effects to run as part of committing a block.
type AppendOptions struct {
	EvaluateActions   bool
	RenderBlocks      bool
	RenderActions     bool
	ActionEvaluations []ActionEvaluation
}

// TipChanged is delivered to Chain subscribers whenever Append moves the
// selected tip.
type TipChanged struct {
	OldTip Hash
	NewTip Hash
}

// TipChangedFunc is a subscriber callback for TipChanged events.
type TipChangedFunc func(TipChanged)

// Unsubscribe removes a previously registered TipChangedFunc. It is always
// safe to call more than once.
type Unsubscribe func()

// Chain is the external collaborator representing the local view of a
// chain's tip and history, consumed by BlockMetadataBuilder, the tip
// watcher, and the final Append.
type Chain interface {
	ID() ChainID
	Count() uint64
	Tip() (Hash, bool)

	// Subscribe registers callback to be invoked on every TipChanged event.
	// The returned Unsubscribe must be called exactly once by the
	// subscriber when it no longer wants events.
	Subscribe(callback TipChangedFunc) Unsubscribe

	// Append commits block to the chain.
	Append(block *Block, opts AppendOptions) error
}
