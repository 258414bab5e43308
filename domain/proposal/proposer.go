package proposal

import (
	"github.com/daglabs/proposer/domain/proposal/model"
	"github.com/pkg/errors"
)

// Proposer orchestrates the full block proposal pipeline: it builds
// metadata, gathers transactions, mines a pre-evaluation block, hands it to
// the external ActionEvaluator, persists the resulting executions, and
// optionally appends the finalized block to the chain.
type Proposer struct {
	config    Config
	metadata  *BlockMetadataBuilder
	gatherer  *TxGatherer
	mining    *MiningDriver
	store     model.Store
	evaluator model.ActionEvaluator
	policy    model.Policy
}

// NewProposer wires the components a Proposer needs to run Propose.
func NewProposer(
	config Config,
	metadata *BlockMetadataBuilder,
	gatherer *TxGatherer,
	mining *MiningDriver,
	store model.Store,
	evaluator model.ActionEvaluator,
	policy model.Policy,
) *Proposer {
	return &Proposer{
		config:    config,
		metadata:  metadata,
		gatherer:  gatherer,
		mining:    mining,
		store:     store,
		evaluator: evaluator,
		policy:    policy,
	}
}

// Propose runs the block proposal pipeline for chain on behalf of a
// proposer identified by proposerPublicKey, returning the finalized Block.
//
// Sequence: build metadata, gather transactions, enforce
// MinTransactionsPerBlock, subscribe to TipChanged, run MiningDriver,
// unsubscribe, evaluate actions, persist executions, and — when
// opts.append() is true — append the block to chain.
func (p *Proposer) Propose(chain model.Chain, proposerPublicKey []byte, opts ProposeOptions) (*model.Block, error) {
	timestamp := opts.timestamp()

	metadata, err := p.metadata.Build(chain, proposerPublicKey, timestamp)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build block metadata")
	}

	caps := p.resolveCaps(metadata.Index, opts)

	gathered, err := p.gatherer.Gather(chain, metadata, caps, opts.TxPriority, p.config.gatherBudget())
	if err != nil {
		return nil, errors.Wrap(err, "failed to gather transactions")
	}

	minRequired := p.policy.MinTransactionsPerBlock(metadata.Index)
	if len(gathered) < minRequired {
		return nil, &InsufficientTransactionsError{
			Index:    metadata.Index,
			Gathered: len(gathered),
			Required: minRequired,
		}
	}

	content := model.BlockContent{Metadata: metadata, Transactions: gathered}

	preEval, err := p.mineWithTipWatch(chain, content, opts.Cancel)
	if err != nil {
		return nil, err
	}

	block, evaluations, err := p.evaluator.Evaluate(preEval, proposerPublicKey, chain)
	if err != nil {
		return nil, errors.Wrap(err, "action evaluation failed")
	}

	execs := model.TxExecutionsFromTransactions(gathered)
	if err := p.store.UpdateTxExecutions(chain.ID(), execs); err != nil {
		return nil, errors.Wrap(err, "failed to persist transaction executions")
	}

	if opts.append() {
		appendOpts := model.AppendOptions{
			EvaluateActions:   true,
			RenderBlocks:      true,
			RenderActions:     true,
			ActionEvaluations: evaluations,
		}
		if err := chain.Append(block, appendOpts); err != nil {
			return nil, errors.Wrap(err, "failed to append block")
		}
	}

	return block, nil
}

// mineWithTipWatch subscribes to chain's TipChanged events for the
// duration of the mining search, composing that internal cancel source
// with the caller's own. Unsubscription happens on every exit path,
// including when mining itself fails.
func (p *Proposer) mineWithTipWatch(chain model.Chain, content model.BlockContent, callerCancel <-chan struct{}) (model.PreEvaluationBlock, error) {
	composite := newCancelComposite(callerCancel)
	unsubscribe := chain.Subscribe(func(model.TipChanged) {
		composite.TripTipChanged()
	})
	defer func() {
		unsubscribe()
		composite.Dispose()
	}()

	return p.mining.Mine(content, composite.Channel(), composite.Reason)
}

func (p *Proposer) resolveCaps(index uint64, opts ProposeOptions) GatherCaps {
	caps := GatherCaps{
		MaxBlockBytes:               p.policy.MaxBlockBytes(index),
		MaxTransactionsPerBlock:     p.policy.MaxTransactionsPerBlock(index),
		MaxTransactionsPerSignerBlk: p.policy.MaxTransactionsPerSignerPerBlock(index),
	}
	if opts.MaxBlockBytes > 0 {
		caps.MaxBlockBytes = opts.MaxBlockBytes
	}
	if opts.MaxTransactions > 0 {
		caps.MaxTransactionsPerBlock = opts.MaxTransactions
	}
	if opts.MaxTransactionsPerSignerBlk > 0 {
		caps.MaxTransactionsPerSignerBlk = opts.MaxTransactionsPerSignerBlk
	}
	return caps
}
