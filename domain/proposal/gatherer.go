package proposal

import (
	"time"

	"github.com/daglabs/proposer/domain/proposal/model"
	"github.com/daglabs/proposer/util"
	"github.com/pkg/errors"
)

// GatherCaps bounds what TxGatherer may admit into a single block. Each
// field defaults from Policy at the metadata's index when the Proposer
// does not override it.
type GatherCaps struct {
	MaxBlockBytes               int64
	MaxTransactionsPerBlock     int
	MaxTransactionsPerSignerBlk int
}

// signerState is the ephemeral per-signer bookkeeping a gather call builds
// up lazily as it encounters each signer for the first time.
type signerState struct {
	storedNonce uint64
	nextNonce   uint64
	toMineCount int
}

// TxGatherer selects staged transactions into an ordered admission list,
// respecting nonce continuity, the per-signer and per-block caps, the
// encoded-size cap, Policy validation, and a soft wall-clock budget.
type TxGatherer struct {
	stage     model.StagePolicy
	store     model.Store
	policy    model.Policy
	estimator *SizeEstimator
}

// NewTxGatherer returns a TxGatherer backed by the given collaborators.
func NewTxGatherer(stage model.StagePolicy, store model.Store, policy model.Policy, estimator *SizeEstimator) *TxGatherer {
	return &TxGatherer{stage: stage, store: store, policy: policy, estimator: estimator}
}

// Gather runs the admission algorithm described in §4.C of the transaction
// proposal core design and returns the ordered list of admitted
// transactions. It never returns an error solely because the result is
// empty or short of the caller's minimum; InsufficientTransactions is the
// Proposer's concern, not the gatherer's.
func (g *TxGatherer) Gather(chain model.Chain, metadata model.BlockMetadata, caps GatherCaps, priority model.TxPriorityFunc, budget time.Duration) ([]*model.Transaction, error) {
	staged, err := g.stage.ListStaged(chain, priority)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list staged transactions")
	}

	chainID := chain.ID()
	enc := g.estimator.Empty(metadata)
	signers := make(map[util.Address]*signerState)
	out := make([]*model.Transaction, 0, len(staged))

	if budget <= 0 {
		budget = DefaultGatherBudget
	}
	deadline := time.Now().Add(budget)

	for _, tx := range staged {
		// Global count gate: an enormous queue terminates quickly.
		if len(out) >= caps.MaxTransactionsPerBlock {
			break
		}

		state, ok := signers[tx.Signer]
		if !ok {
			storedNonce, err := g.store.GetTxNonce(chainID, tx.Signer)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to read stored nonce for signer %s", tx.Signer)
			}
			state = &signerState{storedNonce: storedNonce, nextNonce: storedNonce}
			signers[tx.Signer] = state
		}

		switch {
		case tx.Nonce < state.storedNonce:
			// Stale: already committed or superseded. Left in the pool;
			// whoever owns pool hygiene evicts it independently.
			log.Tracef("gather: skipping stale tx %s (nonce %d < stored %d)", tx.ID, tx.Nonce, state.storedNonce)
			if g.checkDeadlineStop(deadline) {
				return out, nil
			}
			continue
		case tx.Nonce > state.nextNonce:
			// Gap: a single-pass gather does not reorder to fill it.
			log.Tracef("gather: skipping gapped tx %s (nonce %d > next %d)", tx.ID, tx.Nonce, state.nextNonce)
			if g.checkDeadlineStop(deadline) {
				return out, nil
			}
			continue
		}

		if violation := g.policy.ValidateNextBlockTx(chain, tx); violation != nil {
			log.Debugf("gather: evicting tx %s, failed policy validation: %s", tx.ID, violation)
			g.stage.Ignore(chain, tx.ID)
			if g.checkDeadlineStop(deadline) {
				return out, nil
			}
			continue
		}

		candidate := g.estimator.Append(enc, tx)
		if int64(g.estimator.Length(candidate)) > caps.MaxBlockBytes {
			// Too large for this block; a later, smaller tx from another
			// signer may still fit, so the loop continues rather than
			// breaking.
			if g.checkDeadlineStop(deadline) {
				return out, nil
			}
			continue
		}

		if state.toMineCount >= caps.MaxTransactionsPerSignerBlk {
			if g.checkDeadlineStop(deadline) {
				return out, nil
			}
			continue
		}

		out = append(out, tx)
		state.nextNonce++
		state.toMineCount++
		enc = candidate

		if g.checkDeadlineStop(deadline) {
			return out, nil
		}
	}

	return out, nil
}

// checkDeadlineStop reports whether the gather-time budget has expired,
// logging once when it has. Called after every admission or skip decision.
func (g *TxGatherer) checkDeadlineStop(deadline time.Time) bool {
	if time.Now().After(deadline) {
		log.Debugf("gather: wall-clock budget exhausted, stopping early")
		return true
	}
	return false
}
