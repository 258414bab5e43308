// Package stage provides an in-memory reference implementation of
// model.StagePolicy: a pool of transactions accepted locally but not yet
// included in any block, keyed by transaction ID. The (signer, nonce)
// ordering list_staged must provide is computed by sorting a snapshot.
package stage

import (
	"sort"
	"sync"

	"github.com/daglabs/proposer/domain/proposal/model"
)

// Pool is a reference, in-memory StagePolicy. It is safe for concurrent
// use: ListStaged takes a consistent snapshot under a read lock, and
// Ignore evicts under a write lock.
type Pool struct {
	mu  sync.RWMutex
	txs map[model.Hash]*model.Transaction
}

// New returns an empty Pool.
func New() *Pool {
	return &Pool{txs: make(map[model.Hash]*model.Transaction)}
}

// Stage adds tx to the pool, or replaces any existing entry with the same
// ID. Staging is idempotent by ID.
func (p *Pool) Stage(tx *model.Transaction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.txs[tx.ID] = tx
}

// Len reports how many transactions are currently staged.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.txs)
}

// ListStaged returns an ordered snapshot of staged transactions, sorted by
// priority if given, with ties (and, within a signer, all order) broken by
// (signer, nonce) ascending.
func (p *Pool) ListStaged(chain model.Chain, priority model.TxPriorityFunc) ([]*model.Transaction, error) {
	p.mu.RLock()
	out := make([]*model.Transaction, 0, len(p.txs))
	for _, tx := range p.txs {
		out = append(out, tx)
	}
	p.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Signer == b.Signer {
			return a.Nonce < b.Nonce
		}
		if priority != nil && priority(a, b) {
			return true
		}
		if priority != nil && priority(b, a) {
			return false
		}
		return less(a.Signer[:], b.Signer[:])
	})

	return out, nil
}

// Ignore permanently evicts txID from the pool. Called by TxGatherer when a
// staged transaction fails policy validation during gather.
func (p *Pool) Ignore(chain model.Chain, txID model.Hash) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.txs, txID)
}

func less(a, b []byte) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
