// Package chain is a reference, in-memory model.Chain: a single linear
// history with a subscriber list notified on every Append, adapted from
// the teacher's callback-based DAG notification pattern to this core's
// single-event TipChanged shape.
package chain

import (
	"sync"

	"github.com/daglabs/proposer/domain/proposal/model"
	"github.com/daglabs/proposer/store/leveldbstore"
)

// Chain is a reference, in-memory model.Chain backed by a leveldbstore.Store
// for its durable index->hash and total-difficulty bookkeeping.
type Chain struct {
	id    model.ChainID
	store *leveldbstore.Store

	mu    sync.Mutex
	count uint64
	tip   model.Hash
	hasTip bool

	subsMu sync.Mutex
	subs   map[int]model.TipChangedFunc
	nextID int
}

// New returns a Chain with the given ID, backed by store. It starts at
// genesis (count == 0, no tip).
func New(id model.ChainID, store *leveldbstore.Store) *Chain {
	return &Chain{id: id, store: store, subs: make(map[int]model.TipChangedFunc)}
}

// ID returns the chain's ID.
func (c *Chain) ID() model.ChainID {
	return c.id
}

// Count returns the number of blocks committed so far.
func (c *Chain) Count() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Tip returns the current tip hash, or ok == false at genesis.
func (c *Chain) Tip() (model.Hash, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tip, c.hasTip
}

// Subscribe registers callback to be invoked on every TipChanged event.
// The returned Unsubscribe is idempotent.
func (c *Chain) Subscribe(callback model.TipChangedFunc) model.Unsubscribe {
	c.subsMu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = callback
	c.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.subsMu.Lock()
			delete(c.subs, id)
			c.subsMu.Unlock()
		})
	}
}

// Append commits block to the chain: it persists the block's index/hash
// and total difficulty, advances the tip, and fans out TipChanged to every
// current subscriber.
func (c *Chain) Append(block *model.Block, opts model.AppendOptions) error {
	c.mu.Lock()
	oldTip, hadTip := c.tip, c.hasTip
	index := block.PreEvaluation.Content.Metadata.Index

	if err := c.store.PutBlock(c.id, index, block.Hash, block.PreEvaluation.Content.Metadata.TotalDifficulty); err != nil {
		c.mu.Unlock()
		return err
	}

	c.tip = block.Hash
	c.hasTip = true
	c.count = index + 1
	c.mu.Unlock()

	var old model.Hash
	if hadTip {
		old = oldTip
	}
	event := model.TipChanged{OldTip: old, NewTip: block.Hash}

	c.subsMu.Lock()
	callbacks := make([]model.TipChangedFunc, 0, len(c.subs))
	for _, cb := range c.subs {
		callbacks = append(callbacks, cb)
	}
	c.subsMu.Unlock()

	for _, cb := range callbacks {
		cb(event)
	}

	return nil
}
