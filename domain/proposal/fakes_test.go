package proposal

import (
	"sync"

	"github.com/daglabs/proposer/domain/proposal/model"
	"github.com/daglabs/proposer/util"
)

// fakePolicy is a hand-rolled Policy test double: fixed caps, a fixed
// difficulty, and a pluggable per-tx validator.
type fakePolicy struct {
	maxBlockBytes   int64
	maxTxs          int
	maxTxsPerSigner int
	minTxs          int
	difficulty      uint64
	validate        func(tx *model.Transaction) error
}

func (p *fakePolicy) MaxBlockBytes(uint64) int64                 { return p.maxBlockBytes }
func (p *fakePolicy) MaxTransactionsPerBlock(uint64) int         { return p.maxTxs }
func (p *fakePolicy) MaxTransactionsPerSignerPerBlock(uint64) int { return p.maxTxsPerSigner }
func (p *fakePolicy) MinTransactionsPerBlock(uint64) int         { return p.minTxs }
func (p *fakePolicy) NextBlockDifficulty(model.Chain) (uint64, error) {
	return p.difficulty, nil
}
func (p *fakePolicy) ValidateNextBlockTx(chain model.Chain, tx *model.Transaction) error {
	if p.validate == nil {
		return nil
	}
	return p.validate(tx)
}

// fakeStore is a hand-rolled Store test double: in-memory nonces and
// block index, with no persistence.
type fakeStore struct {
	mu              sync.Mutex
	signerNonces    map[util.Address]uint64
	blockHashes     map[uint64]model.Hash
	totalDifficulty map[uint64]uint64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		signerNonces:    make(map[util.Address]uint64),
		blockHashes:     make(map[uint64]model.Hash),
		totalDifficulty: make(map[uint64]uint64),
	}
}

func (s *fakeStore) IndexBlockHash(chainID model.ChainID, index uint64) (model.Hash, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.blockHashes[index]
	return h, ok
}

func (s *fakeStore) IndexBlockTotalDifficulty(chainID model.ChainID, index uint64) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.totalDifficulty[index]
	return d, ok
}

func (s *fakeStore) GetTxNonce(chainID model.ChainID, signer util.Address) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signerNonces[signer], nil
}

func (s *fakeStore) UpdateTxExecutions(chainID model.ChainID, execs []model.TxExecution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range execs {
		s.signerNonces[e.Signer] = e.Nonce + 1
	}
	return nil
}

// fakeStage is a hand-rolled StagePolicy test double returning a fixed,
// caller-provided ordering and recording Ignore calls.
type fakeStage struct {
	txs     []*model.Transaction
	ignored []model.Hash
}

func (s *fakeStage) ListStaged(chain model.Chain, priority model.TxPriorityFunc) ([]*model.Transaction, error) {
	out := make([]*model.Transaction, len(s.txs))
	copy(out, s.txs)
	return out, nil
}

func (s *fakeStage) Ignore(chain model.Chain, txID model.Hash) {
	s.ignored = append(s.ignored, txID)
}

// fakeChain is a hand-rolled Chain test double with a tiny subscriber list
// and a manually triggerable TipChanged.
type fakeChain struct {
	id     model.ChainID
	count  uint64
	tip    model.Hash
	hasTip bool

	mu     sync.Mutex
	subs   map[int]model.TipChangedFunc
	nextID int

	appended []*model.Block
}

func newFakeChain(id model.ChainID, count uint64) *fakeChain {
	return &fakeChain{id: id, count: count, subs: make(map[int]model.TipChangedFunc)}
}

func (c *fakeChain) ID() model.ChainID { return c.id }
func (c *fakeChain) Count() uint64     { return c.count }
func (c *fakeChain) Tip() (model.Hash, bool) {
	return c.tip, c.hasTip
}

func (c *fakeChain) Subscribe(callback model.TipChangedFunc) model.Unsubscribe {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = callback
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *fakeChain) Append(block *model.Block, opts model.AppendOptions) error {
	c.mu.Lock()
	c.appended = append(c.appended, block)
	c.tip = block.Hash
	c.hasTip = true
	c.count++
	c.mu.Unlock()
	return nil
}

// fireTipChanged notifies every current subscriber, simulating a
// concurrent Append from another caller.
func (c *fakeChain) fireTipChanged(event model.TipChanged) {
	c.mu.Lock()
	callbacks := make([]model.TipChangedFunc, 0, len(c.subs))
	for _, cb := range c.subs {
		callbacks = append(callbacks, cb)
	}
	c.mu.Unlock()
	for _, cb := range callbacks {
		cb(event)
	}
}

// fakeEvaluator is a hand-rolled ActionEvaluator test double.
type fakeEvaluator struct {
	err error
}

func (e *fakeEvaluator) Evaluate(preEval model.PreEvaluationBlock, proposerKey []byte, chain model.Chain) (*model.Block, []model.ActionEvaluation, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	evaluations := make([]model.ActionEvaluation, len(preEval.Content.Transactions))
	for i, tx := range preEval.Content.Transactions {
		evaluations[i] = model.ActionEvaluation{TxID: tx.ID}
	}
	block := &model.Block{
		PreEvaluation: preEval,
		Hash:          preEval.PreEvaluationHash,
	}
	return block, evaluations, nil
}
