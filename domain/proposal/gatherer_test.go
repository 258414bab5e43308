package proposal

import (
	"errors"
	"testing"

	"github.com/daglabs/proposer/codec/simplecodec"
	"github.com/daglabs/proposer/domain/proposal/model"
	"github.com/daglabs/proposer/util"
)

var errViolation = errors.New("policy violation")

func addr(b byte) util.Address {
	var a util.Address
	a[0] = b
	return a
}

func txID(n byte) model.Hash {
	var h model.Hash
	h[0] = n
	return h
}

func newTx(signer util.Address, nonce uint64, id byte, size int) *model.Transaction {
	return &model.Transaction{
		ID:      txID(id),
		Signer:  signer,
		Nonce:   nonce,
		Size:    size,
		Payload: make([]byte, size),
	}
}

func newGatherHarness(maxBytes int64, maxTxs, maxTxsPerSigner int) (*TxGatherer, *fakeStage, *fakeStore, *fakePolicy) {
	codec := simplecodec.New()
	estimator := NewSizeEstimator(codec)
	store := newFakeStore()
	policy := &fakePolicy{maxBlockBytes: maxBytes, maxTxs: maxTxs, maxTxsPerSigner: maxTxsPerSigner}
	stage := &fakeStage{}
	return NewTxGatherer(stage, store, policy, estimator), stage, store, policy
}

// S1 — Happy path, single signer.
func TestGatherHappyPathSingleSigner(t *testing.T) {
	gatherer, stage, _, policy := newGatherHarness(1_000_000_000, 10, 5)
	a := addr(1)
	stage.txs = []*model.Transaction{
		newTx(a, 0, 1, 10),
		newTx(a, 1, 2, 10),
	}

	chain := newFakeChain(model.ChainID{}, 0)
	metadata := model.BlockMetadata{Index: 1, Difficulty: 1, PublicKey: []byte("pub")}
	caps := GatherCaps{MaxBlockBytes: policy.maxBlockBytes, MaxTransactionsPerBlock: policy.maxTxs, MaxTransactionsPerSignerBlk: policy.maxTxsPerSigner}

	got, err := gatherer.Gather(chain, metadata, caps, nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 admitted txs, got %d", len(got))
	}
	if got[0].Nonce != 0 || got[1].Nonce != 1 {
		t.Fatalf("expected nonce order [0,1], got [%d,%d]", got[0].Nonce, got[1].Nonce)
	}
}

// S2 — Stale and gap skipping.
func TestGatherStaleAndGapSkipping(t *testing.T) {
	gatherer, stage, store, policy := newGatherHarness(1_000_000_000, 10, 5)
	a := addr(1)
	store.signerNonces[a] = 5

	stage.txs = []*model.Transaction{
		newTx(a, 3, 1, 10),
		newTx(a, 5, 2, 10),
		newTx(a, 7, 3, 10),
		newTx(a, 6, 4, 10),
	}

	chain := newFakeChain(model.ChainID{}, 0)
	metadata := model.BlockMetadata{Index: 1, Difficulty: 1}
	caps := GatherCaps{MaxBlockBytes: policy.maxBlockBytes, MaxTransactionsPerBlock: policy.maxTxs, MaxTransactionsPerSignerBlk: policy.maxTxsPerSigner}

	got, err := gatherer.Gather(chain, metadata, caps, nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 admitted txs, got %d", len(got))
	}
	if got[0].Nonce != 5 || got[1].Nonce != 6 {
		t.Fatalf("expected nonce order [5,6], got [%d,%d]", got[0].Nonce, got[1].Nonce)
	}
}

// S3 — Per-signer cap.
func TestGatherPerSignerCap(t *testing.T) {
	gatherer, stage, _, policy := newGatherHarness(1_000_000_000, 10, 2)
	a, b := addr(1), addr(2)
	stage.txs = []*model.Transaction{
		newTx(a, 0, 1, 10), newTx(a, 1, 2, 10), newTx(a, 2, 3, 10), newTx(a, 3, 4, 10), newTx(a, 4, 5, 10),
		newTx(b, 0, 6, 10), newTx(b, 1, 7, 10),
	}

	chain := newFakeChain(model.ChainID{}, 0)
	metadata := model.BlockMetadata{Index: 1, Difficulty: 1}
	caps := GatherCaps{MaxBlockBytes: policy.maxBlockBytes, MaxTransactionsPerBlock: policy.maxTxs, MaxTransactionsPerSignerBlk: policy.maxTxsPerSigner}

	got, err := gatherer.Gather(chain, metadata, caps, nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 admitted txs, got %d", len(got))
	}
	wantNonces := []uint64{0, 1, 0, 1}
	for i, want := range wantNonces {
		if got[i].Nonce != want {
			t.Fatalf("tx %d: expected nonce %d, got %d", i, want, got[i].Nonce)
		}
	}
}

// S4 — Byte cap does not break the loop.
func TestGatherByteCapDoesNotBreakLoop(t *testing.T) {
	// A codec-empty header plus one huge payload exceeds the cap; a small
	// tx from another signer afterward must still be admitted.
	codec := simplecodec.New()
	estimator := NewSizeEstimator(codec)
	store := newFakeStore()
	metadata := model.BlockMetadata{Index: 1, Difficulty: 1}
	emptyLen := estimator.Length(estimator.Empty(metadata))

	maxBytes := int64(emptyLen + 100)
	policy := &fakePolicy{maxBlockBytes: maxBytes, maxTxs: 10, maxTxsPerSigner: 5}
	a, b := addr(1), addr(2)
	stage := &fakeStage{txs: []*model.Transaction{
		newTx(a, 0, 1, 1000),
		newTx(b, 0, 2, 5),
	}}

	gatherer := NewTxGatherer(stage, store, policy, estimator)
	chain := newFakeChain(model.ChainID{}, 0)
	caps := GatherCaps{MaxBlockBytes: policy.maxBlockBytes, MaxTransactionsPerBlock: policy.maxTxs, MaxTransactionsPerSignerBlk: policy.maxTxsPerSigner}

	got, err := gatherer.Gather(chain, metadata, caps, nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 admitted tx, got %d", len(got))
	}
	if got[0].Signer != b {
		t.Fatalf("expected admitted tx to be signer b's")
	}

	nonce, err := store.GetTxNonce(model.ChainID{}, a)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if nonce != 0 {
		t.Fatalf("expected signer a's nonce to remain 0, got %d", nonce)
	}
}

// Invariant 4 from the testable-properties list: a tx that fails policy
// validation is evicted exactly once via StagePolicy.Ignore.
func TestGatherEvictsOnPolicyViolation(t *testing.T) {
	codec := simplecodec.New()
	estimator := NewSizeEstimator(codec)
	store := newFakeStore()
	a := addr(1)
	bad := newTx(a, 0, 1, 10)
	policy := &fakePolicy{
		maxBlockBytes: 1_000_000, maxTxs: 10, maxTxsPerSigner: 5,
		validate: func(tx *model.Transaction) error {
			if tx.ID == bad.ID {
				return errViolation
			}
			return nil
		},
	}
	stage := &fakeStage{txs: []*model.Transaction{bad}}
	gatherer := NewTxGatherer(stage, store, policy, estimator)
	chain := newFakeChain(model.ChainID{}, 0)
	metadata := model.BlockMetadata{Index: 1, Difficulty: 1}
	caps := GatherCaps{MaxBlockBytes: policy.maxBlockBytes, MaxTransactionsPerBlock: policy.maxTxs, MaxTransactionsPerSignerBlk: policy.maxTxsPerSigner}

	got, err := gatherer.Gather(chain, metadata, caps, nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected 0 admitted txs, got %d", len(got))
	}
	if len(stage.ignored) != 1 || stage.ignored[0] != bad.ID {
		t.Fatalf("expected exactly one Ignore call for %s, got %v", bad.ID, stage.ignored)
	}
}
