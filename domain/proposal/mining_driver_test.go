package proposal

import (
	"testing"
	"time"

	"github.com/daglabs/proposer/codec/simplecodec"
	"github.com/daglabs/proposer/domain/proposal/model"
)

func TestMiningDriverFindsWinningNonce(t *testing.T) {
	codec := simplecodec.New()
	driver := NewMiningDriver(codec, 4)

	a := addr(1)
	content := model.BlockContent{
		Metadata:     model.BlockMetadata{Index: 1, Difficulty: 1},
		Transactions: []*model.Transaction{newTx(a, 0, 1, 10)},
	}

	cancel := make(chan struct{})
	preEval, err := driver.Mine(content, cancel, func() CancelReason { return CancelReasonCaller })
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !codec.MeetsDifficulty(preEval.PreEvaluationHash, content.Metadata.Difficulty) {
		t.Fatalf("winning hash does not meet difficulty")
	}
	gotHash := codec.Hash(codec.MarshalForPoW(content.Metadata, content.Transactions, preEval.Nonce))
	if gotHash != preEval.PreEvaluationHash {
		t.Fatalf("reported hash does not match recomputed hash for winning nonce")
	}
}

func TestMiningDriverCancelledByCaller(t *testing.T) {
	codec := simplecodec.New()
	driver := NewMiningDriver(codec, 2)

	a := addr(1)
	content := model.BlockContent{
		// Effectively unreachable difficulty so only cancellation ends the search.
		Metadata:     model.BlockMetadata{Index: 1, Difficulty: 256},
		Transactions: []*model.Transaction{newTx(a, 0, 1, 10)},
	}

	cancel := make(chan struct{})
	spawn(func() {
		<-time.After(10 * time.Millisecond)
		close(cancel)
	})

	_, err := driver.Mine(content, cancel, func() CancelReason { return CancelReasonCaller })
	cancelled, ok := err.(*CancelledError)
	if !ok {
		t.Fatalf("expected *CancelledError, got %T: %v", err, err)
	}
	if cancelled.Reason != CancelReasonCaller {
		t.Fatalf("expected CancelReasonCaller, got %s", cancelled.Reason)
	}
}
