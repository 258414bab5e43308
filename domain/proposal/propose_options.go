package proposal

import (
	"time"

	"github.com/daglabs/proposer/domain/proposal/model"
)

// ProposeOptions carries the optional parameters of Propose. A zero value
// is valid: Timestamp defaults to time.Now().UTC(), Append defaults to
// true, the three caps default from Policy at the chain's current count,
// and Cancel defaults to never.
type ProposeOptions struct {
	Timestamp time.Time

	// AppendSet reports whether Append was explicitly provided; when
	// false, Propose treats the proposal as append=true.
	AppendSet bool
	Append    bool

	MaxBlockBytes               int64
	MaxTransactions             int
	MaxTransactionsPerSignerBlk int

	TxPriority model.TxPriorityFunc

	// Cancel, if non-nil, is the caller's own cancellation signal.
	Cancel <-chan struct{}
}

func (o ProposeOptions) timestamp() time.Time {
	if o.Timestamp.IsZero() {
		return time.Now().UTC()
	}
	return o.Timestamp
}

func (o ProposeOptions) append() bool {
	if !o.AppendSet {
		return true
	}
	return o.Append
}
