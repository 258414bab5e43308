package proposal

import "fmt"

// CancelReason distinguishes why a MiningDriver search was cancelled.
type CancelReason int

// The two cancellation sources composed by the Proposer.
const (
	// CancelReasonTipChanged means the chain advanced during mining; this
	// is the more informative cause and wins if both sources fire.
	CancelReasonTipChanged CancelReason = iota
	// CancelReasonCaller means the caller's own cancel signal tripped.
	CancelReasonCaller
)

func (r CancelReason) String() string {
	switch r {
	case CancelReasonTipChanged:
		return "TipChanged"
	case CancelReasonCaller:
		return "Caller"
	default:
		return "Unknown"
	}
}

// CancelledError is returned by propose when mining is aborted before a
// winning nonce is found. The caller typically retries on TipChanged, and
// does not retry on Caller.
type CancelledError struct {
	Reason CancelReason
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("proposal cancelled: %s", e.Reason)
}

// InsufficientTransactionsError is returned when TxGatherer produced fewer
// transactions than Policy.MinTransactionsPerBlock(index) requires. No
// mining is attempted and no state is mutated.
type InsufficientTransactionsError struct {
	Index    uint64
	Gathered int
	Required int
}

func (e *InsufficientTransactionsError) Error() string {
	return fmt.Sprintf("insufficient transactions for block %d: gathered %d, need %d",
		e.Index, e.Gathered, e.Required)
}
