package model

// TxPriorityFunc orders two staged transactions for gathering purposes; it
// is applied before the mandatory (signer, nonce) tiebreak, never after.
// A nil TxPriorityFunc means "no preference beyond (signer, nonce)".
type TxPriorityFunc func(a, b *Transaction) bool

// StagePolicy is the staging-pool collaborator: a logical, ordered view of
// transactions accepted into the local pool but not yet included in any
// block, plus eviction for transactions the gatherer determines are
// permanently unfit.
type StagePolicy interface {
	// ListStaged returns an ordered snapshot of staged transactions, sorted
	// by priority if given, with ties (and, within a signer, all order)
	// broken by (signer, nonce) ascending.
	ListStaged(chain Chain, priority TxPriorityFunc) ([]*Transaction, error)

	// Ignore permanently evicts txID from the pool. Called when a staged
	// transaction fails policy validation during gather.
	Ignore(chain Chain, txID Hash)
}
