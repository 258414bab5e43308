package model

import "github.com/daglabs/proposer/util"

// Transaction is a signed, opaque-to-the-core unit of staged work. The core
// never interprets Payload; that is the ActionEvaluator's job.
//
// A Transaction is immutable once created: nothing in this repository
// mutates a Transaction's fields after construction.
type Transaction struct {
	ID        Hash
	Signer    util.Address
	Nonce     uint64
	Timestamp int64 // unix seconds, UTC
	Size      int   // serialized size in bytes, per BlockCodec
	Payload   []byte
}

// TxExecution records that a Transaction was admitted into a produced block
// at a given signer/nonce, the unit the Store persists via
// UpdateTxExecutions so a later gather call's stored_nonce lookups see it.
type TxExecution struct {
	TxID   Hash
	Signer util.Address
	Nonce  uint64
}

// TxExecutionsFromTransactions derives the TxExecution list for a block's
// admitted transactions, in the order they were admitted.
func TxExecutionsFromTransactions(txs []*Transaction) []TxExecution {
	execs := make([]TxExecution, len(txs))
	for i, tx := range txs {
		execs[i] = TxExecution{TxID: tx.ID, Signer: tx.Signer, Nonce: tx.Nonce}
	}
	return execs
}
