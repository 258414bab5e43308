package model

import "github.com/daglabs/proposer/util"

// Store is the persistent collaborator: it resolves a historical block's
// hash by index and tracks the next expected nonce per signer.
type Store interface {
	// IndexBlockHash returns the hash of the block at index within chainID,
	// or ok == false if no such block is known.
	IndexBlockHash(chainID ChainID, index uint64) (hash Hash, ok bool)

	// IndexBlockTotalDifficulty returns the total_difficulty recorded for
	// the block at index within chainID, or ok == false if no such block is
	// known. BlockMetadataBuilder adds the next block's own difficulty to
	// this value per the chain rule total_difficulty(new) =
	// total_difficulty(tip) + difficulty(new).
	IndexBlockTotalDifficulty(chainID ChainID, index uint64) (totalDifficulty uint64, ok bool)

	// GetTxNonce returns the next nonce chainID expects from signer: one
	// past the highest nonce already committed for that signer, or 0 if
	// none has ever been committed.
	GetTxNonce(chainID ChainID, signer util.Address) (uint64, error)

	// UpdateTxExecutions persists the executions admitted into a produced
	// block so later GetTxNonce calls observe them.
	UpdateTxExecutions(chainID ChainID, execs []TxExecution) error
}

// ChainID identifies a chain instance to its Store and StagePolicy.
type ChainID [HashSize]byte
