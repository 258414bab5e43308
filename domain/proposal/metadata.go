package proposal

import (
	"time"

	"github.com/daglabs/proposer/domain/proposal/model"
	"github.com/pkg/errors"
)

// BlockMetadataBuilder computes the metadata of the next candidate block
// from the chain's current tip. It is pure given its inputs: it has no side
// effects and performs no mining.
type BlockMetadataBuilder struct {
	policy model.Policy
	store  model.Store
}

// NewBlockMetadataBuilder returns a BlockMetadataBuilder backed by the given
// Policy and Store collaborators.
func NewBlockMetadataBuilder(policy model.Policy, store model.Store) *BlockMetadataBuilder {
	return &BlockMetadataBuilder{policy: policy, store: store}
}

// Build computes the BlockMetadata for the next block on chain, proposed by
// publicKey at timestamp.
//
// index is chain.Count(); previousHash is Store.IndexBlockHash(id, index-1)
// when index > 0, and absent at genesis. difficulty comes from
// Policy.NextBlockDifficulty; totalDifficulty is the tip's total difficulty
// plus this block's own, satisfying invariant 1 of §3.
func (b *BlockMetadataBuilder) Build(chain model.Chain, publicKey []byte, timestamp time.Time) (model.BlockMetadata, error) {
	index := chain.Count()

	difficulty, err := b.policy.NextBlockDifficulty(chain)
	if err != nil {
		return model.BlockMetadata{}, errors.Wrap(err, "failed to compute next block difficulty")
	}

	metadata := model.BlockMetadata{
		Index:      index,
		Difficulty: difficulty,
		PublicKey:  publicKey,
		Timestamp:  timestamp,
	}

	if index == 0 {
		metadata.TotalDifficulty = difficulty
		return metadata, nil
	}

	previousHash, ok := b.store.IndexBlockHash(chain.ID(), index-1)
	if !ok {
		return model.BlockMetadata{}, errors.Errorf("no block hash stored for index %d", index-1)
	}
	metadata.PreviousHash = previousHash
	metadata.HasPreviousHash = true

	tipTotalDifficulty, ok := b.store.IndexBlockTotalDifficulty(chain.ID(), index-1)
	if !ok {
		return model.BlockMetadata{}, errors.Errorf("no total difficulty stored for index %d", index-1)
	}
	metadata.TotalDifficulty = tipTotalDifficulty + difficulty

	return metadata, nil
}
