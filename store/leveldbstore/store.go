// Package leveldbstore is a reference model.Store backed by a
// goleveldb database: every committed transaction's (signer, nonce) and
// every block's (index -> hash, total_difficulty) live as flat key/value
// pairs, namespaced by chain ID.
package leveldbstore

import (
	"encoding/binary"

	"github.com/daglabs/proposer/domain/proposal/model"
	"github.com/daglabs/proposer/util"
	"github.com/btcsuite/goleveldb/leveldb"
	lderrors "github.com/btcsuite/goleveldb/leveldb/errors"
	"github.com/pkg/errors"
)

// Store is a reference, on-disk model.Store.
type Store struct {
	db *leveldb.DB
}

// Open opens (creating if absent) a leveldb database at path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open leveldb store at %s", path)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// IndexBlockHash returns the hash of the block at index within chainID.
func (s *Store) IndexBlockHash(chainID model.ChainID, index uint64) (model.Hash, bool) {
	value, err := s.db.Get(blockHashKey(chainID, index), nil)
	if err != nil {
		return model.Hash{}, false
	}
	var hash model.Hash
	copy(hash[:], value)
	return hash, true
}

// IndexBlockTotalDifficulty returns the total_difficulty recorded for the
// block at index within chainID.
func (s *Store) IndexBlockTotalDifficulty(chainID model.ChainID, index uint64) (uint64, bool) {
	value, err := s.db.Get(totalDifficultyKey(chainID, index), nil)
	if err != nil {
		return 0, false
	}
	return binary.LittleEndian.Uint64(value), true
}

// GetTxNonce returns the next nonce chainID expects from signer.
func (s *Store) GetTxNonce(chainID model.ChainID, signer util.Address) (uint64, error) {
	value, err := s.db.Get(nonceKey(chainID, signer), nil)
	if err != nil {
		if errors.Is(err, lderrors.ErrNotFound) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "failed to read stored nonce")
	}
	return binary.LittleEndian.Uint64(value), nil
}

// UpdateTxExecutions persists every execution's (signer, nonce+1) as the
// signer's new stored nonce, in a single atomic batch.
func (s *Store) UpdateTxExecutions(chainID model.ChainID, execs []model.TxExecution) error {
	batch := new(leveldb.Batch)
	for _, exec := range execs {
		var value [8]byte
		binary.LittleEndian.PutUint64(value[:], exec.Nonce+1)
		batch.Put(nonceKey(chainID, exec.Signer), value[:])
	}
	if err := s.db.Write(batch, nil); err != nil {
		return errors.Wrap(err, "failed to persist transaction executions")
	}
	return nil
}

// PutBlock records index's hash and cumulative total difficulty, the
// bookkeeping BlockMetadataBuilder relies on for the next block's
// previous_hash and total_difficulty.
func (s *Store) PutBlock(chainID model.ChainID, index uint64, hash model.Hash, totalDifficulty uint64) error {
	batch := new(leveldb.Batch)
	batch.Put(blockHashKey(chainID, index), hash[:])
	var value [8]byte
	binary.LittleEndian.PutUint64(value[:], totalDifficulty)
	batch.Put(totalDifficultyKey(chainID, index), value[:])
	if err := s.db.Write(batch, nil); err != nil {
		return errors.Wrap(err, "failed to persist block index")
	}
	return nil
}

func nonceKey(chainID model.ChainID, signer util.Address) []byte {
	key := make([]byte, 0, 1+len(chainID)+len(signer))
	key = append(key, 'n')
	key = append(key, chainID[:]...)
	key = append(key, signer[:]...)
	return key
}

func blockHashKey(chainID model.ChainID, index uint64) []byte {
	return indexKey('h', chainID, index)
}

func totalDifficultyKey(chainID model.ChainID, index uint64) []byte {
	return indexKey('d', chainID, index)
}

func indexKey(prefix byte, chainID model.ChainID, index uint64) []byte {
	key := make([]byte, 0, 1+len(chainID)+8)
	key = append(key, prefix)
	key = append(key, chainID[:]...)
	var indexBytes [8]byte
	binary.BigEndian.PutUint64(indexBytes[:], index)
	key = append(key, indexBytes[:]...)
	return key
}
