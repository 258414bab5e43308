package proposal

import "github.com/daglabs/proposer/domain/proposal/model"

// SizeEstimator maintains an incremental lower bound on the encoded size of
// a block under construction, without requiring a signature or state root
// to exist yet. It delegates every byte-format decision to a BlockCodec;
// this type only sequences the empty/append/length calls TxGatherer needs.
type SizeEstimator struct {
	codec model.BlockCodec
}

// NewSizeEstimator returns a SizeEstimator backed by codec.
func NewSizeEstimator(codec model.BlockCodec) *SizeEstimator {
	return &SizeEstimator{codec: codec}
}

// Empty returns the encoding of a block with the given metadata and zero
// transactions, header fields filled with the codec's worst-case
// placeholder (a full-width signature when metadata carries a public key,
// none otherwise).
func (e *SizeEstimator) Empty(metadata model.BlockMetadata) model.Encoding {
	return e.codec.EncodeEmpty(metadata)
}

// Append returns a new Encoding with tx appended to enc's transaction list.
// It does not mutate enc.
func (e *SizeEstimator) Append(enc model.Encoding, tx *model.Transaction) model.Encoding {
	return e.codec.EncodeAppend(enc, tx)
}

// Length returns the encoded byte length of enc.
func (e *SizeEstimator) Length(enc model.Encoding) int {
	return enc.Length()
}
