package model

// Encoding is an opaque, codec-owned handle to a partially or fully encoded
// block. SizeEstimator never looks inside it; it only ever calls back into
// the BlockCodec that produced it.
type Encoding interface {
	// Length returns the encoded byte length this Encoding currently
	// represents.
	Length() int
}

// BlockCodec is the external collaborator that owns every byte format and
// hashing primitive the core touches: header/transaction/block marshaling,
// the proof-of-work hash, and the placeholder shape SizeEstimator uses to
// bound encoded size before a signature or state root exists.
type BlockCodec interface {
	// DigestSize is the native width, in bytes, of a hash produced by Hash.
	DigestSize() int

	// PlaceholderSignatureSize is the worst-case length, in bytes, of a
	// proposer signature under this codec's signing scheme (71 for
	// DER-encoded ECDSA over the chosen curve). It is the size of the
	// header placeholder EncodeEmpty reserves when a public key is present;
	// SizeEstimator does not call it and relies on EncodeEmpty instead.
	PlaceholderSignatureSize() int

	// EncodeEmpty returns the encoding of a block with the given metadata
	// and zero transactions, header fields filled with the worst-case
	// placeholder described in §4.B.
	EncodeEmpty(metadata BlockMetadata) Encoding

	// EncodeAppend returns a new Encoding with tx appended to the
	// transaction list encoded in enc. It must not mutate enc.
	EncodeAppend(enc Encoding, tx *Transaction) Encoding

	// MarshalForPoW serializes metadata, the ordered transaction list, and
	// a trial nonce into the exact bytes the proof-of-work hash covers.
	MarshalForPoW(metadata BlockMetadata, txs []*Transaction, nonce uint64) []byte

	// Hash computes this codec's content hash over arbitrary marshaled
	// bytes.
	Hash(data []byte) Hash

	// MeetsDifficulty reports whether hash satisfies the target derived
	// from difficulty, per this codec's leading-bits convention.
	MeetsDifficulty(hash Hash, difficulty uint64) bool

	// HashBlock computes the final content hash of a fully assembled
	// block (pre-evaluation content, winning nonce, pre-evaluation hash,
	// state root, and optional signature).
	HashBlock(content BlockContent, nonce uint64, preEvaluationHash, stateRootHash Hash, signature []byte) Hash
}
