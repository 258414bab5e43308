// Package simplecodec is a reference BlockCodec: a minimal, deterministic
// binary encoding good enough to exercise every SizeEstimator and
// MiningDriver contract, without claiming to be any particular chain's wire
// format.
package simplecodec

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/daglabs/proposer/domain/proposal/model"
)

// placeholderSignatureSize is the worst-case DER-encoded ECDSA signature
// length for the curve this reference codec assumes (secp256k1), carried
// as a codec-owned constant per the design note that it must not be a
// magic number outside the codec.
const placeholderSignatureSize = 71

// digestSize is the width, in bytes, of a SHA-256 digest.
const digestSize = sha256.Size

// Codec is the reference BlockCodec implementation.
type Codec struct{}

// New returns a reference Codec.
func New() *Codec {
	return &Codec{}
}

// DigestSize returns the native width of a Hash produced by this codec.
func (c *Codec) DigestSize() int {
	return digestSize
}

// PlaceholderSignatureSize returns the worst-case placeholder signature
// length this codec reserves when sizing a block header before a real
// signature exists.
func (c *Codec) PlaceholderSignatureSize() int {
	return placeholderSignatureSize
}

// encoding is the concrete, codec-owned Encoding handle: the fully
// marshaled header plus every transaction appended so far, concatenated.
type encoding struct {
	header []byte
	body   []byte
}

// Length implements model.Encoding.
func (e *encoding) Length() int {
	return len(e.header) + len(e.body)
}

// EncodeEmpty builds the encoding of a block with the given metadata and
// zero transactions; the header reserves a full-width placeholder
// signature when metadata carries a public key.
func (c *Codec) EncodeEmpty(metadata model.BlockMetadata) model.Encoding {
	return &encoding{header: c.marshalHeader(metadata), body: nil}
}

// EncodeAppend returns a new encoding with tx appended to enc's transaction
// list; it does not mutate enc.
func (c *Codec) EncodeAppend(enc model.Encoding, tx *model.Transaction) model.Encoding {
	e := enc.(*encoding)
	body := make([]byte, len(e.body), len(e.body)+8+len(tx.Payload)+digestSize+20+16)
	copy(body, e.body)
	body = appendTx(body, tx)
	return &encoding{header: e.header, body: body}
}

// MarshalForPoW serializes metadata, the ordered transaction list, and a
// trial nonce into the exact bytes the proof-of-work hash covers.
func (c *Codec) MarshalForPoW(metadata model.BlockMetadata, txs []*model.Transaction, nonce uint64) []byte {
	buf := c.marshalHeader(metadata)
	var nonceBytes [8]byte
	binary.LittleEndian.PutUint64(nonceBytes[:], nonce)
	buf = append(buf, nonceBytes[:]...)
	for _, tx := range txs {
		buf = appendTx(buf, tx)
	}
	return buf
}

// Hash computes the SHA-256 digest of data.
func (c *Codec) Hash(data []byte) model.Hash {
	return model.Hash(sha256.Sum256(data))
}

// MeetsDifficulty reports whether hash has at least difficulty leading
// zero bits, the simplest possible leading-bits convention.
func (c *Codec) MeetsDifficulty(hash model.Hash, difficulty uint64) bool {
	leadingZeroBits := uint64(0)
	for _, b := range hash {
		if b == 0 {
			leadingZeroBits += 8
			continue
		}
		for mask := byte(0x80); mask != 0; mask >>= 1 {
			if b&mask != 0 {
				return leadingZeroBits >= difficulty
			}
			leadingZeroBits++
		}
	}
	return leadingZeroBits >= difficulty
}

// HashBlock computes the final content hash of a fully assembled block.
func (c *Codec) HashBlock(content model.BlockContent, nonce uint64, preEvaluationHash, stateRootHash model.Hash, signature []byte) model.Hash {
	buf := c.marshalHeader(content.Metadata)
	var nonceBytes [8]byte
	binary.LittleEndian.PutUint64(nonceBytes[:], nonce)
	buf = append(buf, nonceBytes[:]...)
	buf = append(buf, preEvaluationHash[:]...)
	buf = append(buf, stateRootHash[:]...)
	buf = append(buf, signature...)
	return c.Hash(buf)
}

// marshalHeader encodes the metadata fields (the previous hash is
// digestSize zero bytes at genesis) plus a full-width zero placeholder
// signature when a public key is present, and none otherwise. It reserves
// no bytes for the nonce, pre-evaluation hash, state root hash or block
// hash, so EncodeEmpty's length does not count those fields.
func (c *Codec) marshalHeader(metadata model.BlockMetadata) []byte {
	buf := make([]byte, 0, 8+8+8+digestSize+8+placeholderSignatureSize)

	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], metadata.Index)
	buf = append(buf, scratch[:]...)
	binary.LittleEndian.PutUint64(scratch[:], metadata.Difficulty)
	buf = append(buf, scratch[:]...)
	binary.LittleEndian.PutUint64(scratch[:], metadata.TotalDifficulty)
	buf = append(buf, scratch[:]...)
	buf = append(buf, metadata.PreviousHash[:]...)
	binary.LittleEndian.PutUint64(scratch[:], uint64(metadata.Timestamp.Unix()))
	buf = append(buf, scratch[:]...)

	if len(metadata.PublicKey) > 0 {
		placeholder := make([]byte, placeholderSignatureSize)
		buf = append(buf, placeholder...)
	}

	return buf
}

// appendTx marshals a single transaction's essential fields into buf.
func appendTx(buf []byte, tx *model.Transaction) []byte {
	buf = append(buf, tx.ID[:]...)
	buf = append(buf, tx.Signer[:]...)
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], tx.Nonce)
	buf = append(buf, scratch[:]...)
	binary.LittleEndian.PutUint64(scratch[:], uint64(tx.Timestamp))
	buf = append(buf, scratch[:]...)
	buf = append(buf, tx.Payload...)
	return buf
}
