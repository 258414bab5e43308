// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package model

import "encoding/hex"

// HashSize is the fixed width, in bytes, of every hash this package deals
// in: transaction IDs, block hashes, and pre-evaluation hashes are all
// codec-native digests of this width.
const HashSize = 32

// Hash is a codec-native digest: a transaction ID, a block hash, or a
// pre-evaluation hash, depending on context.
type Hash [HashSize]byte

// String returns the hex encoding of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether h is the all-zero value. BlockMetadata signals
// "no previous block" through HasPreviousHash, not through this method.
func (h Hash) IsZero() bool {
	return h == Hash{}
}
