// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/ripemd160"
)

// AddressSize is the fixed width, in bytes, of an Address.
const AddressSize = ripemd160.Size

// Address is a fixed-width identifier derived from a proposer's public key.
// It has no network prefix and no script-destination variants: the proposal
// core only needs it as an opaque signer identity, never as a spendable
// script target.
type Address [AddressSize]byte

// NewAddressFromPublicKey derives an Address from a serialized public key by
// hashing it the same way AddressPubKeyHash historically did: SHA-256
// followed by RIPEMD-160.
func NewAddressFromPublicKey(publicKey []byte) Address {
	var addr Address
	copy(addr[:], Hash160(publicKey))
	return addr
}

// String returns the hex encoding of the address.
func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// IsZero reports whether the address is the all-zero value, which is what
// BlockMetadata.Address returns for metadata with no proposer public key.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Hash160 calculates the RIPEMD-160 hash of the SHA-256 hash of the given
// data, the same digest bitcoin-style pubkey-hash addresses use.
func Hash160(buf []byte) []byte {
	sha := sha256.Sum256(buf)
	ripemd := ripemd160.New()
	ripemd.Write(sha[:])
	return ripemd.Sum(nil)
}
