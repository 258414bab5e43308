package util

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/pkg/errors"
)

// Uint64 returns a cryptographically random uint64, suitable for seeding a
// MiningDriver worker's starting nonce so that repeated runs over the same
// block content do not retrace the same search order.
func Uint64() (uint64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, errors.Wrap(err, "failed to read random bytes")
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
