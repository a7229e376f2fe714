// Package random provides cryptographic seed generation helpers.
package random

import (
	crand "crypto/rand"
	"encoding/binary"

	apperrors "github.com/louisbranch/telltale/internal/errors"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, apperrors.Wrap(apperrors.CodeSeedUnavailable, "read random seed", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
