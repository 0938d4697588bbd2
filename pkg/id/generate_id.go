package id

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// NewID32 returns a random (version 4) UUID as exactly 32 lowercase hex
// characters, with no separators or prefix.
func NewID32() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}
