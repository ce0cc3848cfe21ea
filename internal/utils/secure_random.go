package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewRepeatCode generates the opaque correlation code shared by all
// instances of one recurrence group: 16 random bytes, hex encoded.
func NewRepeatCode() (string, error) {
	return SecureRandomHex(16)
}

// SecureRandomHex returns a hex string of n cryptographically random bytes.
func SecureRandomHex(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("byte length must be positive")
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
