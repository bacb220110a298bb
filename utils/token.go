package utils

import (
	"crypto/rand"
	"fmt"
)

// RandomSecret returns n bytes from the system CSPRNG.
func RandomSecret(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}
	return b, nil
}
