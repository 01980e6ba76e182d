package project

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// SecretBytes is the amount of entropy behind a generated secret.
const SecretBytes = 32

// GenerateSecret returns SecretBytes of crypto/rand output, hex encoded.
func GenerateSecret() (string, error) {
	return readSecret(rand.Reader)
}

func readSecret(r io.Reader) (string, error) {
	buf := make([]byte, SecretBytes)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
