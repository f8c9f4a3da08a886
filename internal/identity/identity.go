// Package identity derives registry keys from national identity numbers.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

var ErrEmptyNationalID = errors.New("national id is empty")

// DeriveVoterID returns the hex BLAKE2b-256 of the normalized national id,
// keyed with pepper. The same input and pepper always yield the same id.
func DeriveVoterID(nationalID, pepper string) (string, error) {
	normalized := normalize(nationalID)
	if normalized == "" {
		return "", ErrEmptyNationalID
	}

	var key []byte
	if pepper != "" {
		key = []byte(pepper)
		if len(key) > blake2b.Size {
			sum := sha256.Sum256(key)
			key = sum[:]
		}
	}

	h, err := blake2b.New256(key)
	if err != nil {
		return "", fmt.Errorf("failed to init hash: %w", err)
	}
	h.Write([]byte(normalized))
	return hex.EncodeToString(h.Sum(nil)), nil
}

// BiometricReference is the stored comparison key for a biometric proof.
func BiometricReference(proof string) string {
	sum := sha256.Sum256([]byte(proof))
	return hex.EncodeToString(sum[:])
}

// normalize drops separators so "123.456.789-00" and "12345678900" match.
func normalize(nationalID string) string {
	var b strings.Builder
	for _, r := range nationalID {
		switch r {
		case '.', '-', '/', ' ':
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}
