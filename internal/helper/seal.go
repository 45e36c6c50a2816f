package helper

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

var ErrSealedValueInvalid = errors.New("sealed value is invalid")

const sealKeyInfo = "afrilance-session-token"

func deriveKey(secret string) *[32]byte {
	var key [32]byte
	// Reading 32 bytes from HKDF-SHA256 cannot fail.
	io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(sealKeyInfo)), key[:])
	return &key
}

// Seal encrypts plaintext with a key derived from secret and returns the
// nonce-prefixed box, base64 encoded.
func Seal(plaintext, secret string) (string, error) {
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("failed to read nonce: %w", err)
	}

	box := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, deriveKey(secret))
	return base64.RawURLEncoding.EncodeToString(box), nil
}

func Open(sealed, secret string) (string, error) {
	box, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil || len(box) < 24 {
		return "", ErrSealedValueInvalid
	}

	var nonce [24]byte
	copy(nonce[:], box[:24])

	plaintext, ok := secretbox.Open(nil, box[24:], &nonce, deriveKey(secret))
	if !ok {
		return "", ErrSealedValueInvalid
	}
	return string(plaintext), nil
}
