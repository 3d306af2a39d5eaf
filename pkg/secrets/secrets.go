// Package secrets seals small blobs with a passphrase.
//
// The sealed layout is salt (16 bytes) | nonce (24 bytes) | secretbox output.
// The key is derived from the passphrase with scrypt and the per-blob salt.
package secrets

import (
	"crypto/rand"
	"encoding/base64"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"

	dErrors "tenderai/pkg/domain-errors"
)

const (
	saltSize  = 16
	nonceSize = 24
	keySize   = 32

	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// Generate creates a cryptographically secure random secret.
// Returns a base64-encoded string suitable for use as a passphrase.
func Generate() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeStorage, "could not generate secret")
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Seal encrypts plaintext under passphrase.
func Seal(passphrase string, plaintext []byte) ([]byte, error) {
	if passphrase == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "passphrase cannot be empty")
	}
	header := make([]byte, saltSize+nonceSize)
	if _, err := rand.Read(header); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorage, "could not read random bytes")
	}
	key, err := deriveKey(passphrase, header[:saltSize])
	if err != nil {
		return nil, err
	}
	var nonce [nonceSize]byte
	copy(nonce[:], header[saltSize:])
	return secretbox.Seal(header, plaintext, &nonce, key), nil
}

// Open decrypts a blob produced by Seal. A wrong passphrase and a tampered
// blob are indistinguishable and both fail with CodeStorage.
func Open(passphrase string, sealed []byte) ([]byte, error) {
	if passphrase == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "passphrase cannot be empty")
	}
	if len(sealed) < saltSize+nonceSize+secretbox.Overhead {
		return nil, dErrors.New(dErrors.CodeStorage, "sealed data is too short")
	}
	key, err := deriveKey(passphrase, sealed[:saltSize])
	if err != nil {
		return nil, err
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[saltSize:saltSize+nonceSize])
	plain, ok := secretbox.Open(nil, sealed[saltSize+nonceSize:], &nonce, key)
	if !ok {
		return nil, dErrors.New(dErrors.CodeStorage, "could not decrypt sealed data")
	}
	return plain, nil
}

func deriveKey(passphrase string, salt []byte) (*[keySize]byte, error) {
	raw, err := scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, keySize)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorage, "could not derive key")
	}
	var key [keySize]byte
	copy(key[:], raw)
	return &key, nil
}
