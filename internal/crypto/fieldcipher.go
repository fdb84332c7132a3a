// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Mekhanov

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/amekhanov/taskvault/models"
)

// NonceSize is the AES-GCM nonce length in bytes. The nonce is prepended to
// every encrypted blob so that the decryption side can locate it.
const NonceSize = 12

// FieldCipher performs authenticated encryption of individual text fields
// under a single derived user key. Instances are cheap to construct, bound
// to exactly one key, and safe for concurrent use.
type FieldCipher struct {
	aead cipher.AEAD
}

// NewFieldCipher builds a FieldCipher over the given 32-byte key using
// AES-256-GCM. Returns [ErrInvalidKey] for any other key length.
func NewFieldCipher(key []byte) (*FieldCipher, error) {
	if len(key) != UserKeySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKey, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &FieldCipher{aead: gcm}, nil
}

// Encrypt encrypts plaintext and returns the blob nonce ‖ ciphertext+tag.
// A fresh random 12-byte nonce is drawn from the OS CSPRNG on every call,
// so encrypting the same plaintext twice yields different blobs.
//
// An empty plaintext is a valid input and produces a valid (non-empty)
// blob: an encrypted empty string is distinct from an absent field.
func (c *FieldCipher) Encrypt(plaintext string) (models.EncryptedField, error) {
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := c.aead.Seal(nil, nonce, []byte(plaintext), nil)
	return models.EncryptedField(append(nonce, ciphertext...)), nil
}

// Decrypt verifies and decrypts a blob produced by [FieldCipher.Encrypt].
//
// An empty field decrypts to "" — it represents an optional attribute that
// was never set, not an error. Any other blob that is too short, tampered
// with, or encrypted under a different key fails with
// [ErrDecryptionFailed]; a tag mismatch is never converted into a default
// value.
func (c *FieldCipher) Decrypt(field models.EncryptedField) (string, error) {
	if field.IsEmpty() {
		return "", nil
	}

	if len(field) < NonceSize {
		return "", fmt.Errorf("%w: blob shorter than nonce", ErrDecryptionFailed)
	}

	nonce, ciphertext := field[:NonceSize], field[NonceSize:]

	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	return string(plaintext), nil
}
