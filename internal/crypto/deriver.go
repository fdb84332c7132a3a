// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Mekhanov

package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/crypto/hkdf"
)

const (
	// UserKeySize is the derived per-user key length in bytes (AES-256).
	UserKeySize = 32

	// MinSaltSize is the minimum accepted key-derivation salt length.
	MinSaltSize = 16

	// userKeyInfoPrefix domain-separates user-key derivation from any other
	// future use of the same master key. The user id is appended in decimal
	// form, so two users can never derive the same key even if they somehow
	// shared a salt.
	userKeyInfoPrefix = "taskvault-user-"
)

// KeyDeriver deterministically derives per-user encryption keys from the
// process master key. It is immutable after construction and safe to share
// across goroutines.
type KeyDeriver struct {
	masterKey []byte
}

// NewKeyDeriver constructs a KeyDeriver over the given master key.
// Returns [ErrInvalidMasterKey] if the key is not exactly 32 bytes.
func NewKeyDeriver(masterKey []byte) (*KeyDeriver, error) {
	if len(masterKey) != MasterKeySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidMasterKey, len(masterKey))
	}

	key := make([]byte, MasterKeySize)
	copy(key, masterKey)
	return &KeyDeriver{masterKey: key}, nil
}

// DeriveUserKey derives the 32-byte encryption key for the given user via
// HKDF-SHA256:
//
//	IKM  = master key
//	Salt = userSalt (>= 16 bytes, stored with the account)
//	Info = "taskvault-user-" + decimal userID
//
// The derivation is deterministic: the key is recomputed at every login and
// never stored.
//
// Returns [ErrInvalidSalt] if the salt is shorter than 16 bytes or
// [ErrInvalidUserID] if userID is not positive.
func (d *KeyDeriver) DeriveUserKey(userSalt []byte, userID int64) ([]byte, error) {
	if len(userSalt) < MinSaltSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidSalt, len(userSalt))
	}
	if userID <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidUserID, userID)
	}

	info := []byte(userKeyInfoPrefix + strconv.FormatInt(userID, 10))

	reader := hkdf.New(sha256.New, d.masterKey, userSalt, info)
	key := make([]byte, UserKeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("hkdf expand: %w", err)
	}

	return key, nil
}
