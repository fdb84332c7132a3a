// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Mekhanov

package crypto

import (
	"encoding/base64"
	"fmt"
	"os"
)

// MasterKeySize is the required master key length in bytes (AES-256).
const MasterKeySize = 32

// MasterKeyStore holds the process-wide master secret from which every user
// key is derived. It is loaded once at startup, is immutable afterwards and
// is safe to share across goroutines.
type MasterKeyStore struct {
	secret []byte
}

// LoadMasterKey reads a base64-encoded master key from the named environment
// variable and validates it.
//
// The key is read directly from the environment rather than carried through
// the configuration structs so that it can never end up in a config dump or
// a startup log line.
//
// Returns [ErrMasterKeyNotConfigured] if the variable is unset or empty, or
// [ErrMasterKeyFormat] if the value is not base64 of exactly 32 bytes.
func LoadMasterKey(envVar string) (*MasterKeyStore, error) {
	raw := os.Getenv(envVar)
	if raw == "" {
		return nil, fmt.Errorf("%w: environment variable %s is empty", ErrMasterKeyNotConfigured, envVar)
	}

	secret, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMasterKeyFormat, err)
	}

	return NewMasterKeyStore(secret)
}

// NewMasterKeyStore wraps an already decoded master secret, validating its
// length. The input slice is copied so later mutation of the caller's slice
// cannot corrupt the store.
func NewMasterKeyStore(secret []byte) (*MasterKeyStore, error) {
	if len(secret) != MasterKeySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrMasterKeyFormat, len(secret))
	}

	s := make([]byte, MasterKeySize)
	copy(s, secret)
	return &MasterKeyStore{secret: s}, nil
}

// Secret returns a copy of the master secret. Returning a copy keeps the
// stored key immutable no matter what the caller does with the slice.
func (m *MasterKeyStore) Secret() []byte {
	out := make([]byte, MasterKeySize)
	copy(out, m.secret)
	return out
}
