// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Mekhanov

package crypto

import "errors"

// Sentinel errors returned by the crypto package. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrMasterKeyNotConfigured is returned when the configured environment
	// variable holds no master key at all. Fatal at startup: the process
	// cannot encrypt or decrypt anything without it.
	ErrMasterKeyNotConfigured = errors.New("master key is not configured")

	// ErrMasterKeyFormat is returned when the configured value is not valid
	// base64 or does not decode to exactly 32 bytes.
	ErrMasterKeyFormat = errors.New("master key must be base64 of exactly 32 bytes")

	// ErrInvalidMasterKey is returned by the key deriver when the supplied
	// master key is not exactly 32 bytes.
	ErrInvalidMasterKey = errors.New("master key must be exactly 32 bytes")

	// ErrInvalidSalt is returned when a key-derivation salt is shorter than
	// 16 bytes.
	ErrInvalidSalt = errors.New("user salt must be at least 16 bytes")

	// ErrInvalidUserID is returned when the user id used for domain
	// separation is not a positive integer.
	ErrInvalidUserID = errors.New("user id must be a positive integer")

	// ErrInvalidKey is returned when a field cipher is constructed with a
	// key that is not exactly 32 bytes.
	ErrInvalidKey = errors.New("field cipher key must be exactly 32 bytes")

	// ErrDecryptionFailed is returned when an encrypted blob is too short,
	// was tampered with, or was encrypted under a different key. It is a
	// hard failure: corrupted data must never surface as valid content.
	ErrDecryptionFailed = errors.New("field decryption failed")

	// ErrEmptyPassword is returned when an empty password is offered for
	// hashing.
	ErrEmptyPassword = errors.New("password cannot be empty")
)
