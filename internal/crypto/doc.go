// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Mekhanov

// Package crypto implements the envelope-encryption core of taskvault.
//
// Key hierarchy:
//
//	MasterKey  — 32 bytes, loaded once per process from the environment
//	UserKey    — HKDF-SHA256(MasterKey, user salt, "taskvault-user-<id>")
//	FieldBlob  — AES-256-GCM(UserKey): nonce (12 bytes) ‖ ciphertext+tag
//
// The master key is never persisted by this package, and a user key exists
// only inside a live session. Credential hashing (Argon2id) is independent
// of the encryption chain: it protects login, not data at rest.
package crypto
