// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Mekhanov

package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func newTestDeriver(t *testing.T) *KeyDeriver {
	t.Helper()
	d, err := NewKeyDeriver(bytes.Repeat([]byte{0x11}, MasterKeySize))
	if err != nil {
		t.Fatalf("NewKeyDeriver error: %v", err)
	}
	return d
}

func TestNewKeyDeriver_RejectsWrongKeyLength(t *testing.T) {
	_, err := NewKeyDeriver([]byte("short"))
	if !errors.Is(err, ErrInvalidMasterKey) {
		t.Fatalf("expected ErrInvalidMasterKey, got %v", err)
	}
}

func TestDeriveUserKey_Deterministic(t *testing.T) {
	d := newTestDeriver(t)
	salt := bytes.Repeat([]byte{0xA1}, MinSaltSize)

	k1, err := d.DeriveUserKey(salt, 7)
	if err != nil {
		t.Fatalf("DeriveUserKey error: %v", err)
	}
	k2, err := d.DeriveUserKey(salt, 7)
	if err != nil {
		t.Fatalf("DeriveUserKey error: %v", err)
	}

	if len(k1) != UserKeySize {
		t.Fatalf("key length = %d, want %d", len(k1), UserKeySize)
	}
	if !bytes.Equal(k1, k2) {
		t.Fatal("same salt and user id must derive the same key")
	}
}

func TestDeriveUserKey_DifferentUsersGetDifferentKeys(t *testing.T) {
	d := newTestDeriver(t)
	salt := bytes.Repeat([]byte{0xA1}, MinSaltSize)

	k1, err := d.DeriveUserKey(salt, 1)
	if err != nil {
		t.Fatalf("DeriveUserKey error: %v", err)
	}
	k2, err := d.DeriveUserKey(salt, 2)
	if err != nil {
		t.Fatalf("DeriveUserKey error: %v", err)
	}

	if bytes.Equal(k1, k2) {
		t.Fatal("different user ids must derive different keys even with equal salts")
	}
}

func TestDeriveUserKey_DifferentSaltsGetDifferentKeys(t *testing.T) {
	d := newTestDeriver(t)

	k1, err := d.DeriveUserKey(bytes.Repeat([]byte{0x01}, MinSaltSize), 1)
	if err != nil {
		t.Fatalf("DeriveUserKey error: %v", err)
	}
	k2, err := d.DeriveUserKey(bytes.Repeat([]byte{0x02}, MinSaltSize), 1)
	if err != nil {
		t.Fatalf("DeriveUserKey error: %v", err)
	}

	if bytes.Equal(k1, k2) {
		t.Fatal("different salts must derive different keys")
	}
}

func TestDeriveUserKey_DifferentMasterKeys(t *testing.T) {
	salt := bytes.Repeat([]byte{0xA1}, MinSaltSize)

	d1, err := NewKeyDeriver(bytes.Repeat([]byte{0x11}, MasterKeySize))
	if err != nil {
		t.Fatalf("NewKeyDeriver error: %v", err)
	}
	d2, err := NewKeyDeriver(bytes.Repeat([]byte{0x22}, MasterKeySize))
	if err != nil {
		t.Fatalf("NewKeyDeriver error: %v", err)
	}

	k1, err := d1.DeriveUserKey(salt, 1)
	if err != nil {
		t.Fatalf("DeriveUserKey error: %v", err)
	}
	k2, err := d2.DeriveUserKey(salt, 1)
	if err != nil {
		t.Fatalf("DeriveUserKey error: %v", err)
	}

	if bytes.Equal(k1, k2) {
		t.Fatal("rotating the master key must change every derived key")
	}
}

func TestDeriveUserKey_ShortSalt(t *testing.T) {
	d := newTestDeriver(t)

	_, err := d.DeriveUserKey(bytes.Repeat([]byte{0x01}, MinSaltSize-1), 1)
	if !errors.Is(err, ErrInvalidSalt) {
		t.Fatalf("expected ErrInvalidSalt, got %v", err)
	}
}

func TestDeriveUserKey_NonPositiveUserID(t *testing.T) {
	d := newTestDeriver(t)
	salt := bytes.Repeat([]byte{0x01}, MinSaltSize)

	for _, id := range []int64{0, -1} {
		if _, err := d.DeriveUserKey(salt, id); !errors.Is(err, ErrInvalidUserID) {
			t.Fatalf("user id %d: expected ErrInvalidUserID, got %v", id, err)
		}
	}
}
