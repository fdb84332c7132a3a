// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Mekhanov

package crypto

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"
)

const testKeyEnvVar = "TASKVAULT_TEST_MASTER_KEY"

func TestLoadMasterKey_Unset(t *testing.T) {
	t.Setenv(testKeyEnvVar, "")

	_, err := LoadMasterKey(testKeyEnvVar)
	if !errors.Is(err, ErrMasterKeyNotConfigured) {
		t.Fatalf("expected ErrMasterKeyNotConfigured, got %v", err)
	}
}

func TestLoadMasterKey_NotBase64(t *testing.T) {
	t.Setenv(testKeyEnvVar, "not-valid-base64!!!")

	_, err := LoadMasterKey(testKeyEnvVar)
	if !errors.Is(err, ErrMasterKeyFormat) {
		t.Fatalf("expected ErrMasterKeyFormat, got %v", err)
	}
}

func TestLoadMasterKey_WrongLength(t *testing.T) {
	t.Setenv(testKeyEnvVar, base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0x01}, 16)))

	_, err := LoadMasterKey(testKeyEnvVar)
	if !errors.Is(err, ErrMasterKeyFormat) {
		t.Fatalf("expected ErrMasterKeyFormat for a 16-byte key, got %v", err)
	}
}

func TestLoadMasterKey_Valid(t *testing.T) {
	secret := bytes.Repeat([]byte{0xAB}, MasterKeySize)
	t.Setenv(testKeyEnvVar, base64.StdEncoding.EncodeToString(secret))

	store, err := LoadMasterKey(testKeyEnvVar)
	if err != nil {
		t.Fatalf("LoadMasterKey error: %v", err)
	}
	if !bytes.Equal(store.Secret(), secret) {
		t.Fatal("loaded secret does not match the environment value")
	}
}

func TestMasterKeyStore_SecretIsACopy(t *testing.T) {
	secret := bytes.Repeat([]byte{0x42}, MasterKeySize)

	store, err := NewMasterKeyStore(secret)
	if err != nil {
		t.Fatalf("NewMasterKeyStore error: %v", err)
	}

	// mutating the input or the returned slice must not touch the store
	secret[0] = 0x00
	got := store.Secret()
	got[1] = 0x00

	fresh := store.Secret()
	if fresh[0] != 0x42 || fresh[1] != 0x42 {
		t.Fatal("master key store leaked a mutable reference to its secret")
	}
}
