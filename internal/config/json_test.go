// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Mekhanov

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSONConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJSON_AllFields(t *testing.T) {
	path := writeJSONConfig(t, `{
		"app": {
			"master_key_env": "MY_MASTER_KEY",
			"version": "1.2.3"
		},
		"storage": {
			"db": {
				"driver": "pgx",
				"dsn": "postgres://localhost/taskvault"
			}
		}
	}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "MY_MASTER_KEY", cfg.App.MasterKeyEnv)
	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, "pgx", cfg.Storage.DB.Driver)
	assert.Equal(t, "postgres://localhost/taskvault", cfg.Storage.DB.DSN)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_PartialFile(t *testing.T) {
	path := writeJSONConfig(t, `{"storage": {"db": {"dsn": "/data/vault.db"}}}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/vault.db", cfg.Storage.DB.DSN)
	assert.Empty(t, cfg.App.MasterKeyEnv)
}

func TestParseJSON_FileMissing(t *testing.T) {
	_, err := parseJSON("/no/such/file.json")
	assert.Error(t, err)
}

func TestParseJSON_MalformedFile(t *testing.T) {
	path := writeJSONConfig(t, `{"app": `)

	_, err := parseJSON(path)
	assert.Error(t, err)
}
