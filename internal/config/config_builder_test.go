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

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestBuild_MergesComplementarySources(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{
			App:     App{MasterKeyEnv: "TASKVAULT_MASTER_KEY"},
			Storage: Storage{DB: DB{DSN: "taskvault.db"}},
		},
		&StructuredConfig{
			Storage: Storage{DB: DB{Driver: "sqlite3"}},
		},
	)

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "TASKVAULT_MASTER_KEY", cfg.App.MasterKeyEnv)
	assert.Equal(t, "taskvault.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "sqlite3", cfg.Storage.DB.Driver)
}

func TestBuild_InvalidMergedConfig(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		App:     App{MasterKeyEnv: "TASKVAULT_MASTER_KEY"},
		Storage: Storage{DB: DB{Driver: "oracle", DSN: "somewhere"}},
	})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

func TestWithJSON_LastSpecifiedPathWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"storage":{"db":{"dsn":"/from/json.db"}}}`), 0o600))

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: "/ignored/earlier.json"},
		&StructuredConfig{JSONFilePath: path},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "/from/json.db", b.configs[2].Storage.DB.DSN)
}

func TestWithJSON_NoPathSpecified(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	require.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_UnreadableFile(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/no/such/file.json"})
	b.withJSON()

	assert.Error(t, b.err)

	_, err := b.build()
	assert.Error(t, err)
}
