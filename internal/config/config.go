// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Mekhanov

package config

// StructuredConfig is the top-level configuration container for the
// taskvault application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the master key source
	// and the application version.
	App App `envPrefix:"TASKVAULT_APP_"`

	// Storage holds configuration for the persistence backend.
	Storage Storage `envPrefix:"TASKVAULT_STORAGE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the TASKVAULT_CONFIG environment variable or the
	// -c / -config flag.
	JSONFilePath string `env:"TASKVAULT_CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// MasterKeyEnv names the environment variable that carries the
	// base64-encoded 32-byte master key. Only the variable name travels
	// through configuration; the key itself is read once at startup by
	// the crypto package and never appears in config dumps or logs.
	// Env: TASKVAULT_APP_MASTER_KEY_ENV
	MasterKeyEnv string `env:"MASTER_KEY_ENV" envDefault:"TASKVAULT_MASTER_KEY"`

	// Version is the semantic version string of the running application.
	// Env: TASKVAULT_APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for the persistence backend.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds the relational database connection settings.
type DB struct {
	// Driver selects the database/sql driver: "sqlite3" (default, local
	// single-user file) or "pgx" (PostgreSQL).
	// Env: TASKVAULT_STORAGE_DB_DRIVER
	Driver string `env:"DRIVER" envDefault:"sqlite3"`

	// DSN is the driver-specific data source name. For sqlite3 this is the
	// database file path; for pgx a PostgreSQL connection URI.
	// Env: TASKVAULT_STORAGE_DB_DSN
	DSN string `env:"DSN" envDefault:"taskvault.db"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
