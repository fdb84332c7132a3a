// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Mekhanov

// Package config loads and merges taskvault configuration from environment
// variables, command-line flags and an optional JSON file, in that priority
// order (later sources win for fields they set).
//
// The master key itself deliberately does not travel through this package:
// configuration carries only the name of the environment variable that
// holds it.
package config
