// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 pswdapp

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for vaultcore.
// It aggregates all sub-configurations and is populated by merging values
// from environment variables, command-line flags, an optional JSON file,
// and built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Vault holds key-derivation tuning and device identity settings.
	Vault Vault `envPrefix:"VAULT_"`

	// Storage holds the local database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Registry holds the remote account registry endpoint settings.
	Registry Registry `envPrefix:"REGISTRY_"`

	// Workers holds background job settings (auto-lock, approval
	// polling).
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged with the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Vault holds key-derivation and device identity settings.
type Vault struct {
	// KDFTime is the Argon2id iteration count. Zero means the built-in
	// default; values below the crypto package floor are raised, never
	// honored.
	// Env: VAULT_KDF_TIME
	KDFTime uint32 `env:"KDF_TIME"`

	// KDFMemoryKiB is the Argon2id memory cost in KiB.
	// Env: VAULT_KDF_MEMORY_KIB
	KDFMemoryKiB uint32 `env:"KDF_MEMORY_KIB"`

	// KDFThreads is the Argon2id parallelism degree.
	// Env: VAULT_KDF_THREADS
	KDFThreads uint8 `env:"KDF_THREADS"`

	// DeviceName is the human-readable label this device registers
	// under. Defaults to the hostname when empty.
	// Env: VAULT_DEVICE_NAME
	DeviceName string `env:"DEVICE_NAME"`
}

// Storage holds the local database settings.
type Storage struct {
	// DSN is the SQLite file path for the local client database
	// (e.g. "~/.config/vaultcore/vault.db").
	// Env: STORAGE_DSN
	DSN string `env:"DSN"`
}

// Registry holds the remote account registry endpoint settings.
type Registry struct {
	// BaseURL is the root URL of the registry API
	// (e.g. "https://vault.example.com").
	// Env: REGISTRY_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout is the per-request timeout for registry calls
	// (e.g. "30s", "1m").
	// Env: REGISTRY_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds background job settings.
type Workers struct {
	// AutoLockAfter is the idle interval after which an unlocked session
	// is locked and its key material scrubbed.
	// Env: WORKERS_AUTO_LOCK_AFTER
	AutoLockAfter time.Duration `env:"AUTO_LOCK_AFTER"`

	// ApprovalPoll is the interval at which a pending device polls the
	// registry for its approval.
	// Env: WORKERS_APPROVAL_POLL
	ApprovalPoll time.Duration `env:"APPROVAL_POLL"`
}

// GetConfig loads, merges, and validates the vaultcore configuration from
// all available sources in the following priority order (earlier sources
// win for fields they set):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
