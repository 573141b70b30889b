package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	defaultRegistryURL    = "http://localhost:8080"
	defaultRequestTimeout = 30 * time.Second
	defaultAutoLockAfter  = 5 * time.Minute
	defaultApprovalPoll   = 5 * time.Second
)

// defaultConfig returns the built-in defaults. KDF parameters stay zero on
// purpose: the crypto package maps zero to its own recommended values.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{
			DSN: defaultDSN(),
		},
		Registry: Registry{
			BaseURL:        defaultRegistryURL,
			RequestTimeout: defaultRequestTimeout,
		},
		Workers: Workers{
			AutoLockAfter: defaultAutoLockAfter,
			ApprovalPoll:  defaultApprovalPoll,
		},
	}
}

// defaultDSN places the client database under the user config directory,
// falling back to the working directory when the home cannot be resolved.
func defaultDSN() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "vault.db"
	}
	return filepath.Join(dir, "vaultcore", "vault.db")
}
