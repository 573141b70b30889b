// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 pswdapp

package config

import "strings"

// validate checks that the final merged [StructuredConfig] satisfies the
// client invariants before it is used at startup. With the defaults merged
// in, a failure here means an explicit source set a broken value.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	// An in-memory database would silently forget every wrapped key at
	// exit, locking the user out of their account.
	if cfg.Storage.DSN == "" || strings.Contains(cfg.Storage.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Registry.BaseURL == "" || cfg.Registry.RequestTimeout == 0 {
		return ErrInvalidRegistryConfigs
	}

	if cfg.Workers.AutoLockAfter == 0 || cfg.Workers.ApprovalPoll == 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
