// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 pswdapp

// Package validators enforces the structural rules on vault entries before
// any cryptography runs: a payload that does not match its declared entry
// type is rejected in clear, not discovered after decryption.
package validators

import "github.com/pswdapp/vaultcore/models"

// EntryValidator validates a vault entry's clear attributes and plaintext
// payload prior to sealing.
type EntryValidator interface {

	// Validate checks title, entry type, and that payload carries exactly
	// the typed section the entry type requires.
	Validate(title, entryType string, payload models.EntryPayload) error
}
