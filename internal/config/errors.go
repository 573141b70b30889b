package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or unsupported in-memory DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidRegistryConfigs indicates invalid registry settings
	// (for example, missing base URL or zero request timeout).
	ErrInvalidRegistryConfigs = errors.New("invalid registry configuration")
	// ErrInvalidWorkerConfigs indicates invalid background job settings
	// (for example, zero auto-lock or poll interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
