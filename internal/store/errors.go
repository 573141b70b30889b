package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrKeyNotFound is returned when no blob is stored under the
	// requested key kind. On a fresh installation this is the normal
	// state for every kind.
	ErrKeyNotFound = errors.New("key material not found")

	// ErrDeviceNotFound is returned when a query or update targets a
	// device id (or the self row) that does not exist locally.
	ErrDeviceNotFound = errors.New("device not found")

	// ErrEntryNotFound is returned when a vault entry lookup by id or
	// title matches nothing, or an update targets a deleted entry.
	ErrEntryNotFound = errors.New("vault entry not found")
)

// Low-level database operation errors, wrapped around the driver error so
// the original cause stays inspectable.
var (
	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")
)
