package store

import (
	"context"
	"time"

	"github.com/pswdapp/vaultcore/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// KeyStore persists the key-management rows: wrapped private keys under
// their [models.KeyKind], plus the non-secret slots (salts, KDF params,
// install ID, cached account). It never sees a plaintext private key;
// private-key kinds only ever hold AEAD blobs.
type KeyStore interface {
	// Put inserts or replaces the blob stored under kind.
	Put(ctx context.Context, kind models.KeyKind, blob []byte) error

	// Get returns the blob stored under kind, or [ErrKeyNotFound].
	Get(ctx context.Context, kind models.KeyKind) ([]byte, error)

	// Delete removes the blob stored under kind. Deleting an absent kind
	// is not an error.
	Delete(ctx context.Context, kind models.KeyKind) error

	// Clear removes every row. Used when an account is detached from the
	// device.
	Clear(ctx context.Context) error
}

// DeviceStore keeps the account's device list: exactly one row marked
// IsSelf for this installation, plus peer devices cached from the
// registry. SetMaster preserves the single-master invariant in one
// transaction.
type DeviceStore interface {
	SaveDevice(ctx context.Context, device models.DeviceIdentity) error
	Self(ctx context.Context) (models.DeviceIdentity, error)
	ListDevices(ctx context.Context) ([]models.DeviceIdentity, error)
	SetMaster(ctx context.Context, deviceID string) error
	SetStatus(ctx context.Context, deviceID string, status models.DeviceStatus) error
	Touch(ctx context.Context, deviceID string, at time.Time) error
}

// EntryStore is the local cache of encrypted vault entries. Payloads are
// opaque ciphertext; the store indexes only id, title and type.
type EntryStore interface {
	SaveEntry(ctx context.Context, entry models.VaultEntry) error
	Entry(ctx context.Context, entryID string) (models.VaultEntry, error)
	EntryByTitle(ctx context.Context, title string) (models.VaultEntry, error)
	ListEntries(ctx context.Context) ([]models.VaultEntry, error)
	DeleteEntry(ctx context.Context, entryID string) error
}
