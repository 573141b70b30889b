package service

import (
	"context"
	"time"

	"github.com/pswdapp/vaultcore/models"
)

// SessionService is the unlock/lock state machine owning the in-memory key
// material of this process. Exactly one instance exists per running client;
// every other service borrows decrypted keys from it and never holds them
// across calls.
type SessionService interface {
	// Unlock derives the master key from password, unwraps the stored key
	// blobs and transitions Locked -> Unlocked. A wrong password and a
	// device with no account on it both return [ErrInvalidCredentials]
	// after a full-cost decoy derivation, so the two cases cannot be told
	// apart by timing or message. Unlock performs no network calls and no
	// writes; it only reads the local key store. Unlocking an already
	// unlocked session is a no-op.
	Unlock(ctx context.Context, password string) error

	// Lock zeroizes every secret buffer of the session and transitions to
	// Locked. A Lock issued while an Unlock is in flight waits for the
	// unlock to finish and then scrubs; it never observes a half-built
	// session. Safe to call on a locked session.
	Lock()

	// Close is a defer-friendly alias for Lock, so callers can tie the
	// session lifetime to a scope.
	Close()

	// State reports the current lifecycle state without blocking on an
	// in-flight unlock.
	State() SessionState

	// Unlocked reports whether decrypted key material is resident.
	Unlocked() bool

	// UnlockedAt returns when the current session was established, zero
	// when locked.
	UnlockedAt() time.Time

	// LastActivity returns the last time session key material was used.
	// The auto-lock job compares it against the idle limit.
	LastActivity() time.Time

	// EntryKey derives a fresh vault-entry key from the decrypted
	// identity encryption private key. The caller must scrub the returned
	// key after use. Returns [ErrLocked] when no session is resident.
	EntryKey() ([]byte, error)

	// Secrets returns copies of the decrypted private keys for operations
	// that need them directly (device approval). The caller must scrub
	// the copies. Returns [ErrLocked] when no session is resident.
	Secrets() (SessionSecrets, error)

	// AuthVerifier returns the registry login credential held by the
	// unlocked session. Returns [ErrLocked] when no session is resident.
	AuthVerifier() (string, error)
}

// RegistrationService creates the account and its master device.
type RegistrationService interface {
	// Register generates the identity and device key pairs, wraps the
	// private halves under the password-derived master key, persists the
	// wrapped blobs locally, submits the public material to the registry
	// and leaves the session Unlocked. The master password itself never
	// leaves the process.
	Register(ctx context.Context, username, email, password string) (models.Account, error)
}

// AuthService authenticates an already-provisioned device to the registry.
type AuthService interface {
	// Login presents the session's auth verifier and this device's
	// fingerprint to the registry and stores the returned bearer token in
	// the adapter. Requires an unlocked session.
	Login(ctx context.Context) error

	// Logout invalidates the registry session, drops the bearer token and
	// locks the local session.
	Logout(ctx context.Context) error
}

// DeviceTrustService manages the master/secondary device trust flow.
type DeviceTrustService interface {
	// RequestApproval runs on a new secondary device: it generates the
	// device key pair, protects it at rest under a key derived from
	// localPassphrase, announces the device to the registry and stores
	// the pending device row. The returned identity carries the
	// registry-assigned device id.
	RequestApproval(ctx context.Context, username, localPassphrase string) (models.DeviceIdentity, error)

	// Pending lists devices awaiting approval. Requires a logged-in
	// master device.
	Pending(ctx context.Context) ([]models.DeviceIdentity, error)

	// Approve runs on the unlocked master device: it wraps the identity
	// private keys under the pending device's public key and uploads the
	// grant. Approving a device that is not pending is an error, not a
	// crash. Returns [ErrLocked] when the session is locked and
	// [ErrNotMasterDevice] when this device does not hold the master role.
	Approve(ctx context.Context, deviceID string) error

	// WaitForApproval polls the registry until the provisioning bundle
	// left by the master appears, the context is cancelled, or the
	// registry fails hard.
	WaitForApproval(ctx context.Context) (models.ProvisionDelivery, error)

	// CompleteApproval runs on the secondary device after approval: it
	// opens the delivered bundle with the device private key, re-wraps
	// the identity keys under the local passphrase key, marks the device
	// approved and leaves the session Unlocked.
	CompleteApproval(ctx context.Context, delivery models.ProvisionDelivery, localPassphrase string) error
}

// EntryService is the vault-entry CRUD surface. Payload plaintext exists
// only inside a call; everything stored or transmitted is sealed.
type EntryService interface {
	// Create seals payload and stores the entry locally and on the
	// registry. The entry id is generated client-side so the ciphertext
	// is bound to it before the entry leaves the device.
	Create(ctx context.Context, title, entryType string, payload models.EntryPayload) (models.VaultEntry, error)

	// Get loads and decrypts a single entry from the local cache.
	Get(ctx context.Context, entryID string) (models.VaultEntry, models.EntryPayload, error)

	// GetByTitle is Get keyed by the clear-stored title.
	GetByTitle(ctx context.Context, title string) (models.VaultEntry, models.EntryPayload, error)

	// List returns the entries without decrypting any payload.
	List(ctx context.Context) ([]models.VaultEntry, error)

	// Update re-seals payload and replaces the entry locally and on the
	// registry.
	Update(ctx context.Context, entryID, title, entryType string, payload models.EntryPayload) error

	// Delete removes the entry locally and on the registry.
	Delete(ctx context.Context, entryID string) error

	// Refresh pulls the account's entries from the registry into the
	// local cache, payloads still sealed. This is how a freshly approved
	// secondary device obtains the vault.
	Refresh(ctx context.Context) error
}

// AutoLockJob locks an idle session in the background.
type AutoLockJob interface {
	// Start launches the watcher goroutine. A session idle for longer
	// than idle is locked and scrubbed. Any previously running job is
	// stopped first; non-positive idle falls back to a default.
	Start(ctx context.Context, idle time.Duration)

	// Stop cancels the watcher and blocks until it has exited.
	Stop()
}
