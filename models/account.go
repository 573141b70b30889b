package models

import "time"

// Account represents the user account as the client knows it: identity,
// public key material, and the key-derivation salt. Private key material is
// never part of this struct; it lives wrapped in the local key store.
type Account struct {
	// UserID is the server-assigned account identifier.
	UserID string `json:"user_id"`

	// Username is the unique login identifier.
	Username string `json:"username"`

	// Email is the optional contact address registered with the account.
	Email string `json:"email,omitempty"`

	// PublicEncryptionKey is the base64-encoded X25519 public key used to
	// wrap material for this account (e.g. device provisioning bundles).
	PublicEncryptionKey string `json:"pk_encrypt"`

	// PublicSigningKey is the base64-encoded Ed25519 public key.
	PublicSigningKey string `json:"pk_sign"`

	// PasswordSalt is the base64-encoded Argon2id salt generated once at
	// registration. Not secret, but unique per account.
	PasswordSalt string `json:"password_salt,omitempty"`

	// MasterDeviceRegistered reports whether the account already has a
	// master device. Exactly one device per account holds the master role.
	MasterDeviceRegistered bool `json:"is_master_device_registered"`

	// CreatedAt is the server-side account creation timestamp.
	CreatedAt time.Time `json:"created_at,omitempty"`
}
