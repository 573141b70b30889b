package models

import "time"

// DeviceStatus describes where a device stands in the trust lifecycle.
type DeviceStatus string

const (
	// DevicePending means the device has submitted its public key and is
	// waiting for approval from the master device. A pending device cannot
	// decrypt vault entries.
	DevicePending DeviceStatus = "pending"

	// DeviceApproved means the device holds (or has been delivered) wrapped
	// identity key material and may unlock the vault.
	DeviceApproved DeviceStatus = "approved"
)

// DeviceIdentity describes a device registered to an account. The private
// half of the device key pair is stored separately as an encrypted blob;
// this struct carries only public, non-secret attributes.
type DeviceIdentity struct {
	// DeviceID is the registry-assigned device identifier.
	DeviceID string `json:"device_id"`

	// UserID is the owning account identifier.
	UserID string `json:"user_id"`

	// Name is a human-readable device label ("work laptop").
	Name string `json:"device_name"`

	// Fingerprint is the deterministic device identifier derived from
	// stable device attributes. It never changes across restarts and
	// contains no per-call randomness.
	Fingerprint string `json:"device_fingerprint"`

	// PublicDeviceKey is the base64-encoded X25519 public key of the device.
	// The master device wraps provisioning material under this key.
	PublicDeviceKey string `json:"pk_device"`

	// IsMaster is true for the single device holding the authoritative,
	// password-unlockable copy of the identity private keys.
	IsMaster bool `json:"is_master"`

	// Status is the trust state of the device.
	Status DeviceStatus `json:"status"`

	// IsSelf marks the row describing this installation in the local
	// device table. Never transmitted.
	IsSelf bool `json:"-"`

	// LastSeen is the last time the device unlocked or synced.
	LastSeen time.Time `json:"last_seen,omitempty"`

	// CreatedAt is when the device was first registered.
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// DeviceAttributes are the stable inputs to fingerprint derivation.
// InstallID is generated once on first run and persisted; the remaining
// fields come from the host environment.
type DeviceAttributes struct {
	Hostname  string
	OS        string
	Arch      string
	InstallID string
}
