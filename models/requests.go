package models

import "time"

// RegisterRequest is the full registration payload: the public-material
// bundle plus the server-auth credential. Password carries the derived
// auth verifier, never the master password itself.
type RegisterRequest struct {
	RegistrationBundle
	Password string `json:"password"`
}

// RegisterResponse is returned by the registry after successful account
// registration.
type RegisterResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Token    string `json:"token"`
	DeviceID string `json:"device_id"`
	IsMaster bool   `json:"is_master"`
}

// LoginRequest is the payload for registry login. The password here is the
// server-auth password verifier, never the vault master password key.
type LoginRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Fingerprint string `json:"device_fingerprint"`
}

// LoginResponse is returned by the registry after successful login.
type LoginResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Token    string `json:"token"`
	DeviceID string `json:"device_id"`
	IsMaster bool   `json:"is_master"`
}

// VaultEntryRequest is the create/update payload for a vault entry.
// EntryID is generated client-side so the ciphertext can be bound to it
// before the entry ever leaves the device. EncryptedData travels
// base64-encoded inside the JSON document.
type VaultEntryRequest struct {
	EntryID       string `json:"entry_id"`
	Title         string `json:"title"`
	EncryptedData []byte `json:"encrypted_data"`
	EntryType     string `json:"entry_type"`
}

// VaultEntryCreated acknowledges a successful entry creation with the
// registry-assigned identifier.
type VaultEntryCreated struct {
	EntryID string `json:"entry_id"`
}

// DeviceApprovalRequest is submitted by a secondary device asking to join
// the account. Carries public material only.
type DeviceApprovalRequest struct {
	Username        string `json:"username"`
	DeviceName      string `json:"device_name"`
	Fingerprint     string `json:"device_fingerprint"`
	PublicDeviceKey string `json:"pk_device"`
}

// DeviceApprovalGrant is what the master device posts when approving a
// pending device: the provisioning bundle wrapped under the pending device's
// public key.
type DeviceApprovalGrant struct {
	DeviceID   string `json:"device_id"`
	WrappedKey []byte `json:"wrapped_key"`
}

// ProvisionFetchRequest is sent by a pending device polling for its
// approval grant.
type ProvisionFetchRequest struct {
	DeviceID    string `json:"device_id"`
	Fingerprint string `json:"device_fingerprint"`
}

// ProvisionDelivery is what a newly approved secondary device fetches from
// the registry: the wrapped bundle left for it by the master.
type ProvisionDelivery struct {
	DeviceID   string    `json:"device_id"`
	WrappedKey []byte    `json:"wrapped_key"`
	ApprovedAt time.Time `json:"approved_at"`
}
