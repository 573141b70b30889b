package models

// KeyKind names a wrapped private key slot in the local key store.
type KeyKind string

const (
	// KeyKindEncryption is the X25519 identity encryption private key.
	KeyKindEncryption KeyKind = "identity_encrypt"

	// KeyKindSigning is the Ed25519 identity signing private key.
	KeyKindSigning KeyKind = "identity_sign"

	// KeyKindDevice is this device's X25519 private key.
	KeyKindDevice KeyKind = "device"

	// KeyKindAuthVerifier is the registry login credential. It is derived
	// from the master key (or delivered in a provisioning bundle) and is
	// stored wrapped like a private key: a stolen database file must not
	// let an attacker log in to the registry.
	KeyKindAuthVerifier KeyKind = "auth_verifier"
)

// Non-secret slots in the same store. These rows hold public or parameter
// material and are never wrapped.
const (
	// KeyKindEncryptionPublic is the X25519 identity public key.
	KeyKindEncryptionPublic KeyKind = "identity_encrypt_pub"

	// KeyKindSigningPublic is the Ed25519 identity public key.
	KeyKindSigningPublic KeyKind = "identity_sign_pub"

	// KeyKindDevicePublic is this device's X25519 public key.
	KeyKindDevicePublic KeyKind = "device_pub"

	// KeyKindPasswordSalt is the account KDF salt.
	KeyKindPasswordSalt KeyKind = "password_salt"

	// KeyKindKDFParams is the JSON-encoded Argon2id cost parameters the
	// stored blobs were wrapped under, so unlock reproduces the exact
	// same derivation later.
	KeyKindKDFParams KeyKind = "kdf_params"

	// KeyKindInstallID is the installation identifier feeding the device
	// fingerprint. Generated once, then immutable.
	KeyKindInstallID KeyKind = "install_id"

	// KeyKindLocalWrapSalt is the KDF salt for the local passphrase a
	// not-yet-approved device protects its key material with.
	KeyKindLocalWrapSalt KeyKind = "local_wrap_salt"

	// KeyKindAccount is the JSON-encoded [Account] cached for offline
	// unlock.
	KeyKindAccount KeyKind = "account"
)

// EncryptedKeyBlob is the only at-rest representation a private key may have:
// an AEAD blob of the form nonce ‖ ciphertext, produced by wrapping the raw
// key bytes under a password-derived key. Useless without that key.
type EncryptedKeyBlob struct {
	// Kind identifies which private key the blob wraps.
	Kind KeyKind `json:"kind"`

	// Blob is nonce ‖ ciphertext. The nonce is generated inside the wrap
	// operation; callers never supply one.
	Blob []byte `json:"blob"`
}

// RegistrationBundle is what the client submits to the remote registry at
// account creation: public halves, the device fingerprint, and nothing that
// could reconstruct a private key.
type RegistrationBundle struct {
	Username            string `json:"username"`
	Email               string `json:"email,omitempty"`
	PublicEncryptionKey string `json:"pk_encrypt"`
	PublicSigningKey    string `json:"pk_sign"`
	PublicDeviceKey     string `json:"pk_device"`
	DeviceName          string `json:"device_name"`
	Fingerprint         string `json:"device_fingerprint"`
}

// ProvisionBundle is the identity key material a master device delivers to a
// newly approved device. It is msgpack-encoded and then wrapped under the
// pending device's public key; the plaintext form below exists only in memory
// on the two endpoints.
type ProvisionBundle struct {
	// EncryptionPrivateKey is the raw X25519 identity private key.
	EncryptionPrivateKey []byte `msgpack:"ek"`

	// SigningPrivateKey is the raw Ed25519 identity private key.
	SigningPrivateKey []byte `msgpack:"sk"`

	// PasswordSalt lets the secondary display/verify account parameters;
	// it is public material and is included for convenience.
	PasswordSalt []byte `msgpack:"salt"`

	// AuthVerifier is the registry login credential, included so the
	// approved device can authenticate to the registry without ever
	// learning the master password. It unlocks nothing client-side.
	AuthVerifier string `msgpack:"av"`
}
