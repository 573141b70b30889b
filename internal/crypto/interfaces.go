package crypto

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_mock.go -package=mock

// KeyChain owns every cryptographic primitive the client needs for the
// zero-knowledge scheme. It knows nothing about the network, the database
// or sessions; it only derives, wraps and uses keys.
//
// Account creation:
//
//	salt       = GenerateSalt()                       (step 1)
//	masterKey  = DeriveMasterKey(password, salt)      (step 2)
//	identity   = GenerateIdentityKeys()               (step 3)
//	device     = GenerateDeviceKeys()                 (step 3)
//	blobs      = Wrap(privateKey, masterKey) each     (step 4)
//
// Unlock reverses step 4 with Unwrap; vault entries are sealed with a key
// produced by EntryKey from the unwrapped encryption private key.
type KeyChain interface {
	// GenerateSalt returns a random 16-byte (128-bit) salt. The salt is
	// not a secret and is stored both locally and on the server; it only
	// guarantees that identical passwords produce unrelated master keys.
	GenerateSalt() ([]byte, error)

	// DeriveMasterKey stretches the master password into a 32-byte key
	// with Argon2id. The key exists only in client memory and is never
	// transmitted anywhere. The context cancels the wait, not the work:
	// Argon2 has no abort points, so on cancellation the result of the
	// still-running derivation is scrubbed when it completes.
	DeriveMasterKey(ctx context.Context, password, salt []byte) ([]byte, error)

	// Wrap encrypts a private key with the master key using AES-256-GCM.
	// The returned blob (nonce || ciphertext) is safe to store at rest;
	// without the master key it is indistinguishable from random noise.
	Wrap(plainKey, masterKey []byte) ([]byte, error)

	// Unwrap reverses Wrap. It returns [ErrDecrypt] if the blob was
	// produced under a different master key or was modified, which is
	// how a wrong master password surfaces.
	Unwrap(blob, masterKey []byte) ([]byte, error)

	// AuthVerifier derives the base64 credential presented to the
	// registry for login, HKDF-separated from the master key so the
	// registry never learns anything that can unwrap a blob.
	AuthVerifier(masterKey []byte) (string, error)

	// GenerateIdentityKeys creates the account-lifetime key pairs: an
	// X25519 pair for encryption and an Ed25519 pair for signing.
	GenerateIdentityKeys() (IdentityKeys, error)

	// GenerateDeviceKeys creates the per-device X25519 pair used to
	// receive provisioning payloads from an approving device.
	GenerateDeviceKeys() (DeviceKeys, error)

	// EntryKey derives the vault-entry encryption key from the unwrapped
	// encryption private key via HKDF-SHA256. The input must be exactly
	// 32 bytes of raw key material; a wrapped blob is rejected.
	EntryKey(encryptionPrivate []byte) ([]byte, error)

	// SealEntry encrypts a vault-entry payload with XChaCha20-Poly1305.
	// aad binds the ciphertext to its entry so blobs cannot be swapped
	// between records. Output format: nonce || ciphertext.
	SealEntry(entryKey, plaintext, aad []byte) ([]byte, error)

	// OpenEntry reverses SealEntry. Returns [ErrDecrypt] on a wrong key,
	// wrong aad or modified blob.
	OpenEntry(entryKey, blob, aad []byte) ([]byte, error)

	// WrapForDevice encrypts a provisioning payload so that only the
	// holder of the device private key matching devicePublic can read
	// it: ephemeral-static X25519, HKDF-SHA256, AES-256-GCM.
	// Output format: version(1) || ephemeralPublic(32) || nonce(12) || ciphertext.
	WrapForDevice(devicePublic, payload []byte) ([]byte, error)

	// OpenFromDevice reverses WrapForDevice using the device private
	// key. Returns [ErrDecrypt] on any authentication failure and an
	// error on an unknown version byte.
	OpenFromDevice(devicePrivate, blob []byte) ([]byte, error)
}
