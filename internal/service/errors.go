package service

import "errors"

// Business errors of the key-management core. Callers branch with
// [errors.Is]; none of these ever carries partial plaintext.
var (
	// ErrInvalidCredentials covers both "wrong password" and "no such
	// account" at the unlock boundary. The two conditions are deliberately
	// indistinguishable, in message and in timing, so the unlock path
	// cannot be used as an account oracle.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrLocked is returned when an operation needs decrypted key
	// material but the session is locked.
	ErrLocked = errors.New("session is locked")

	// ErrDeviceNotApproved is returned when a pending device attempts a
	// vault operation. Recoverable by completing the approval flow.
	ErrDeviceNotApproved = errors.New("device is not approved")

	// ErrDeviceNotPending is returned when an approval targets a device
	// the registry does not list as pending.
	ErrDeviceNotPending = errors.New("device is not pending approval")

	// ErrNotMasterDevice is returned when a device without the master
	// role attempts a master-only operation such as approving a device.
	ErrNotMasterDevice = errors.New("this device is not the master device")

	// ErrKeyMaterialAbsent is returned when the local store holds no
	// identity key blobs for this device. Recoverable only through the
	// device-approval flow (or by registering a new account).
	ErrKeyMaterialAbsent = errors.New("no key material on this device")

	// ErrStorageUnavailable is returned when the registry cannot be
	// reached or fails server-side. Retryable.
	ErrStorageUnavailable = errors.New("remote storage unavailable")

	// ErrUsernameTaken is returned when registration collides with an
	// existing account name.
	ErrUsernameTaken = errors.New("username already taken")
)
