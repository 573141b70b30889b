// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 pswdapp

package crypto

import (
	"crypto/ecdh"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
)

// IdentityKeys are the account-lifetime key pairs generated once at
// registration. The private halves are held here as raw bytes so that
// the caller can wrap them for storage and zero them afterwards.
type IdentityKeys struct {
	EncryptionPublic  []byte // X25519, 32 bytes
	EncryptionPrivate []byte // X25519, 32 bytes
	SigningPublic     []byte // Ed25519, 32 bytes
	SigningPrivate    []byte // Ed25519, 64 bytes (seed || public)
}

// DeviceKeys is the per-device X25519 pair. Every installation generates
// its own; the private half never leaves the device.
type DeviceKeys struct {
	Public  []byte // 32 bytes
	Private []byte // 32 bytes
}

// GenerateIdentityKeys implements [KeyChain]. It creates a fresh X25519
// encryption pair and Ed25519 signing pair from the OS CSPRNG.
func (k *keyChain) GenerateIdentityKeys() (IdentityKeys, error) {
	encPriv, err := ecdh.X25519().GenerateKey(rand.Reader)
	if err != nil {
		return IdentityKeys{}, fmt.Errorf("generate encryption key: %w", err)
	}

	signPub, signPriv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return IdentityKeys{}, fmt.Errorf("generate signing key: %w", err)
	}

	return IdentityKeys{
		EncryptionPublic:  encPriv.PublicKey().Bytes(),
		EncryptionPrivate: encPriv.Bytes(),
		SigningPublic:     []byte(signPub),
		SigningPrivate:    []byte(signPriv),
	}, nil
}

// GenerateDeviceKeys implements [KeyChain]. It creates a fresh X25519
// pair for this installation.
func (k *keyChain) GenerateDeviceKeys() (DeviceKeys, error) {
	priv, err := ecdh.X25519().GenerateKey(rand.Reader)
	if err != nil {
		return DeviceKeys{}, fmt.Errorf("generate device key: %w", err)
	}

	return DeviceKeys{
		Public:  priv.PublicKey().Bytes(),
		Private: priv.Bytes(),
	}, nil
}

// Sign signs message with an Ed25519 private key produced by
// [KeyChain.GenerateIdentityKeys].
func Sign(signingPrivate, message []byte) ([]byte, error) {
	if len(signingPrivate) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("signing key must be %d bytes, got %d", ed25519.PrivateKeySize, len(signingPrivate))
	}
	return ed25519.Sign(ed25519.PrivateKey(signingPrivate), message), nil
}

// Verify reports whether sig is a valid signature of message under the
// Ed25519 public key.
func Verify(signingPublic, message, sig []byte) bool {
	if len(signingPublic) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(signingPublic), message, sig)
}
