// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 pswdapp

package crypto

import (
	"crypto/ecdh"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Provisioning blob layout:
//
//	version(1) || ephemeralPublic(32) || nonce(12) || ciphertext
//
// The version byte lets a future scheme change without breaking blobs
// already in flight between devices.
const (
	deviceWrapVersion = 1
	deviceWrapInfo    = "vaultcore/v1 device provisioning"

	x25519KeyLen = 32
	gcmNonceLen  = 12
)

// WrapForDevice implements [KeyChain]. It encrypts payload so that only
// the holder of the private key matching devicePublic can open it. An
// ephemeral X25519 pair is generated per call; the shared secret from
// ECDH(ephemeral, devicePublic) feeds HKDF-SHA256, and the resulting key
// seals the payload with AES-256-GCM. The ephemeral public key travels
// inside the blob; its private half is scrubbed before returning.
func (k *keyChain) WrapForDevice(devicePublic, payload []byte) ([]byte, error) {
	curve := ecdh.X25519()

	remote, err := curve.NewPublicKey(devicePublic)
	if err != nil {
		return nil, fmt.Errorf("wrap for device: bad device public key: %w", err)
	}

	eph, err := curve.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("wrap for device: %w", err)
	}

	shared, err := eph.ECDH(remote)
	if err != nil {
		return nil, fmt.Errorf("wrap for device: %w", err)
	}
	defer Zero(shared)

	key, err := deviceWrapKey(shared)
	if err != nil {
		return nil, err
	}
	defer Zero(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcmNonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("wrap for device: %w", err)
	}

	out := make([]byte, 0, 1+x25519KeyLen+gcmNonceLen+len(payload)+gcm.Overhead())
	out = append(out, deviceWrapVersion)
	out = append(out, eph.PublicKey().Bytes()...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, payload, nil), nil
}

// OpenFromDevice implements [KeyChain]. It opens a blob produced by
// [keyChain.WrapForDevice] with this device's private key. Returns
// [ErrDecrypt] on a truncated blob or failed authentication, and a
// distinct error on an unknown version byte.
func (k *keyChain) OpenFromDevice(devicePrivate, blob []byte) ([]byte, error) {
	curve := ecdh.X25519()

	priv, err := curve.NewPrivateKey(devicePrivate)
	if err != nil {
		return nil, fmt.Errorf("open from device: bad device private key: %w", err)
	}

	if len(blob) < 1+x25519KeyLen+gcmNonceLen {
		return nil, fmt.Errorf("open from device: %w", ErrDecrypt)
	}
	if blob[0] != deviceWrapVersion {
		return nil, fmt.Errorf("open from device: unsupported version %d", blob[0])
	}

	ephPub, err := curve.NewPublicKey(blob[1 : 1+x25519KeyLen])
	if err != nil {
		return nil, fmt.Errorf("open from device: bad ephemeral key: %w", err)
	}
	nonce := blob[1+x25519KeyLen : 1+x25519KeyLen+gcmNonceLen]
	ciphertext := blob[1+x25519KeyLen+gcmNonceLen:]

	shared, err := priv.ECDH(ephPub)
	if err != nil {
		return nil, fmt.Errorf("open from device: %w", err)
	}
	defer Zero(shared)

	key, err := deviceWrapKey(shared)
	if err != nil {
		return nil, err
	}
	defer Zero(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	payload, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("open from device: %w", ErrDecrypt)
	}
	return payload, nil
}

// deviceWrapKey expands the raw ECDH shared secret into an AES-256 key.
func deviceWrapKey(shared []byte) ([]byte, error) {
	r := hkdf.New(sha256.New, shared, nil, []byte(deviceWrapInfo))
	key := make([]byte, masterKeyLen)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive wrap key: %w", err)
	}
	return key, nil
}
