// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 pswdapp

package crypto

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
)

// ErrDecrypt is returned whenever an authenticated decryption fails: wrong
// key, wrong associated data or a modified blob. Callers must not try to
// tell these cases apart; the AEAD cannot, and neither should the UI.
var ErrDecrypt = errors.New("crypto: decryption failed")

const (
	saltLen      = 16 // 128-bit KDF salt
	masterKeyLen = 32 // 256-bit master key

	// Floors below which Argon2id stops being a password hash. Caller
	// supplied parameters are clamped up to these, never down.
	minTime      = 1
	minMemoryKiB = 8 * 1024
	minThreads   = 1
)

// Params are the Argon2id tuning parameters. Zero values are legal on
// input; [NewKeyChainWithParams] clamps them to safe floors.
type Params struct {
	Time      uint32 `json:"t"`
	MemoryKiB uint32 `json:"m"`
	Threads   uint8  `json:"p"`
}

// DefaultParams returns the Argon2id parameters recommended by OWASP
// (2024): 1 iteration, 64 MiB, 4 threads.
func DefaultParams() Params {
	return Params{
		Time:      1,
		MemoryKiB: 64 * 1024, // 64 MiB
		Threads:   4,
	}
}

// keyChain is the private implementation of [KeyChain].
type keyChain struct {
	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target (e.g. mobile vs. desktop).
	params Params
}

// NewKeyChain constructs a [KeyChain] with [DefaultParams].
func NewKeyChain() KeyChain {
	return &keyChain{params: DefaultParams()}
}

// NewKeyChainWithParams constructs a [KeyChain] with the given Argon2id
// parameters, raised to the minimum safe floors where necessary. Weak
// values are corrected silently rather than rejected so that a tampered
// or corrupted stored config can never downgrade the KDF.
func NewKeyChainWithParams(p Params) KeyChain {
	if p.Time < minTime {
		p.Time = minTime
	}
	if p.MemoryKiB < minMemoryKiB {
		p.MemoryKiB = minMemoryKiB
	}
	if p.Threads < minThreads {
		p.Threads = minThreads
	}
	return &keyChain{params: p}
}

// GenerateSalt implements [KeyChain]. It reads 16 random bytes from the
// OS CSPRNG. Returns an error if the random read fails.
func (k *keyChain) GenerateSalt() ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// DeriveMasterKey implements [KeyChain]. It derives a 256-bit master key
// from password and salt using Argon2id with the parameters stored in the
// receiver. Identical inputs always produce the identical key; that is
// what lets a returning user unwrap their stored key blobs. Every password
// is a valid input, the empty one included: a wrong password surfaces later
// as an unwrap failure, never here.
func (k *keyChain) DeriveMasterKey(ctx context.Context, password, salt []byte) ([]byte, error) {
	if len(salt) != saltLen {
		return nil, fmt.Errorf("derive master key: salt must be %d bytes, got %d", saltLen, len(salt))
	}

	done := make(chan []byte, 1)
	go func() {
		done <- argon2.IDKey(password, salt, k.params.Time, k.params.MemoryKiB, k.params.Threads, masterKeyLen)
	}()

	select {
	case key := <-done:
		return key, nil
	case <-ctx.Done():
		// Argon2 cannot be interrupted; scrub the abandoned result
		// once the goroutine finishes.
		go func() { Zero(<-done) }()
		return nil, ctx.Err()
	}
}

// authVerifierInfo domain-separates the server-auth credential from every
// other value derived from the master key.
const authVerifierInfo = "vaultcore/v1 server auth"

// AuthVerifier implements [KeyChain]. It derives the credential sent to the
// registry in place of the master password: HKDF-SHA256 over the master key
// with a dedicated info string, base64-encoded. The registry hashes it again
// server-side; even a full registry compromise yields nothing that can
// unwrap a key blob.
func (k *keyChain) AuthVerifier(masterKey []byte) (string, error) {
	if len(masterKey) != masterKeyLen {
		return "", fmt.Errorf("auth verifier: master key must be %d bytes, got %d", masterKeyLen, len(masterKey))
	}

	r := hkdf.New(sha256.New, masterKey, nil, []byte(authVerifierInfo))
	verifier := make([]byte, masterKeyLen)
	if _, err := io.ReadFull(r, verifier); err != nil {
		return "", fmt.Errorf("auth verifier: %w", err)
	}
	return base64.StdEncoding.EncodeToString(verifier), nil
}

// Wrap implements [KeyChain]. It encrypts plainKey with masterKey using
// AES-256-GCM. A random 12-byte nonce is prepended to the ciphertext so
// that the decryption side can locate it: blob = nonce || ciphertext.
// Returns an error if masterKey is not 32 bytes or the nonce read fails.
func (k *keyChain) Wrap(plainKey, masterKey []byte) ([]byte, error) {
	gcm, err := newGCM(masterKey)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	// Prepend the nonce so Unwrap can split it out again.
	ciphertext := gcm.Seal(nil, nonce, plainKey, nil)
	return append(nonce, ciphertext...), nil
}

// Unwrap implements [KeyChain]. It decrypts a blob produced by
// [keyChain.Wrap] using masterKey. The blob must be at least as long as
// the GCM nonce plus the authentication tag. Returns [ErrDecrypt] if the
// blob is too short, the key is wrong, or the ciphertext was modified.
func (k *keyChain) Unwrap(blob, masterKey []byte) ([]byte, error) {
	gcm, err := newGCM(masterKey)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(blob) < nonceSize+gcm.Overhead() {
		// Report a short blob the same way as a bad tag. Length is
		// not a secret, but the caller handles one failure, not two.
		return nil, fmt.Errorf("unwrap key: %w", ErrDecrypt)
	}

	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]

	// An error here almost always means the user entered the wrong
	// master password, producing a wrong master key.
	plainKey, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("unwrap key: %w", ErrDecrypt)
	}

	return plainKey, nil
}

// newGCM builds an AES-256-GCM AEAD from a 32-byte key.
func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != masterKeyLen {
		return nil, fmt.Errorf("key must be %d bytes, got %d", masterKeyLen, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
