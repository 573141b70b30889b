package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// entryKeyInfo domain-separates the vault-entry key from any other value
// derived from the same private key.
const entryKeyInfo = "vaultcore/v1 entry key"

const rawKeyLen = 32

// EntryKey implements [KeyChain]. It derives the symmetric vault-entry
// key from the unwrapped X25519 encryption private key via HKDF-SHA256.
// The derivation is deterministic, so every unlocked session on every
// approved device arrives at the same entry key.
//
// The input must be exactly 32 bytes of raw key material. A wrapped key
// blob is longer than that, so passing one by mistake is an error here
// rather than a vault sealed under garbage.
func (k *keyChain) EntryKey(encryptionPrivate []byte) ([]byte, error) {
	if len(encryptionPrivate) != rawKeyLen {
		return nil, fmt.Errorf("entry key: want %d bytes of raw key material, got %d", rawKeyLen, len(encryptionPrivate))
	}

	r := hkdf.New(sha256.New, encryptionPrivate, nil, []byte(entryKeyInfo))
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("entry key: %w", err)
	}
	return key, nil
}

// SealEntry implements [KeyChain]. It encrypts plaintext with
// XChaCha20-Poly1305 under entryKey. The 24-byte nonce is random and
// prepended to the ciphertext: blob = nonce || ciphertext. aad is
// authenticated but not encrypted; passing the entry ID binds the blob
// to its row.
func (k *keyChain) SealEntry(entryKey, plaintext, aad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(entryKey)
	if err != nil {
		return nil, fmt.Errorf("seal entry: %w", err)
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("seal entry: %w", err)
	}

	return aead.Seal(nonce, nonce, plaintext, aad), nil
}

// OpenEntry implements [KeyChain]. It decrypts a blob produced by
// [keyChain.SealEntry]. The same entryKey and aad must be supplied.
// Returns [ErrDecrypt] if the blob is too short, the key or aad is
// wrong, or the ciphertext was modified.
func (k *keyChain) OpenEntry(entryKey, blob, aad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(entryKey)
	if err != nil {
		return nil, fmt.Errorf("open entry: %w", err)
	}

	if len(blob) < aead.NonceSize()+aead.Overhead() {
		return nil, fmt.Errorf("open entry: %w", ErrDecrypt)
	}

	nonce, ciphertext := blob[:aead.NonceSize()], blob[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("open entry: %w", ErrDecrypt)
	}
	return plaintext, nil
}
