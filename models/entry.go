package models

import "time"

// Entry types as stored in the registry. The value determines how a decrypted
// payload must be interpreted.
const (
	EntryTypePassword = "password"
	EntryTypeNote     = "note"
	EntryTypeCard     = "card"
)

// VaultEntry is an individual vault item. EncryptedPayload is opaque to every
// layer below the entry service: nonce ‖ ciphertext under the vault entry key.
// The plaintext payload exists only transiently while editing or viewing.
type VaultEntry struct {
	// EntryID identifies the entry. Generated client-side (UUIDv7) so that
	// offline-created entries have stable identifiers before upload.
	EntryID string `json:"entry_id"`

	// UserID is the owning account.
	UserID string `json:"user_id,omitempty"`

	// Title is the display name. Stored in clear so lists render without
	// decrypting every payload.
	Title string `json:"title"`

	// EntryType is one of EntryTypePassword, EntryTypeNote, EntryTypeCard.
	EntryType string `json:"entry_type"`

	// EncryptedPayload is the AEAD blob produced by the entry cipher.
	EncryptedPayload []byte `json:"encrypted_data"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// EntryPayload is the decrypted content of a vault entry. Exactly one of the
// typed fields is set, matching the entry's EntryType.
type EntryPayload struct {
	Login *LoginPayload `json:"login,omitempty"`
	Note  *NotePayload  `json:"note,omitempty"`
	Card  *CardPayload  `json:"card,omitempty"`
}

// LoginPayload holds credentials for EntryTypePassword entries.
type LoginPayload struct {
	// Username is the login identifier used for authentication.
	Username string `json:"username"`

	// Password is the secret credential associated with the username.
	Password string `json:"password"`

	// URL is the resource the credentials apply to.
	URL string `json:"url,omitempty"`

	// Notes carries free-form remarks attached to the credential.
	Notes string `json:"notes,omitempty"`
}

// NotePayload holds free-form secret text for EntryTypeNote entries.
type NotePayload struct {
	Text string `json:"text"`
}

// CardPayload holds payment card data for EntryTypeCard entries.
// All fields are considered sensitive and only ever stored encrypted.
type CardPayload struct {
	// CardholderName is the name printed on the card.
	CardholderName string `json:"cardholderName"`

	// Number is the primary account number of the card.
	Number string `json:"number"`

	// ExpMonth is the card expiration month.
	ExpMonth string `json:"expMonth"`

	// ExpYear is the card expiration year.
	ExpYear string `json:"expYear"`

	// Code is the card security code (CVV/CVC).
	Code string `json:"code"`
}
