package validators

import (
	"fmt"
	"strings"

	"github.com/pswdapp/vaultcore/models"
)

var allowedEntryTypes = []string{
	models.EntryTypePassword,
	models.EntryTypeNote,
	models.EntryTypeCard,
}

type entryValidator struct {
}

// NewEntryValidator returns the standard [EntryValidator].
func NewEntryValidator() EntryValidator {
	return &entryValidator{}
}

// Validate implements [EntryValidator].
func (v *entryValidator) Validate(title, entryType string, payload models.EntryPayload) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}

	known := false
	for _, t := range allowedEntryTypes {
		if entryType == t {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: %q", ErrInvalidEntryType, entryType)
	}

	sections := 0
	if payload.Login != nil {
		sections++
	}
	if payload.Note != nil {
		sections++
	}
	if payload.Card != nil {
		sections++
	}
	if sections == 0 {
		return ErrEmptyPayload
	}
	if sections > 1 {
		return fmt.Errorf("%w: multiple payload sections set", ErrPayloadMismatch)
	}

	switch entryType {
	case models.EntryTypePassword:
		if payload.Login == nil {
			return fmt.Errorf("%w: %s entry needs a login payload", ErrPayloadMismatch, entryType)
		}
		if payload.Login.Password == "" {
			return fmt.Errorf("%w: login payload has no password", ErrEmptyPayload)
		}
	case models.EntryTypeNote:
		if payload.Note == nil {
			return fmt.Errorf("%w: %s entry needs a note payload", ErrPayloadMismatch, entryType)
		}
		if payload.Note.Text == "" {
			return fmt.Errorf("%w: note payload has no text", ErrEmptyPayload)
		}
	case models.EntryTypeCard:
		if payload.Card == nil {
			return fmt.Errorf("%w: %s entry needs a card payload", ErrPayloadMismatch, entryType)
		}
		if payload.Card.Number == "" {
			return fmt.Errorf("%w: card payload has no number", ErrEmptyPayload)
		}
	}

	return nil
}
