package validators

import "errors"

var (
	ErrEmptyTitle       = errors.New("title is required")
	ErrInvalidEntryType = errors.New("invalid entry type")
	ErrPayloadMismatch  = errors.New("payload does not match entry type")
	ErrEmptyPayload     = errors.New("payload is required")
)
