// Package utils holds small helpers shared across the client packages.
package utils

import "github.com/google/uuid"

// UUIDGenerator produces the client-side identifiers used for vault entries
// and installation ids. UUIDv7 keeps identifiers time-ordered, which makes
// the entry table index-friendly; generation falls back to v4 when the
// monotonic source fails.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new UUID string.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
