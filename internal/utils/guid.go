// Package utils provides general-purpose helper utilities used across the
// sync engine: GUID generation, payload comparison, and millisecond timestamps.
package utils

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// GUIDGenerator produces the 12-character URL-safe record identifiers used
// as primary keys across devices. The format matches what the remote
// protocol expects: base64url over 9 random bytes, no padding.
type GUIDGenerator struct {
}

func NewGUIDGenerator() *GUIDGenerator {
	return &GUIDGenerator{}
}

// Generate returns a fresh 12-character GUID. Entropy comes from a v7 UUID
// so identifiers created on the same device also sort roughly by creation
// time; if v7 generation fails a random v4 is used instead.
func (g *GUIDGenerator) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}

	return base64.RawURLEncoding.EncodeToString(id[:9])
}

// ValidGUID reports whether s is a well-formed 12-character record GUID.
// Reserved root identifiers (which use '_' padding) are also accepted.
func ValidGUID(s string) bool {
	if len(s) != 12 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}
