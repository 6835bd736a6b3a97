package utils

import (
	"crypto/rand"

	"github.com/google/uuid"
)

// UUIDGenerator produces time-ordered identifiers used as request trace ids.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// NewSessionID returns an unguessable session identifier with 128 bits of
// entropy from the system CSPRNG.
func NewSessionID() string {
	return rand.Text()
}
