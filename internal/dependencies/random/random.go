package random

import "github.com/google/uuid"

// Random provides identifier generation that can be mocked for testing
type Random interface {
	// UUID returns a new random identifier in canonical string form
	UUID() string
}

// UUIDRandom implements Random using google/uuid (version 4)
type UUIDRandom struct{}

// New creates a new UUIDRandom
func New() *UUIDRandom {
	return &UUIDRandom{}
}

// UUID returns a random version 4 UUID
func (r *UUIDRandom) UUID() string {
	return uuid.NewString()
}
