package state

import (
	"github.com/google/uuid"
)

// NewID returns a fresh identifier for strokes and saved drawings.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like an identifier produced by NewID.
// Stores use it before turning ids into file names.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
