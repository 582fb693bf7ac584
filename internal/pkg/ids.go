package pkg

import "github.com/google/uuid"

// GenerateGameID returns a random game identifier.
func GenerateGameID() string {
	return uuid.NewString()
}

// IsGameID reports whether id looks like an identifier from GenerateGameID.
func IsGameID(id string) bool {
	return uuid.Validate(id) == nil
}
