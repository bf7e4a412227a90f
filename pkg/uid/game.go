package uid

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateGameID returns a random game ID: a version 4 UUID without dashes.
func GenerateGameID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ShortID is the first eight characters of id, for log lines.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
