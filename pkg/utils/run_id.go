package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateRunID creates a human-readable identifier for one process run.
// Format: {component}-{8charHexUUID}
//
// Example:
//   - Input: component="daemon"
//   - Output: "daemon-a3f8e2b1"
//
// Tick log rows are keyed by run id so the output of concurrent or
// successive runs against the same database can be told apart.
func GenerateRunID(component string) string {
	component = strings.TrimSpace(component)
	if component == "" {
		component = "run"
	}
	return component + "-" + generateShortUUID()
}

// generateShortUUID creates an 8-character hex string from a UUID.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
