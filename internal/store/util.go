package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateRunID creates a unique, time-ordered run ID.
// Format: run-<timestamp>-<hash>
// Example: run-20260215T143052Z-a3f9c2
func GenerateRunID(timestamp time.Time, uuid, revisionSpec string) string {
	ts := timestamp.UTC().Format("20060102T150405Z")

	// Short hash over the run inputs plus nanoseconds for uniqueness.
	input := fmt.Sprintf("%s|%s|%d", uuid, revisionSpec, timestamp.UnixNano())
	hash := sha256.Sum256([]byte(input))
	shortHash := hex.EncodeToString(hash[:3])

	return fmt.Sprintf("run-%s-%s", ts, shortHash)
}
