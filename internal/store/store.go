package store

import (
	"context"
	"time"
)

// Store defines the persistence layer interface for diff run history.
type Store interface {
	SaveRun(ctx context.Context, run Run) error
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	Close() error
}

// Run records a single diff generation.
type Run struct {
	RunID          string
	Timestamp      time.Time
	RepositoryUUID string
	BasePath       string
	RevisionSpec   string
	Mode           string
	FileCount      int
	HunkCount      int
	DiffBytes      int
}
