package domain

import "time"

// FileChange is one file touched by a diff.
type FileChange struct {
	Path  string
	Hunks int
}

// DiffSummary describes a normalized diff at a glance.
type DiffSummary struct {
	Files     []FileChange
	HunkCount int
}

// FileCount returns the number of files the diff touches.
func (s DiffSummary) FileCount() int {
	return len(s.Files)
}

// DiffReport is the material rendered into a run report.
type DiffReport struct {
	Repository   RepositoryInfo
	Summary      DiffSummary
	Mode         string
	RevisionSpec string
	GeneratedAt  time.Time
}
