// Package generate orchestrates a full diff run: invoking svn diff,
// repairing the output through the normalize pipeline, and recording
// the result.
package generate

import (
	"context"

	"github.com/postreview/svndiff/internal/domain"
)

// SVNEngine is the Subversion command surface the orchestrator needs.
type SVNEngine interface {
	RepositoryInfo(ctx context.Context, repositoryURL string) (domain.RepositoryInfo, error)
	Diff(ctx context.Context, args ...string) ([]string, error)
	HistoryScheduledWithCommit(ctx context.Context) (bool, error)
}

// Normalizer runs the header repair passes over raw diff lines.
type Normalizer interface {
	Normalize(ctx context.Context, lines []string, repo domain.RepositoryInfo, explicitURL bool) string
}

// Prompter asks the user a yes/no question. Only wired up when the
// process is attached to a terminal.
type Prompter interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// Reporter renders a run report to a file.
type Reporter interface {
	Write(ctx context.Context, path string, report domain.DiffReport) error
}
