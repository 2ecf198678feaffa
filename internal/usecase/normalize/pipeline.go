package normalize

import (
	"context"
	"strings"

	"github.com/postreview/svndiff/internal/domain"
)

// Pipeline runs the two repair passes in order: first the rename pass,
// then the absolutize pass.
type Pipeline struct {
	renames *RenameRewriter
	paths   *Absolutizer
}

// NewPipeline wires a pipeline over the given metadata lookup. The
// lookup is shared between the passes through a per-run cache.
func NewPipeline(lookup MetadataLookup) *Pipeline {
	cached := NewCachedLookup(lookup)
	return &Pipeline{
		renames: NewRenameRewriter(NewResolver(cached)),
		paths:   NewAbsolutizer(cached),
	}
}

// Normalize repairs the diff lines and reassembles them into a single
// diff text. explicitURL selects explicit-URL mode: the rename pass is
// skipped and paths are computed from the repository offset instead of
// per-file lookups.
func (p *Pipeline) Normalize(ctx context.Context, lines []string, repo domain.RepositoryInfo, explicitURL bool) string {
	lines = p.renames.Rewrite(ctx, lines, explicitURL)
	lines = p.paths.Absolutize(ctx, lines, repo, explicitURL)
	return strings.Join(lines, "")
}
