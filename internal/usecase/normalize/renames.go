package normalize

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/postreview/svndiff/internal/diff"
	"github.com/postreview/svndiff/internal/logging"
)

// RenameRewriter repairs the `---` headers of files that entered the
// tree through svn cp/mv. The diff hunks for such files are relative to
// the copy source, but `svn diff` writes the destination path into both
// headers; the rewriter substitutes the resolved copy origin.
type RenameRewriter struct {
	resolver *Resolver
	log      zerolog.Logger
}

// NewRenameRewriter constructs a rewriter using the given resolver.
func NewRenameRewriter(resolver *Resolver) *RenameRewriter {
	return &RenameRewriter{
		resolver: resolver,
		log:      logging.GetLogger("normalize.renames"),
	}
}

// Rewrite returns the diff lines with repaired `---` headers. When skip
// is true the input is returned unchanged: a diff between two
// repository URLs at fixed revisions already reports moves correctly,
// and rewriting would corrupt it.
func (rw *RenameRewriter) Rewrite(ctx context.Context, lines []string, skip bool) []string {
	if skip {
		return lines
	}

	result := make([]string, 0, len(lines))
	fromLine := ""

	for _, line := range lines {
		if diff.IsOrigFileLine(line) {
			// Held back until the matching `+++` line decides
			// whether it needs rewriting.
			fromLine = line
			continue
		}

		if diff.IsNewFileLine(line) {
			toFile, _ := diff.ParseFilenameHeader(line[4:])
			if origin, ok := rw.resolver.Resolve(ctx, toFile); ok {
				result = append(result, strings.ReplaceAll(fromLine, toFile, origin))
			} else {
				result = append(result, fromLine)
			}
		}

		result = append(result, line)
	}

	return result
}
