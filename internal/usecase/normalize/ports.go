// Package normalize repairs the textual output of `svn diff` so a
// review server can consume it: copy/rename provenance is restored on
// the `---` headers, and every header path is rewritten to its absolute
// repository path.
package normalize

import (
	"context"

	"github.com/postreview/svndiff/internal/domain"
)

// MetadataLookup resolves per-path Subversion metadata, the moral
// equivalent of running `svn info <path>`.
//
// A nil Metadata with a nil error means no metadata is available for
// the path (not under version control, or a status-only change). That
// is a soft miss, never an error.
type MetadataLookup interface {
	Lookup(ctx context.Context, path string) (domain.Metadata, error)
}

// LookupFunc adapts a function to the MetadataLookup interface.
type LookupFunc func(ctx context.Context, path string) (domain.Metadata, error)

// Lookup implements MetadataLookup.
func (f LookupFunc) Lookup(ctx context.Context, path string) (domain.Metadata, error) {
	return f(ctx, path)
}
