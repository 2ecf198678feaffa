package normalize

import (
	"context"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/postreview/svndiff/internal/domain"
	"github.com/postreview/svndiff/internal/logging"
)

// Resolver determines whether a path was produced by svn cp/mv and, if
// so, computes the path it was copied from.
//
// Subversion records copy provenance only on the exact path that was
// copied. When a whole directory was copied, descendants carry no
// origin of their own, so the resolver ascends through the ancestors
// until it finds one, re-appending the descended components onto
// whatever origin turns up.
type Resolver struct {
	lookup MetadataLookup
	log    zerolog.Logger
}

// NewResolver constructs a Resolver over the given metadata lookup.
func NewResolver(lookup MetadataLookup) *Resolver {
	return &Resolver{
		lookup: lookup,
		log:    logging.GetLogger("normalize.resolver"),
	}
}

// Resolve returns the repository path the given path was copied from.
// The second return value is false when no copy history is reachable
// by ancestor search.
func (r *Resolver) Resolve(ctx context.Context, path string) (string, bool) {
	path1 := path
	path2 := ""

	for path1 != "" {
		info, err := r.lookup.Lookup(ctx, path1)
		if err != nil {
			// A failed lookup means no copy info at this level;
			// keep ascending.
			r.log.Debug().Str("path", path1).Err(err).Msg("metadata lookup failed")
			info = nil
		}

		if copiedFrom := info[domain.MetaCopiedFromURL]; copiedFrom != "" {
			fromPath := unquote(strings.TrimPrefix(copiedFrom, info[domain.MetaRepositoryRoot]))
			origin := joinNonEmpty(fromPath, path2)
			r.log.Debug().Str("path", path).Str("origin", origin).Msg("resolved copy origin")
			return origin, true
		}

		// Strip the last component and carry it over to the
		// accumulated suffix. Stop at the filesystem root.
		dir, last := splitLast(path1)
		if dir == "" || dir == "/" {
			break
		}
		path2 = joinNonEmpty(last, path2)
		path1 = dir
	}

	return "", false
}

func splitLast(p string) (dir, last string) {
	i := strings.LastIndexByte(p, '/')
	if i < 0 {
		return "", p
	}
	if i == 0 {
		return "/", p[1:]
	}
	return p[:i], p[i+1:]
}

func joinNonEmpty(p1, p2 string) string {
	switch {
	case p2 == "":
		return p1
	case p1 == "":
		return p2
	case strings.HasSuffix(p1, "/"):
		return p1 + p2
	default:
		return p1 + "/" + p2
	}
}

// unquote percent-decodes a URL path component, leaving the input
// untouched when it is not valid percent-encoding.
func unquote(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
