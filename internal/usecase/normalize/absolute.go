package normalize

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/postreview/svndiff/internal/diff"
	"github.com/postreview/svndiff/internal/domain"
	"github.com/postreview/svndiff/internal/logging"
)

// Absolutizer rewrites relative paths in diff headers to absolute
// repository paths. A working copy may be switched to an arbitrary
// location inside the repository, so a file's on-disk relative path
// does not necessarily equal its repository-relative path; only
// per-path metadata reveals the true URL.
type Absolutizer struct {
	lookup MetadataLookup
	log    zerolog.Logger
}

// NewAbsolutizer constructs an Absolutizer over the given lookup.
func NewAbsolutizer(lookup MetadataLookup) *Absolutizer {
	return &Absolutizer{
		lookup: lookup,
		log:    logging.GetLogger("normalize.absolute"),
	}
}

// Absolutize rewrites the paths of `---`, `+++` and `Index:` lines.
// In explicit-URL mode the repository offset was fixed for the whole
// run, so the path is pure string arithmetic; in working-copy mode each
// file's metadata is looked up. Lines that cannot be resolved pass
// through unmodified.
func (a *Absolutizer) Absolutize(ctx context.Context, lines []string, repo domain.RepositoryInfo, explicitURL bool) []string {
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		if !diff.IsOrigFileLine(line) && !diff.IsNewFileLine(line) && !diff.IsIndexLine(line) {
			result = append(result, line)
			continue
		}

		front, remainder, found := strings.Cut(line, " ")
		if !found {
			result = append(result, line)
			continue
		}

		if strings.HasPrefix(remainder, "/") {
			// Already absolute.
			result = append(result, front+" "+remainder)
			continue
		}

		file, rest := diff.ParseFilenameHeader(remainder)

		var path string
		if explicitURL {
			path = unquote(repo.BasePath + "/" + file)
		} else {
			info, err := a.lookup.Lookup(ctx, file)
			if err != nil || info == nil {
				a.log.Debug().Str("file", file).Err(err).Msg("no metadata, leaving line untouched")
				result = append(result, line)
				continue
			}
			fileURL, ok := info.Get(domain.MetaURL)
			if !ok {
				a.log.Warn().Str("file", file).Msg("metadata without URL, leaving line untouched")
				result = append(result, line)
				continue
			}
			root, ok := info.Get(domain.MetaRepositoryRoot)
			if !ok {
				a.log.Warn().Str("file", file).Msg("metadata without repository root, leaving line untouched")
				result = append(result, line)
				continue
			}
			path = unquote(strings.TrimPrefix(fileURL, root))
		}

		result = append(result, front+" "+path+rest)
	}

	return result
}
