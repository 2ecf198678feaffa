package generate

import (
	"strings"

	sgdiff "github.com/sourcegraph/go-diff/diff"

	"github.com/postreview/svndiff/internal/diff"
	"github.com/postreview/svndiff/internal/domain"
	"github.com/postreview/svndiff/internal/logging"
)

// Summarize parses the normalized diff and counts the files and hunks
// it touches. A diff that does not parse yields an empty summary; the
// diff text itself is still usable.
func Summarize(text string) domain.DiffSummary {
	if text == "" {
		return domain.DiffSummary{}
	}

	fileDiffs, err := sgdiff.ParseMultiFileDiff([]byte(stripHeaderSuffixes(text)))
	if err != nil {
		log := logging.GetLogger("generate")
		log.Warn().Err(err).Msg("could not summarize diff")
		return domain.DiffSummary{}
	}

	summary := domain.DiffSummary{}
	for _, fd := range fileDiffs {
		summary.Files = append(summary.Files, domain.FileChange{
			Path:  fd.NewName,
			Hunks: len(fd.Hunks),
		})
		summary.HunkCount += len(fd.Hunks)
	}
	return summary
}

// stripHeaderSuffixes removes the revision metadata from `---`/`+++`
// lines. svn writes "(revision N)" or "(working copy)" where unified
// diff parsers expect a timestamp, so the suffix has to go before the
// text reaches the parser.
func stripHeaderSuffixes(text string) string {
	lines := strings.SplitAfter(text, "\n")
	for i, line := range lines {
		if diff.IsOrigFileLine(line) || diff.IsNewFileLine(line) {
			name, _ := diff.ParseFilenameHeader(line[4:])
			lines[i] = line[:4] + name + "\n"
		}
	}
	return strings.Join(lines, "")
}
