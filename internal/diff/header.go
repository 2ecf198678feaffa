package diff

import (
	"regexp"
	"strings"
)

// Control lines produced by `svn diff`. The original and new file
// headers carry a path followed by parenthesized revision info.
var (
	origFileLineRE = regexp.MustCompile(`^---\s+.*\s+\(.*\)`)
	newFileLineRE  = regexp.MustCompile(`^\+\+\+\s+.*\s+\(.*\)`)
)

const indexLinePrefix = "Index: "

// IsOrigFileLine reports whether line is a `---` file header.
func IsOrigFileLine(line string) bool {
	return origFileLineRE.MatchString(line)
}

// IsNewFileLine reports whether line is a `+++` file header.
func IsNewFileLine(line string) bool {
	return newFileLineRE.MatchString(line)
}

// IsIndexLine reports whether line is an `Index:` header.
func IsIndexLine(line string) bool {
	return strings.HasPrefix(line, indexLinePrefix)
}

var multiSpaceRE = regexp.MustCompile(`  +`)

// ParseFilenameHeader splits the trailing content of a file header line
// (everything after the `---`/`+++` marker and its following space)
// into the filename and the metadata that follows it.
//
// A tab separates them unambiguously, so it wins even when the content
// also contains space runs. Otherwise the first run of two or more
// spaces is taken as the separator; single spaces are assumed to belong
// to the filename. The returned suffix always starts with a tab so the
// header can be reassembled canonically. When no separator is present
// the whole content up to the newline is the filename and the suffix is
// a bare newline.
func ParseFilenameHeader(s string) (filename, suffix string) {
	if i := strings.IndexByte(s, '\t'); i >= 0 {
		// Tabs inside the metadata itself are left alone.
		return s[:i], s[i:]
	}

	if loc := multiSpaceRE.FindStringIndex(s); loc != nil {
		return s[:loc[0]], "\t" + s[loc[1]:]
	}

	filename, _, _ = strings.Cut(s, "\n")
	return filename, "\n"
}
