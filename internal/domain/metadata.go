package domain

// Metadata keys reported by `svn info`.
const (
	MetaURL            = "URL"
	MetaRepositoryRoot = "Repository Root"
	MetaRepositoryUUID = "Repository UUID"
	MetaCopiedFromURL  = "Copied From URL"
)

// Metadata is the key/value mapping reported for a single path.
// A nil Metadata means no information is available for the path.
type Metadata map[string]string

// Get returns the value for key and whether it was present.
func (m Metadata) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}
