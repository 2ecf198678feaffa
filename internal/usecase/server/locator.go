// Package server discovers the review server a repository is
// associated with and matches the local repository against the
// server's repository list.
package server

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/postreview/svndiff/internal/domain"
	"github.com/postreview/svndiff/internal/logging"
)

// The property Subversion administrators set on the repository (or any
// directory in it) to advertise the review server.
const serverURLProperty = "reviewboard:url"

// PropertyReader reads a Subversion property from a path or URL.
// An absent property is an empty value, not an error.
type PropertyReader interface {
	PropGet(ctx context.Context, prop, target string) (string, error)
}

// Locator discovers the review server URL recorded in repository
// properties.
type Locator struct {
	props PropertyReader
	log   zerolog.Logger
}

// NewLocator constructs a Locator over the given property reader.
func NewLocator(props PropertyReader) *Locator {
	return &Locator{props: props, log: logging.GetLogger("server.locator")}
}

// FindServerURL walks from startDir up through the working copy
// looking for the server property, then falls back to the property on
// the repository root URL. The second return value is false when no
// server is advertised anywhere.
func (l *Locator) FindServerURL(ctx context.Context, startDir string, repo domain.RepositoryInfo) (string, bool) {
	dir := startDir
	for {
		if _, err := os.Stat(filepath.Join(dir, ".svn")); err != nil {
			// Left the working copy.
			break
		}

		url, err := l.props.PropGet(ctx, serverURLProperty, dir)
		if err != nil {
			l.log.Debug().Str("dir", dir).Err(err).Msg("propget failed")
		} else if url != "" {
			return url, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	url, err := l.props.PropGet(ctx, serverURLProperty, repo.Root)
	if err != nil || url == "" {
		return "", false
	}
	return url, true
}
