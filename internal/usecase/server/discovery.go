package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/postreview/svndiff/internal/domain"
)

// ErrNoServer indicates no review server is configured or advertised.
var ErrNoServer = errors.New("no review server configured; set server.url or the reviewboard:url repository property")

// RepositoryInfoProvider supplies the local repository identity.
type RepositoryInfoProvider interface {
	RepositoryInfo(ctx context.Context, repositoryURL string) (domain.RepositoryInfo, error)
}

// Location is a resolved review server and the repository identity to
// use against it.
type Location struct {
	URL        string
	Repository domain.RepositoryInfo
}

// Discovery resolves the review server for the current working copy
// and matches the local repository against the server's list.
type Discovery struct {
	svn           RepositoryInfoProvider
	locator       *Locator
	newLister     func(serverURL string) RepositoryLister
	startDir      string
	configuredURL string
}

// NewDiscovery wires a Discovery. configuredURL, when non-empty, wins
// over the property scan. newLister may be nil to skip server-side
// matching.
func NewDiscovery(svn RepositoryInfoProvider, locator *Locator, newLister func(string) RepositoryLister, startDir, configuredURL string) *Discovery {
	return &Discovery{
		svn:           svn,
		locator:       locator,
		newLister:     newLister,
		startDir:      startDir,
		configuredURL: configuredURL,
	}
}

// Resolve finds the server URL and the matched repository identity.
func (d *Discovery) Resolve(ctx context.Context) (Location, error) {
	repo, err := d.svn.RepositoryInfo(ctx, "")
	if err != nil {
		return Location{}, err
	}

	url := d.configuredURL
	if url == "" {
		found, ok := d.locator.FindServerURL(ctx, d.startDir, repo)
		if !ok {
			return Location{}, ErrNoServer
		}
		url = found
	}

	matched := repo
	if d.newLister != nil {
		matched, err = Match(ctx, d.newLister(url), repo)
		if err != nil {
			return Location{}, fmt.Errorf("match repository on %s: %w", url, err)
		}
	}

	return Location{URL: url, Repository: matched}, nil
}
