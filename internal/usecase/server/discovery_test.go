package server_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/postreview/svndiff/internal/domain"
	"github.com/postreview/svndiff/internal/usecase/server"
)

type fakeInfoProvider struct {
	repo domain.RepositoryInfo
}

func (f fakeInfoProvider) RepositoryInfo(_ context.Context, _ string) (domain.RepositoryInfo, error) {
	return f.repo, nil
}

type fixedProps struct {
	url string
}

func (f fixedProps) PropGet(_ context.Context, _, _ string) (string, error) {
	return f.url, nil
}

type fixedLister struct {
	repos []server.RemoteRepository
	info  *server.RemoteRepositoryInfo
}

func (f fixedLister) Repositories(_ context.Context) ([]server.RemoteRepository, error) {
	return f.repos, nil
}

func (f fixedLister) RepositoryInfo(_ context.Context, _ int) (*server.RemoteRepositoryInfo, error) {
	return f.info, nil
}

func TestDiscoveryConfiguredURLWins(t *testing.T) {
	repo := domain.RepositoryInfo{
		Root:     "svn://example.com/repo",
		BasePath: "/trunk",
		UUID:     "uuid-1",
	}
	d := server.NewDiscovery(
		fakeInfoProvider{repo: repo},
		server.NewLocator(fixedProps{url: "https://property.example.com"}),
		nil,
		t.TempDir(),
		"https://configured.example.com",
	)

	loc, err := d.Resolve(context.Background())
	require.NoError(t, err)
	require.Equal(t, "https://configured.example.com", loc.URL)
	require.Equal(t, repo, loc.Repository)
}

func TestDiscoveryFallsBackToProperty(t *testing.T) {
	repo := domain.RepositoryInfo{Root: "svn://example.com/repo", BasePath: "/"}
	d := server.NewDiscovery(
		fakeInfoProvider{repo: repo},
		server.NewLocator(fixedProps{url: "https://property.example.com"}),
		nil,
		t.TempDir(),
		"",
	)

	loc, err := d.Resolve(context.Background())
	require.NoError(t, err)
	require.Equal(t, "https://property.example.com", loc.URL)
}

func TestDiscoveryNoServer(t *testing.T) {
	d := server.NewDiscovery(
		fakeInfoProvider{repo: domain.RepositoryInfo{Root: "svn://example.com/repo"}},
		server.NewLocator(fixedProps{url: ""}),
		nil,
		t.TempDir(),
		"",
	)

	_, err := d.Resolve(context.Background())
	require.ErrorIs(t, err, server.ErrNoServer)
}

func TestDiscoveryMatchesAgainstServer(t *testing.T) {
	local := domain.RepositoryInfo{
		Root:     "svn://example.com/repo",
		BasePath: "/trunk/proj",
		UUID:     "uuid-9",
	}
	lister := fixedLister{
		repos: []server.RemoteRepository{
			{ID: 3, Tool: "Subversion", Path: "svn://mirror.example.com/repo"},
		},
		info: &server.RemoteRepositoryInfo{
			UUID:    "uuid-9",
			URL:     "svn://mirror.example.com/repo/trunk",
			RootURL: "svn://mirror.example.com/repo",
		},
	}
	d := server.NewDiscovery(
		fakeInfoProvider{repo: local},
		server.NewLocator(fixedProps{url: ""}),
		func(string) server.RepositoryLister { return lister },
		t.TempDir(),
		"https://rb.example.com",
	)

	loc, err := d.Resolve(context.Background())
	require.NoError(t, err)
	require.Equal(t, "svn://mirror.example.com/repo/trunk", loc.Repository.Root)
	require.Equal(t, "/proj", loc.Repository.BasePath)
}
