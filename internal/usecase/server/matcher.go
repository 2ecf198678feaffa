package server

import (
	"context"
	"strings"

	"github.com/postreview/svndiff/internal/domain"
	"github.com/postreview/svndiff/internal/logging"
)

// RemoteRepository is one entry in the review server's repository list.
type RemoteRepository struct {
	ID         int
	Tool       string
	Path       string
	MirrorPath string
}

// RemoteRepositoryInfo is the server's detailed view of one repository.
type RemoteRepositoryInfo struct {
	UUID    string
	URL     string
	RootURL string
}

// RepositoryLister is the review-server capability the matcher needs.
// RepositoryInfo returns (nil, nil) when the server cannot provide
// details for a repository; that entry is skipped, not fatal.
type RepositoryLister interface {
	Repositories(ctx context.Context) ([]RemoteRepository, error)
	RepositoryInfo(ctx context.Context, id int) (*RemoteRepositoryInfo, error)
}

// Match finds the server-side repository equivalent to the local one,
// even when their URLs differ (an http path locally versus a file path
// on the server, say). It tries path and mirror-path equality first,
// then falls back to comparing repository UUIDs and rebasing the base
// path onto the server's URL. When nothing matches, the local identity
// is returned unchanged and the caller can hope for the best.
func Match(ctx context.Context, lister RepositoryLister, local domain.RepositoryInfo) (domain.RepositoryInfo, error) {
	log := logging.GetLogger("server.matcher")

	all, err := lister.Repositories(ctx)
	if err != nil {
		return domain.RepositoryInfo{}, err
	}

	var candidates []RemoteRepository
	for _, repo := range all {
		if repo.Tool == "Subversion" {
			candidates = append(candidates, repo)
		}
	}

	for _, repo := range candidates {
		if local.Root == repo.Path || (repo.MirrorPath != "" && local.Root == repo.MirrorPath) {
			return local, nil
		}
	}

	for _, repo := range candidates {
		info, err := lister.RepositoryInfo(ctx, repo.ID)
		if err != nil {
			return domain.RepositoryInfo{}, err
		}
		if info == nil || info.UUID != local.UUID {
			continue
		}

		serverBasePath := strings.TrimPrefix(info.URL, info.RootURL)
		relPath, ok := domain.RelativePath(local.BasePath, serverBasePath)
		if !ok {
			continue
		}

		log.Debug().Str("server_url", info.URL).Str("base_path", relPath).Msg("matched repository by UUID")
		return domain.RepositoryInfo{Root: info.URL, BasePath: relPath, UUID: local.UUID}, nil
	}

	log.Debug().Str("root", local.Root).Msg("no server repository matched")
	return local, nil
}
