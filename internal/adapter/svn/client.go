// Package svn drives the svn command-line tool: per-path metadata,
// diff generation, status checks and repository discovery.
package svn

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/postreview/svndiff/internal/domain"
	"github.com/postreview/svndiff/internal/logging"
)

// Client wraps the svn binary for one working directory.
type Client struct {
	runner Runner
	dir    string
	log    zerolog.Logger
}

// NewClient constructs a client operating in the given directory.
func NewClient(dir string) *Client {
	return &Client{
		runner: NewRunner(),
		dir:    dir,
		log:    logging.GetLogger("svn"),
	}
}

// WithRunner replaces the command runner. Used by tests.
func (c *Client) WithRunner(r Runner) *Client {
	c.runner = r
	return c
}

// Info returns the `svn info` metadata for a path or URL. Any failure
// to produce metadata is a soft miss (nil, nil): the path may be
// unversioned or carry only a property change.
func (c *Client) Info(ctx context.Context, target string) (domain.Metadata, error) {
	out, err := c.runner.Run(ctx, c.dir, "svn", "info", target)
	if err != nil {
		c.log.Debug().Str("target", target).Err(err).Msg("svn info failed")
		return nil, nil
	}
	return parseInfo(out), nil
}

// Lookup implements the metadata lookup capability consumed by the
// normalize pipeline.
func (c *Client) Lookup(ctx context.Context, path string) (domain.Metadata, error) {
	return c.Info(ctx, path)
}

// RepositoryInfo discovers the repository identity, either from the
// working copy or from an explicitly supplied repository URL.
func (c *Client) RepositoryInfo(ctx context.Context, repositoryURL string) (domain.RepositoryInfo, error) {
	args := []string{"info"}
	if repositoryURL != "" {
		args = append(args, repositoryURL)
	}
	// --non-interactive keeps https repositories from hanging on a
	// credential prompt.
	args = append(args, "--non-interactive")

	out, err := c.runner.Run(ctx, c.dir, "svn", args...)
	if err != nil {
		if repositoryURL == "" && looksLikeGitCheckout(c.dir) {
			return domain.RepositoryInfo{}, fmt.Errorf("not a Subversion working copy (found a git checkout instead): %w", err)
		}
		return domain.RepositoryInfo{}, fmt.Errorf("svn info: %w", err)
	}

	info := parseInfo(out)
	root, ok := info.Get(domain.MetaRepositoryRoot)
	if !ok {
		return domain.RepositoryInfo{}, fmt.Errorf("svn info reported no repository root")
	}
	url, ok := info.Get(domain.MetaURL)
	if !ok {
		return domain.RepositoryInfo{}, fmt.Errorf("svn info reported no URL")
	}
	uuid, ok := info.Get(domain.MetaRepositoryUUID)
	if !ok {
		return domain.RepositoryInfo{}, fmt.Errorf("svn info reported no repository UUID")
	}

	basePath := strings.TrimPrefix(url, root)
	if basePath == "" {
		basePath = "/"
	}

	return domain.RepositoryInfo{Root: root, BasePath: basePath, UUID: uuid}, nil
}

// Diff runs `svn diff` with the given arguments and returns the output
// split into newline-terminated lines.
func (c *Client) Diff(ctx context.Context, args ...string) ([]string, error) {
	out, err := c.runner.Run(ctx, c.dir, "svn", append([]string{"diff"}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("svn diff: %w", err)
	}
	return splitLines(out), nil
}

// HistoryScheduledWithCommit reports whether any file in the working
// copy is scheduled for addition with history (the `A  +` status
// column), which makes plain `svn diff` output misleading.
func (c *Client) HistoryScheduledWithCommit(ctx context.Context) (bool, error) {
	out, err := c.runner.Run(ctx, c.dir, "svn", "st")
	if err != nil {
		return false, fmt.Errorf("svn st: %w", err)
	}
	for _, line := range splitLines(out) {
		if strings.HasPrefix(line, "A  +") {
			return true, nil
		}
	}
	return false, nil
}

// PropGet reads a Subversion property from a path or URL. A missing
// property is reported as an empty value, not an error.
func (c *Client) PropGet(ctx context.Context, prop, target string) (string, error) {
	out, err := c.runner.Run(ctx, c.dir, "svn", "propget", prop, target)
	if err != nil {
		c.log.Debug().Str("prop", prop).Str("target", target).Err(err).Msg("svn propget failed")
		return "", nil
	}
	return strings.TrimSpace(out), nil
}

// parseInfo turns `Key: Value` lines into a metadata map. Lines that
// do not fit the shape are skipped.
func parseInfo(out string) domain.Metadata {
	info := domain.Metadata{}
	for _, line := range strings.Split(out, "\n") {
		key, value, found := strings.Cut(strings.TrimSpace(line), ": ")
		if found && key != "" {
			info[key] = value
		}
	}
	return info
}

// splitLines splits text into lines, each retaining its trailing
// newline. An unterminated final line is kept as-is.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
