// Package reviewboard is a thin HTTP client for the parts of the
// Review Board web API the tool needs: the repository list and
// per-repository info.
package reviewboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/postreview/svndiff/internal/usecase/server"
)

const defaultTimeout = 30 * time.Second

// The server answers 210 when it cannot fetch info for a repository;
// that repository is simply skipped during matching.
const errCodeRepoInfoUnavailable = 210

// Client talks to one Review Board server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// SetTimeout sets the HTTP timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.httpClient.Timeout = timeout
}

type repositoryPayload struct {
	ID         int    `json:"id"`
	Tool       string `json:"tool"`
	Path       string `json:"path"`
	MirrorPath string `json:"mirror_path"`
}

type repositoriesResponse struct {
	Stat         string              `json:"stat"`
	Repositories []repositoryPayload `json:"repositories"`
}

type repositoryInfoResponse struct {
	Stat string `json:"stat"`
	Info struct {
		UUID    string `json:"uuid"`
		URL     string `json:"url"`
		RootURL string `json:"root_url"`
	} `json:"info"`
	Err struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	} `json:"err"`
}

// Repositories lists the repositories registered on the server.
func (c *Client) Repositories(ctx context.Context) ([]server.RemoteRepository, error) {
	var resp repositoriesResponse
	if err := c.get(ctx, "/api/repositories/", &resp); err != nil {
		return nil, err
	}
	if resp.Stat != "ok" {
		return nil, fmt.Errorf("repository list request failed: stat=%s", resp.Stat)
	}

	repos := make([]server.RemoteRepository, 0, len(resp.Repositories))
	for _, r := range resp.Repositories {
		repos = append(repos, server.RemoteRepository{
			ID:         r.ID,
			Tool:       r.Tool,
			Path:       r.Path,
			MirrorPath: r.MirrorPath,
		})
	}
	return repos, nil
}

// RepositoryInfo fetches the server's detailed view of one repository.
// Returns (nil, nil) when the server reports it cannot provide info.
func (c *Client) RepositoryInfo(ctx context.Context, id int) (*server.RemoteRepositoryInfo, error) {
	var resp repositoryInfoResponse
	if err := c.get(ctx, fmt.Sprintf("/api/repositories/%d/info/", id), &resp); err != nil {
		return nil, err
	}
	if resp.Stat != "ok" {
		if resp.Err.Code == errCodeRepoInfoUnavailable {
			return nil, nil
		}
		return nil, fmt.Errorf("repository info request failed: code=%d msg=%s", resp.Err.Code, resp.Err.Msg)
	}

	return &server.RemoteRepositoryInfo{
		UUID:    resp.Info.UUID,
		URL:     resp.Info.URL,
		RootURL: resp.Info.RootURL,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	// Review Board reports application errors inside the JSON body,
	// sometimes alongside a non-200 status.
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("request %s: server returned %d", path, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response from %s: %w", path, err)
	}
	return nil
}
