package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fastboard-ai/devprofiler/internal/domain"
	"github.com/fastboard-ai/devprofiler/internal/port"
)

const (
	perPage   = 100
	maxPages  = 3
	userAgent = "FastboardAI"
)

// Client implements port.SourceProvider against the GitHub REST v3 API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	pageDelay  time.Duration
}

// NewClient creates a GitHub client with a bearer token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		pageDelay:  200 * time.Millisecond,
	}
}

type userResponse struct {
	Name        *string `json:"name"`
	Bio         *string `json:"bio"`
	AvatarURL   string  `json:"avatar_url"`
	PublicRepos int     `json:"public_repos"`
	Followers   int     `json:"followers"`
	Following   int     `json:"following"`
	CreatedAt   string  `json:"created_at"`
}

type repoResponse struct {
	Name  string `json:"name"`
	Owner struct {
		Login string `json:"login"`
	} `json:"owner"`
	Description *string `json:"description"`
	Language    *string `json:"language"`
	Fork        bool    `json:"fork"`
	Size        int64   `json:"size"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type treeResponse struct {
	Tree []struct {
		Path string `json:"path"`
		Type string `json:"type"`
		Size *int64 `json:"size"`
	} `json:"tree"`
}

type contentResponse struct {
	Content  *string `json:"content"`
	Encoding *string `json:"encoding"`
}

// Profile fetches the account metadata for a username.
func (c *Client) Profile(ctx context.Context, username string) (*domain.DeveloperProfile, error) {
	var user userResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/users/%s", username), &user); err != nil {
		return nil, fmt.Errorf("github profile: %w", err)
	}

	return &domain.DeveloperProfile{
		Name:        user.Name,
		Bio:         user.Bio,
		AvatarURL:   user.AvatarURL,
		PublicRepos: user.PublicRepos,
		Followers:   user.Followers,
		Following:   user.Following,
		CreatedAt:   user.CreatedAt,
	}, nil
}

// Repos enumerates the user's repositories. Pagination stops at the first
// empty page or at maxPages, whichever comes first, with a fixed delay
// between pages to respect upstream throttling.
func (c *Client) Repos(ctx context.Context, username string) ([]domain.RepositorySummary, error) {
	var repos []domain.RepositorySummary

	for page := 1; page <= maxPages; page++ {
		path := fmt.Sprintf("/users/%s/repos?sort=updated&per_page=%d&page=%d", username, perPage, page)

		var pageRepos []repoResponse
		if err := c.getJSON(ctx, path, &pageRepos); err != nil {
			return nil, fmt.Errorf("github repos page %d: %w", page, err)
		}
		if len(pageRepos) == 0 {
			break
		}

		for _, r := range pageRepos {
			repos = append(repos, domain.RepositorySummary{
				Name:        r.Name,
				Owner:       r.Owner.Login,
				Description: r.Description,
				Language:    r.Language,
				Fork:        r.Fork,
				Size:        r.Size,
				CreatedAt:   r.CreatedAt,
				UpdatedAt:   r.UpdatedAt,
			})
		}

		if len(pageRepos) < perPage {
			break
		}
		time.Sleep(c.pageDelay)
	}

	return repos, nil
}

// Tree fetches the recursive file tree at the default branch HEAD.
func (c *Client) Tree(ctx context.Context, owner, repo string) ([]domain.TreeEntry, error) {
	var tree treeResponse
	path := fmt.Sprintf("/repos/%s/%s/git/trees/HEAD?recursive=1", owner, repo)
	if err := c.getJSON(ctx, path, &tree); err != nil {
		return nil, fmt.Errorf("github tree: %w", err)
	}

	entries := make([]domain.TreeEntry, 0, len(tree.Tree))
	for _, e := range tree.Tree {
		var size int64
		if e.Size != nil {
			size = *e.Size
		}
		entries = append(entries, domain.TreeEntry{Path: e.Path, Type: e.Type, Size: size})
	}
	return entries, nil
}

// FileContent fetches one file and decodes its base64 payload. Undecodable
// bytes are replaced, never an error; a missing content field yields "".
func (c *Client) FileContent(ctx context.Context, owner, repo, path string) (string, error) {
	var content contentResponse
	reqPath := fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, path)
	if err := c.getJSON(ctx, reqPath, &content); err != nil {
		return "", fmt.Errorf("github file content: %w", err)
	}

	if content.Content == nil {
		return "", nil
	}

	// GitHub wraps the base64 payload with newlines
	cleaned := strings.ReplaceAll(*content.Content, "\n", "")
	decoded, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return "", fmt.Errorf("github file content decode: %w", err)
	}
	return strings.ToValidUTF8(string(decoded), "�"), nil
}

// getJSON issues a GET request and decodes the JSON response. 404 maps to
// port.ErrNotFound, 403/429 to port.ErrRateLimited.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return port.ErrNotFound
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		return port.ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("github API error (%d): %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
