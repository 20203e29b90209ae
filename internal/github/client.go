// Package github is a minimal client for the GitHub REST API.
package github

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gho-cli/gho/internal/models"
)

const (
	// DefaultBaseURL is the public GitHub API endpoint.
	DefaultBaseURL = "https://api.github.com"

	// DefaultLimit is the page size used when the caller passes 0.
	DefaultLimit = 30

	requestTimeout = 30 * time.Second
	userAgent      = "gho"
)

// APIError is a non-2xx response from the GitHub API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GitHub API error %d: %s", e.StatusCode, e.Body)
}

// Client represents an authenticated GitHub API client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	token      string
}

// NewClient creates a client authenticating with the given token.
func NewClient(token string) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		HTTPClient: &http.Client{
			Timeout: requestTimeout,
		},
		token: token,
	}
}

// ListUserRepos lists repositories for a user, most recently pushed
// first. A limit of 0 uses DefaultLimit.
func (c *Client) ListUserRepos(username string, limit int) ([]models.Repository, error) {
	path := fmt.Sprintf("/users/%s/repos", url.PathEscape(username))
	var repos []models.Repository
	if err := c.get(path+listQuery("pushed", limit), &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// ListOrgRepos lists repositories for an organization, most recently
// pushed first. A limit of 0 uses DefaultLimit.
func (c *Client) ListOrgRepos(org string, limit int) ([]models.Repository, error) {
	path := fmt.Sprintf("/orgs/%s/repos", url.PathEscape(org))
	var repos []models.Repository
	if err := c.get(path+listQuery("pushed", limit), &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// GetRepo fetches a single repository.
func (c *Client) GetRepo(owner, repo string) (*models.Repository, error) {
	path := fmt.Sprintf("/repos/%s/%s", url.PathEscape(owner), url.PathEscape(repo))
	var repository models.Repository
	if err := c.get(path, &repository); err != nil {
		return nil, err
	}
	return &repository, nil
}

// ListPullRequests lists open pull requests for a repository, most
// recently updated first. A limit of 0 uses DefaultLimit.
func (c *Client) ListPullRequests(owner, repo string, limit int) ([]models.PullRequest, error) {
	path := fmt.Sprintf("/repos/%s/%s/pulls", url.PathEscape(owner), url.PathEscape(repo))
	query := fmt.Sprintf("?state=open&sort=updated&direction=desc&per_page=%d", effectiveLimit(limit))
	var prs []models.PullRequest
	if err := c.get(path+query, &prs); err != nil {
		return nil, err
	}
	return prs, nil
}

// get performs an authenticated GET and decodes the JSON response into out.
func (c *Client) get(path string, out any) error {
	req, err := http.NewRequest("GET", c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func listQuery(sort string, limit int) string {
	return fmt.Sprintf("?sort=%s&direction=desc&per_page=%d", sort, effectiveLimit(limit))
}

func effectiveLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
