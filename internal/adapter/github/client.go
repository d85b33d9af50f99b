// Package github is a minimal GitHub REST client used by the offline
// tagging pipeline to enumerate repositories and fetch their READMEs.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultAPIBase = "https://api.github.com"

// ErrNoReadme marks repositories without a README so callers can skip them
// instead of aborting the run.
var ErrNoReadme = errors.New("readme not found")

// Repo is the subset of the repository listing the pipeline needs.
type Repo struct {
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	HTMLURL     string    `json:"html_url"`
	Description string    `json:"description"`
	Private     bool      `json:"private"`
	Fork        bool      `json:"fork"`
	Language    string    `json:"language"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Client calls the GitHub REST API.
type Client struct {
	apiBase    string
	token      string
	httpClient *http.Client
}

// NewClient creates a GitHub client. token may be empty for anonymous access
// (rate-limited to 60 requests per hour). apiBase may be empty for the
// public API.
func NewClient(token, apiBase string) *Client {
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	return &Client{
		apiBase:    apiBase,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListRepos returns all public repositories of a user, paging until the API
// runs dry. Forks are included; filtering is the caller's call.
func (c *Client) ListRepos(ctx context.Context, user string) ([]Repo, error) {
	var all []Repo
	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/users/%s/repos?per_page=100&page=%d", c.apiBase, user, page)

		body, err := c.get(ctx, url, "application/vnd.github+json")
		if err != nil {
			return nil, fmt.Errorf("list repos page %d: %w", page, err)
		}

		var batch []Repo
		if err := json.Unmarshal(body, &batch); err != nil {
			return nil, fmt.Errorf("decode repos page %d: %w", page, err)
		}
		all = append(all, batch...)
		if len(batch) < 100 {
			return all, nil
		}
	}
}

// Readme fetches the rendered-source README of a repository as raw markdown.
func (c *Client) Readme(ctx context.Context, fullName string) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/readme", c.apiBase, fullName)

	body, err := c.get(ctx, url, "application/vnd.github.raw+json")
	if err != nil {
		return "", fmt.Errorf("readme %s: %w", fullName, err)
	}
	return string(body), nil
}

func (c *Client) get(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNoReadme
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("github API %d: %s", resp.StatusCode, string(body))
	}
	return io.ReadAll(resp.Body)
}
