// Package github implements the search-index boundary: keyword search for
// candidate repositories against a GitHub-compatible API.
package github

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/reposcout/reposcout/pkg/cache"
	"github.com/reposcout/reposcout/pkg/integrations"
)

// DefaultBaseURL is the public GitHub API endpoint.
const DefaultBaseURL = "https://api.github.com"

// userAgent identifies the scout to the search API; GitHub rejects
// anonymous requests without one.
const userAgent = "reposcout"

// Repo is one search result, normalized to the fields the ranking pipeline
// consumes.
type Repo struct {
	Name        string
	CloneURL    string
	Description string // may be empty; callers apply their own placeholder
	Stars       int
}

// Client provides repository keyword search with caching and retries.
// Requests are authenticated when a token is supplied, which raises the
// API's rate limits but is not required.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a search client. Pass an empty token for
// unauthenticated requests and a nil cache to disable response caching.
func NewClient(token string, c cache.Cache, ttl time.Duration) *Client {
	headers := map[string]string{
		"Accept":     "application/vnd.github.v3+json",
		"User-Agent": userAgent,
	}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return &Client{
		Client:  integrations.NewClient(c, ttl, headers),
		baseURL: DefaultBaseURL,
	}
}

// WithBaseURL points the client at a different API root. Used by tests and
// GitHub Enterprise deployments.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = base
	return c
}

// SearchRepositories runs a keyword query sorted by stars descending and
// returns up to perPage results in index order.
func (c *Client) SearchRepositories(ctx context.Context, query string, perPage int) ([]Repo, error) {
	key := fmt.Sprintf("github:search:%d:%s", perPage, query)

	var data searchResponse
	err := c.Cached(ctx, key, false, &data, func() error {
		u := fmt.Sprintf("%s/search/repositories?q=%s&sort=stars&order=desc&per_page=%d",
			c.baseURL, url.QueryEscape(query), perPage)
		return c.Get(ctx, u, &data)
	})
	if err != nil {
		return nil, err
	}

	repos := make([]Repo, 0, len(data.Items))
	for _, item := range data.Items {
		repos = append(repos, Repo{
			Name:        item.Name,
			CloneURL:    item.CloneURL,
			Description: item.Description,
			Stars:       item.Stars,
		})
	}
	return repos, nil
}

type searchResponse struct {
	Items []struct {
		Name        string `json:"name"`
		CloneURL    string `json:"clone_url"`
		Description string `json:"description"`
		Stars       int    `json:"stargazers_count"`
	} `json:"items"`
}
