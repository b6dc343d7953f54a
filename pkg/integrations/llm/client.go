// Package llm implements a minimal chat-completions client for
// OpenAI-compatible inference endpoints.
package llm

import (
	"context"
	"strings"
	"time"

	"github.com/reposcout/reposcout/pkg/errors"
	"github.com/reposcout/reposcout/pkg/integrations"
)

const (
	// DefaultBaseURL is the inference gateway used when no endpoint is
	// configured.
	DefaultBaseURL = "https://cs.imds.ai/api/v1"

	// DefaultModel is the adjudication model used when none is configured.
	DefaultModel = "gemini-3-pro-preview"

	// DefaultTimeout bounds a single completion request.
	DefaultTimeout = 30 * time.Second
)

// Config holds the connection settings for a chat-completions endpoint.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client talks to an OpenAI-compatible /chat/completions endpoint.
type Client struct {
	*integrations.Client
	baseURL string
	model   string
	timeout time.Duration
}

// NewClient creates a completion client, filling unset config fields with
// defaults. The API key is required by most deployments but is not
// validated here.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	headers := map[string]string{}
	if cfg.APIKey != "" {
		headers["Authorization"] = "Bearer " + cfg.APIKey
	}
	return &Client{
		Client:  integrations.NewClient(nil, 0, headers),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}
}

// Model reports the configured model identifier.
func (c *Client) Model() string { return c.model }

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a system and user message pair and returns the first
// choice's content.
func (c *Client) Complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
	}

	var resp chatResponse
	if err := c.PostJSON(ctx, c.baseURL+"/chat/completions", req, &resp); err != nil {
		return "", errors.Wrap(errors.ErrCodeNetwork, err, "chat completion request failed")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New(errors.ErrCodeInternal, "model %s returned no choices", c.model)
	}
	return resp.Choices[0].Message.Content, nil
}

// StripFences removes a surrounding markdown code fence from a model reply,
// tolerating an optional language tag with or without a following newline.
// Models often wrap JSON answers even when told not to.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	if i := strings.IndexByte(s, '\n'); i >= 0 && !strings.ContainsAny(s[:i], "{}[]") {
		// First fence line is a language tag such as "yaml".
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
