// Package roadmap provides a client for the public Microsoft 365 roadmap
// release-communications API.
//
// The API is a single unauthenticated GET endpoint returning the full active
// feature set (no pagination; roughly 1,900 records). The client decodes the
// payload into raw Records; interpreting and validating records is left to
// callers.
package roadmap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the default base URL for the M365 roadmap API.
const DefaultBaseURL = "https://www.microsoft.com/releasecommunications/api/v2/m365"

// Client fetches the roadmap feed.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL for the feed.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the HTTP client timeout. Ignored if WithHTTPClient is
// also supplied with a client that carries its own timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New creates a new roadmap feed client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves the full feature feed as raw per-record JSON.
//
// Records are returned undecoded so callers can validate each one
// independently; a single malformed record must not poison the batch.
//
// The v2 endpoint has shipped both a bare JSON array and an OData-style
// envelope with a "value" array; both shapes are accepted.
func (c *Client) Fetch(ctx context.Context) ([]json.RawMessage, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("roadmap fetch failed",
			slog.String("url", c.baseURL),
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		slog.Debug("roadmap fetch returned error",
			slog.String("url", c.baseURL),
			slog.Int("status", resp.StatusCode),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	records, err := decodeFeed(resp.Body)
	if err != nil {
		return nil, err
	}

	slog.Debug("roadmap fetch completed",
		slog.String("url", c.baseURL),
		slog.Int("status", resp.StatusCode),
		slog.Int("records", len(records)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return records, nil
}

func decodeFeed(r io.Reader) ([]json.RawMessage, error) {
	var payload json.RawMessage
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding feed: %w", err)
	}

	trimmed := strings.TrimLeft(string(payload), " \t\r\n")
	if strings.HasPrefix(trimmed, "[") {
		var records []json.RawMessage
		if err := json.Unmarshal(payload, &records); err != nil {
			return nil, fmt.Errorf("decoding feed array: %w", err)
		}
		return records, nil
	}

	var envelope struct {
		Value []json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("decoding feed envelope: %w", err)
	}
	return envelope.Value, nil
}
