package wikidata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxResponseBytes caps how much of a response body is decoded. Detail
// queries stay well under this; anything larger is not a SPARQL result.
const maxResponseBytes = 64 << 20

// Config configures the SPARQL client.
type Config struct {
	// Endpoint is the SPARQL query URL. Default: the public Wikidata endpoint.
	Endpoint string
	// UserAgent identifies this client, as the endpoint's policy requires.
	UserAgent string
	// Timeout bounds one HTTP round trip. Default: 90s.
	Timeout time.Duration
	// MaxAttempts bounds retries of one query across transient failures.
	// Default: 5.
	MaxAttempts int
	// Cooldown is the wait after HTTP 429 and the base for the escalating
	// wait after other transient failures. Default: 30s.
	Cooldown time.Duration
	// Logger used for retry warnings. Default: slog.Default().
	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Endpoint == "" {
		c.Endpoint = "https://query.wikidata.org/sparql"
	}
	if c.UserAgent == "" {
		c.UserAgent = "mapisse/1.0 (https://github.com/arnoldlayne0/mapisse)"
	}
	if c.Timeout <= 0 {
		c.Timeout = 90 * time.Second
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 5
	}
	if c.Cooldown <= 0 {
		c.Cooldown = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Client executes SPARQL queries with retry on transient failures.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a Client. The zero Config selects production defaults.
func NewClient(cfg Config) *Client {
	cfg.defaults()
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// Execute runs one query and returns its result bindings.
//
// Transient failures (429, 5xx, timeouts) are retried up to MaxAttempts,
// waiting Cooldown after a 429 and Cooldown*attempt otherwise. Fatal
// failures return immediately. Waits respect ctx cancellation.
func (c *Client) Execute(ctx context.Context, query string) ([]Binding, error) {
	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		rows, rateLimited, err := c.do(ctx, query)
		if err == nil {
			return rows, nil
		}
		if errors.Is(err, ErrFatal) || ctx.Err() != nil {
			return nil, err
		}
		lastErr = err
		if attempt == c.cfg.MaxAttempts {
			break
		}

		wait := c.cfg.Cooldown
		if !rateLimited {
			wait = c.cfg.Cooldown * time.Duration(attempt)
		}
		c.cfg.Logger.Warn("wikidata: retrying query",
			"attempt", attempt,
			"max_attempts", c.cfg.MaxAttempts,
			"wait", wait,
			"error", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil, fmt.Errorf("query failed after %d attempts: %w", c.cfg.MaxAttempts, lastErr)
}

// do performs a single request/decode cycle. rateLimited reports an
// HTTP 429, which gets the fixed cooldown rather than the escalating one.
func (c *Client) do(ctx context.Context, query string) (rows []Binding, rateLimited bool, err error) {
	form := url.Values{"query": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, false, fmt.Errorf("%w: new request: %v", ErrFatal, err)
	}
	req.Header.Set("Accept", "application/sparql-results+json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, false, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, true, fmt.Errorf("%w: http 429 (rate limited)", ErrTransient)
	case resp.StatusCode >= 500:
		return nil, false, fmt.Errorf("%w: http %d", ErrTransient, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, false, fmt.Errorf("%w: http %d: %s", ErrFatal, resp.StatusCode, bytes.TrimSpace(body))
	}

	var envelope resultsEnvelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&envelope); err != nil {
		return nil, false, fmt.Errorf("%w: decode response: %v", ErrFatal, err)
	}
	return envelope.Results.Bindings, false, nil
}
