package api

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
	"sync/atomic"
	"time"

	"github.com/gamevault/gamevault/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "GameVault/1.0"
)

// APIError is a non-2xx response with the server's error detail.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

// NotFound reports whether the error is a 404.
func (e *APIError) NotFound() bool { return e.StatusCode == http.StatusNotFound }

// Client talks to the archive server. It implements
// domain.ConsoleRepository, domain.GameRepository,
// domain.StatusRepository, domain.StatsRepository,
// domain.AssetRepository and domain.ThemeRepository.
//
// Every call funnels through do: the busy counter covers the request's
// lifetime, failures are surfaced to the notifier exactly once and then
// returned so callers skip dependent work.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	notifier   domain.Notifier
	inFlight   atomic.Int64
}

// NewClient creates a new archive API client. notifier may be nil.
func NewClient(baseURL string, timeout time.Duration, notifier domain.Notifier, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		notifier:   notifier,
	}
}

// Busy reports whether any request is currently in flight.
func (c *Client) Busy() bool { return c.inFlight.Load() > 0 }

func (c *Client) notify(text string) {
	if c.notifier != nil {
		c.notifier.Notify(text, true)
	}
}

// do performs a request against the archive server and returns the raw
// response body. Transport failures map to domain.ErrServerOffline;
// non-2xx statuses parse the FastAPI error payload into *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) ([]byte, error) {
	c.inFlight.Add(1)
	defer c.inFlight.Add(-1)

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.logger.Debug("api request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("api request failed", "method", method, "path", path, "error", err)
		c.notify("Server unreachable")
		return nil, domain.ErrServerOffline
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.notify("Failed to read server response")
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload errorPayload
		if json.Unmarshal(respBody, &payload) == nil {
			apiErr.Detail = payload.Detail
		}
		c.logger.Error("api request error", "method", method, "path", path,
			"status", resp.StatusCode, "detail", apiErr.Detail)
		c.notify(apiErr.Error())
		return nil, apiErr
	}

	return respBody, nil
}

// decode parses a JSON response body into dest.
func (c *Client) decode(path string, body []byte, dest interface{}) error {
	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("JSON parse error", "path", path, "error", err, "bodyLen", len(body))
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// getJSON performs a GET and decodes the response into dest.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest interface{}) error {
	body, err := c.do(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return err
	}
	return c.decode(path, body, dest)
}

// sendJSON performs a request with a JSON body and decodes the response
// into dest when dest is non-nil.
func (c *Client) sendJSON(ctx context.Context, method, path string, payload, dest interface{}) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	respBody, err := c.do(ctx, method, path, nil, body, contentType)
	if err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	return c.decode(path, respBody, dest)
}

// mapNotFound substitutes a domain sentinel for 404 responses.
func mapNotFound(err, sentinel error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.NotFound() {
		return sentinel
	}
	return err
}

// === Consoles ===

func (c *Client) GetConsoles(ctx context.Context) ([]domain.Console, error) {
	var consoles []domain.Console
	if err := c.getJSON(ctx, "/api/consoles", nil, &consoles); err != nil {
		return nil, err
	}
	return consoles, nil
}

func (c *Client) CreateConsole(ctx context.Context, name, path string) (*domain.Console, error) {
	var console domain.Console
	err := c.sendJSON(ctx, http.MethodPost, "/api/consoles", consolePayload{Name: name, Path: path}, &console)
	if err != nil {
		return nil, err
	}
	return &console, nil
}

func (c *Client) UpdateConsole(ctx context.Context, id int64, name, path string) (*domain.Console, error) {
	var console domain.Console
	err := c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/api/consoles/%d", id), consolePayload{Name: name, Path: path}, &console)
	if err != nil {
		return nil, mapNotFound(err, domain.ErrConsoleNotFound)
	}
	return &console, nil
}

func (c *Client) DeleteConsole(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/consoles/%d", id), nil, nil, "")
	return mapNotFound(err, domain.ErrConsoleNotFound)
}

func (c *Client) ScanConsole(ctx context.Context, id int64) (*domain.ScanSummary, error) {
	var resp scanResponse
	err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/api/consoles/%d/scan", id), nil, &resp)
	if err != nil {
		return nil, mapNotFound(err, domain.ErrConsoleNotFound)
	}
	return &domain.ScanSummary{Added: resp.Added, Skipped: resp.Skipped, Errors: resp.Errors}, nil
}

// === Stats ===

func (c *Client) ArchiveStats(ctx context.Context) (*domain.ArchiveStats, error) {
	var stats domain.ArchiveStats
	if err := c.getJSON(ctx, "/api/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) ConsoleStats(ctx context.Context, consoleID int64) (*domain.ConsoleStats, error) {
	var stats domain.ConsoleStats
	err := c.getJSON(ctx, fmt.Sprintf("/api/consoles/%d/stats", consoleID), nil, &stats)
	if err != nil {
		return nil, mapNotFound(err, domain.ErrConsoleNotFound)
	}
	return &stats, nil
}
