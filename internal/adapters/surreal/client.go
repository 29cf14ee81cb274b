// Package surreal implements the document-store gateway over SurrealDB's
// query-language-over-HTTP protocol.
package surreal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"shipment-route-service/internal/platform/obs"
)

const (
	namespace = "logistics"
	database  = "production"
)

type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

// Client is a long-lived gateway handle, safe for concurrent use. It
// holds only connection metadata; all request state is per-call.
type Client struct {
	session   *http.Client
	baseURL   string
	user      string
	pass      string
	logger    *slog.Logger
	connected atomic.Bool
}

func NewClient(rawURL, user, pass string, logger *slog.Logger) *Client {
	// The store may be configured with its websocket URL; the HTTP
	// endpoint lives at the same host.
	baseURL := strings.Replace(rawURL, "ws://", "http://", 1)
	baseURL = strings.Replace(baseURL, "wss://", "https://", 1)

	return &Client{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		user:    user,
		pass:    pass,
		logger:  logger,
	}
}

// Connect probes the store once and records the outcome. No retry, no
// backoff; domain calls remain possible after a failed probe.
func (c *Client) Connect(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("surreal connect: create request: %w", err)
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return fmt.Errorf("surreal connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("surreal connect: health check failed: status %d", resp.StatusCode)
	}

	c.connected.Store(true)
	c.logger.Info("connected to document store", "url", c.baseURL)
	return nil
}

// IsConnected reports the last probe outcome only.
func (c *Client) IsConnected() bool {
	return c.connected.Load()
}

type statementResult struct {
	Status string          `json:"status"`
	Detail string          `json:"detail"`
	Result json.RawMessage `json:"result"`
}

// Query runs q with bound variables and returns the first statement's
// result rows. A query text may hold several statements; only the first
// statement's result is read.
func (c *Client) Query(ctx context.Context, q string, vars map[string]any) (_ []map[string]any, err error) {
	defer obs.Time(ctx, c.logger, "surreal.Query")(&err)

	var body io.Reader
	if vars != nil {
		payload, err := json.Marshal(map[string]any{"sql": q, "vars": vars})
		if err != nil {
			return nil, fmt.Errorf("surreal query: marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	} else {
		body = strings.NewReader(q)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sql", body)
	if err != nil {
		return nil, fmt.Errorf("surreal query: create request: %w", err)
	}
	req.SetBasicAuth(c.user, c.pass)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("NS", namespace)
	req.Header.Set("DB", database)

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("surreal query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("surreal query: %w", &statusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		})
	}

	var statements []statementResult
	if err := json.NewDecoder(resp.Body).Decode(&statements); err != nil {
		return nil, fmt.Errorf("surreal query: decode response: %w", err)
	}

	if len(statements) == 0 {
		return []map[string]any{}, nil
	}

	first := statements[0]
	if first.Status == "ERR" {
		return nil, fmt.Errorf("surreal query: statement failed: %s", first.Detail)
	}

	if len(first.Result) == 0 || string(first.Result) == "null" {
		return []map[string]any{}, nil
	}

	var rows []map[string]any
	if err := json.Unmarshal(first.Result, &rows); err != nil {
		return nil, fmt.Errorf("surreal query: decode result rows: %w", err)
	}

	return rows, nil
}
