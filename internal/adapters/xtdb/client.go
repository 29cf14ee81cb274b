// Package xtdb implements the fact-store gateway over XTDB's
// datalog-over-HTTP protocol.
package xtdb

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

// Client is a long-lived gateway handle, safe for concurrent use.
type Client struct {
	session   *http.Client
	baseURL   string
	logger    *slog.Logger
	connected atomic.Bool
}

func NewClient(rawURL string, logger *slog.Logger) *Client {
	return &Client{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(rawURL, "/"),
		logger:  logger,
	}
}

// Connect probes the store once and records the outcome.
func (c *Client) Connect(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return fmt.Errorf("xtdb connect: create request: %w", err)
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return fmt.Errorf("xtdb connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("xtdb connect: health check failed: status %d", resp.StatusCode)
	}

	c.connected.Store(true)
	c.logger.Info("connected to fact store", "url", c.baseURL)
	return nil
}

// IsConnected reports the last probe outcome only.
func (c *Client) IsConnected() bool {
	return c.connected.Load()
}

// Query posts a datalog query as EDN text and decodes the JSON results.
func (c *Client) Query(ctx context.Context, q string) (_ []any, err error) {
	defer obs.Time(ctx, c.logger, "xtdb.Query")(&err)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/query", strings.NewReader(q))
	if err != nil {
		return nil, fmt.Errorf("xtdb query: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/edn")
	req.Header.Set("Accept", "application/json")

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("xtdb query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("xtdb query: status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var results []any
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("xtdb query: decode response: %w", err)
	}

	return results, nil
}

// Put appends one document in a single-operation transaction.
func (c *Client) Put(ctx context.Context, doc map[string]any) (err error) {
	defer obs.Time(ctx, c.logger, "xtdb.Put")(&err)

	payload, err := json.Marshal(map[string]any{
		"txOps": []any{[]any{"put", doc}},
	})
	if err != nil {
		return fmt.Errorf("xtdb put: marshal transaction: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tx", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("xtdb put: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.session.Do(req)
	if err != nil {
		return fmt.Errorf("xtdb put: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("xtdb put: status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	return nil
}
