// Package optimizer implements the JSON-over-HTTP gateway to the
// route-optimization engine.
package optimizer

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

	"shipment-route-service/internal/domain"
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
	// The engine exposes gRPC on 50051 and JSON-over-HTTP on 8090; a
	// gRPC address in the config is remapped to the HTTP port.
	baseURL := strings.Replace(rawURL, ":50051", ":8090", 1)

	return &Client{
		session: &http.Client{Timeout: 60 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// Connect probes the engine once and records the outcome.
func (c *Client) Connect(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("optimizer connect: create request: %w", err)
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return fmt.Errorf("optimizer connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("optimizer connect: health check failed: status %d", resp.StatusCode)
	}

	c.connected.Store(true)
	c.logger.Info("connected to optimizer", "url", c.baseURL)
	return nil
}

// IsConnected reports the last probe outcome only.
func (c *Client) IsConnected() bool {
	return c.connected.Load()
}

// Optimize posts one optimization run. A non-2xx response is not an
// error: it becomes an unsuccessful response whose Diagnostic keeps the
// original status and body, so "engine said no" and "engine broken"
// stay distinguishable downstream.
func (c *Client) Optimize(ctx context.Context, oreq domain.OptimizeRequest) (_ domain.OptimizeResponse, err error) {
	defer obs.Time(ctx, c.logger, "optimizer.Optimize")(&err)

	payload, err := json.Marshal(oreq)
	if err != nil {
		return domain.OptimizeResponse{}, fmt.Errorf("optimize: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/optimize", bytes.NewReader(payload))
	if err != nil {
		return domain.OptimizeResponse{}, fmt.Errorf("optimize: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.session.Do(req)
	if err != nil {
		return domain.OptimizeResponse{}, fmt.Errorf("optimize: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return domain.OptimizeResponse{
			Success:      false,
			ErrorMessage: fmt.Sprintf("Optimizer error: %d", resp.StatusCode),
			Routes:       []domain.Route{},
			Diagnostic: &domain.GatewayDiagnostic{
				StatusCode: resp.StatusCode,
				Detail:     strings.TrimSpace(string(b)),
			},
		}, nil
	}

	var out domain.OptimizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.OptimizeResponse{}, fmt.Errorf("optimize: decode response: %w", err)
	}

	return out, nil
}

// GraphStatus fetches the engine's loaded-graph report.
func (c *Client) GraphStatus(ctx context.Context) (_ domain.GraphStatus, err error) {
	defer obs.Time(ctx, c.logger, "optimizer.GraphStatus")(&err)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/graph/status", nil)
	if err != nil {
		return domain.GraphStatus{}, fmt.Errorf("graph status: create request: %w", err)
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return domain.GraphStatus{}, fmt.Errorf("graph status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.GraphStatus{}, fmt.Errorf("graph status: status %d", resp.StatusCode)
	}

	var out domain.GraphStatus
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.GraphStatus{}, fmt.Errorf("graph status: decode response: %w", err)
	}

	return out, nil
}

// ReloadGraph asks the engine to reload its transport graph. A non-2xx
// response reports as an unsuccessful reload rather than an error.
func (c *Client) ReloadGraph(ctx context.Context) (_ domain.GraphReload, err error) {
	defer obs.Time(ctx, c.logger, "optimizer.ReloadGraph")(&err)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/graph/reload", nil)
	if err != nil {
		return domain.GraphReload{}, fmt.Errorf("reload graph: create request: %w", err)
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return domain.GraphReload{}, fmt.Errorf("reload graph: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.GraphReload{
			Success: false,
			Message: fmt.Sprintf("Reload failed: %d", resp.StatusCode),
		}, nil
	}

	var out domain.GraphReload
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.GraphReload{}, fmt.Errorf("reload graph: decode response: %w", err)
	}

	return out, nil
}
