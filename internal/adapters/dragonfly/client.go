// Package dragonfly implements the cache gateway. Dragonfly speaks the
// Redis wire protocol; only its health participates in this service.
package dragonfly

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
)

// Client is a long-lived gateway handle, safe for concurrent use.
type Client struct {
	rdb       *redis.Client
	logger    *slog.Logger
	connected atomic.Bool
}

func NewClient(rawURL, pass string, logger *slog.Logger) *Client {
	addr := strings.TrimPrefix(rawURL, "redis://")

	return &Client{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: pass,
		}),
		logger: logger,
	}
}

// Connect probes the cache once with PING and records the outcome.
func (c *Client) Connect(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("dragonfly connect: %w", err)
	}

	c.connected.Store(true)
	c.logger.Info("connected to cache")
	return nil
}

// IsConnected reports the last probe outcome only.
func (c *Client) IsConnected() bool {
	return c.connected.Load()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}
