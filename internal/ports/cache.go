package ports

import "context"

// Port: the cache layer. Only its health participates in this service;
// no domain operation reads or writes through it.
type Cache interface {
	Connect(ctx context.Context) error
	IsConnected() bool
}
