package ports

import (
	"context"

	"shipment-route-service/internal/domain"
)

// Port: the external route-optimization engine.
//
// Optimize never fails on a non-2xx response; the gateway converts it
// into a structurally valid unsuccessful OptimizeResponse so callers
// treat transport failure uniformly with domain failure. Transport-level
// errors (connection refused, timeouts) still return an error.
type RouteOptimizer interface {
	Connect(ctx context.Context) error
	IsConnected() bool

	Optimize(ctx context.Context, req domain.OptimizeRequest) (domain.OptimizeResponse, error)
	GraphStatus(ctx context.Context) (domain.GraphStatus, error)
	ReloadGraph(ctx context.Context) (domain.GraphReload, error)
}
