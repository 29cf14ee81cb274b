package api

import (
	"log/slog"
	"net/http"

	"shipment-route-service/internal/api/handlers"
	"shipment-route-service/internal/platform/metrics"
	"shipment-route-service/internal/ports"
	"shipment-route-service/internal/services"
)

// Deps carries every shared handle the HTTP surface needs. Handles are
// constructed once at startup and injected by parameter; nothing here is
// ambient global state.
type Deps struct {
	Store        ports.DocumentStore
	Facts        ports.FactStore
	Cache        ports.Cache
	Optimizer    ports.RouteOptimizer
	Orchestrator *services.Orchestrator
	Logger       *slog.Logger
	Metrics      *metrics.Metrics
	Version      string
}

// NewRouter wires handlers with their dependencies and returns the
// served handler chain. This is the API composition root; handlers stay
// unaware of concrete adapters.
func NewRouter(d Deps) http.Handler {
	health := &handlers.HealthHandler{
		Store:     d.Store,
		Facts:     d.Facts,
		Cache:     d.Cache,
		Optimizer: d.Optimizer,
		Version:   d.Version,
	}
	shipments := &handlers.ShipmentHandler{Store: d.Store, Logger: d.Logger}
	routes := &handlers.RouteHandler{Orchestrator: d.Orchestrator, Store: d.Store, Logger: d.Logger}
	graph := &handlers.GraphHandler{Optimizer: d.Optimizer, Logger: d.Logger}
	network := &handlers.NetworkHandler{Store: d.Store, Logger: d.Logger}
	constraints := &handlers.ConstraintHandler{Facts: d.Facts, Logger: d.Logger}
	tracking := &handlers.TrackingHandler{Store: d.Store, Logger: d.Logger}

	disp := NewDispatcher(d.Logger)

	// Ordered most-specific-first where patterns overlap; the dispatcher
	// takes the first match.
	disp.Register(http.MethodGet, "/health", nil, health.Check)
	disp.Register(http.MethodGet, "/api/v1/health", nil, health.Check)

	disp.Register(http.MethodGet, "/api/v1/shipments", nil, shipments.List)
	disp.Register(http.MethodPost, "/api/v1/shipments", nil, shipments.Create)
	disp.Register(http.MethodGet, "/api/v1/shipments/{}", []string{"id"}, shipments.Get)

	disp.Register(http.MethodPost, "/api/v1/shipments/{}/optimize", []string{"shipmentId"}, routes.Optimize)
	disp.Register(http.MethodGet, "/api/v1/shipments/{}/routes", []string{"shipmentId"}, routes.List)
	disp.Register(http.MethodPost, "/api/v1/shipments/{}/routes/{}/select", []string{"shipmentId", "routeId"}, routes.Select)

	disp.Register(http.MethodGet, "/api/v1/graph/status", nil, graph.Status)
	disp.Register(http.MethodPost, "/api/v1/graph/reload", nil, graph.Reload)
	disp.Register(http.MethodGet, "/api/v1/nodes", nil, network.Nodes)
	disp.Register(http.MethodGet, "/api/v1/edges", nil, network.Edges)

	disp.Register(http.MethodGet, "/api/v1/constraints", nil, constraints.List)
	disp.Register(http.MethodPost, "/api/v1/constraints", nil, constraints.Create)

	disp.Register(http.MethodGet, "/api/v1/tracking/{}", []string{"shipmentId"}, tracking.Get)
	disp.Register(http.MethodPost, "/api/v1/tracking/{}/positions", []string{"shipmentId"}, tracking.AddPosition)

	// The scrape endpoint sits outside the dispatcher so the route table
	// stays exactly the public API surface.
	mux := http.NewServeMux()
	mux.Handle("/metrics", d.Metrics.Handler())
	mux.Handle("/", disp)

	return instrument(mux, d.Logger, d.Metrics)
}
