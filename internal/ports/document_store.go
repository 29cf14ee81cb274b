package ports

import "context"

// Port: a boundary for the relational/document store that holds
// shipments, routes, network topology and position updates.
//
// Connect performs a single liveness probe and records its outcome; it
// never retries. A failed probe leaves the gateway usable and later
// domain calls surface their own errors. IsConnected reflects only the
// last probe, not current reachability.
type DocumentStore interface {
	Connect(ctx context.Context) error
	IsConnected() bool

	// Query runs a query with optional bound variables and returns the
	// first statement's result rows (empty when none).
	Query(ctx context.Context, q string, vars map[string]any) ([]map[string]any, error)
}
