package ports

import "context"

// Port: the bitemporal fact store holding constraint definitions.
// Facts are appended, never mutated; new documents supersede old ones.
type FactStore interface {
	Connect(ctx context.Context) error
	IsConnected() bool

	// Query runs a datalog query and returns the decoded results.
	Query(ctx context.Context, q string) ([]any, error)

	// Put appends one document in a single transaction.
	Put(ctx context.Context, doc map[string]any) error
}
