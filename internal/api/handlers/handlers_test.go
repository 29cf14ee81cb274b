package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
)

// Shared fakes for the handler tests.

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type storeCall struct {
	query string
	vars  map[string]any
}

type stubStore struct {
	connected bool
	calls     []storeCall
	fn        func(q string, vars map[string]any) ([]map[string]any, error)
}

func (s *stubStore) Connect(ctx context.Context) error { return nil }
func (s *stubStore) IsConnected() bool                 { return s.connected }

func (s *stubStore) Query(ctx context.Context, q string, vars map[string]any) ([]map[string]any, error) {
	s.calls = append(s.calls, storeCall{query: q, vars: vars})
	if s.fn != nil {
		return s.fn(q, vars)
	}
	return []map[string]any{}, nil
}

type stubFacts struct {
	connected bool
	results   []any
	queryErr  error
	docs      []map[string]any
	putErr    error
}

func (f *stubFacts) Connect(ctx context.Context) error { return nil }
func (f *stubFacts) IsConnected() bool                 { return f.connected }

func (f *stubFacts) Query(ctx context.Context, q string) ([]any, error) {
	return f.results, f.queryErr
}

func (f *stubFacts) Put(ctx context.Context, doc map[string]any) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.docs = append(f.docs, doc)
	return nil
}

func jsonRequest(method, path, body string) *http.Request {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}
