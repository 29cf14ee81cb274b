package xtdb

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("posts EDN and decodes JSON results", func(t *testing.T) {
		var captured struct {
			path        string
			contentType string
			body        string
		}

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured.path = r.URL.Path
			captured.contentType = r.Header.Get("Content-Type")
			b, _ := io.ReadAll(r.Body)
			captured.body = string(b)

			io.WriteString(w, `[[":constraint/no-hazmat-air"],[":constraint/max-transit"]]`)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, discard())
		q := `{:query {:find [?e] :where [[?e :constraint/active? true]]}}`
		results, err := c.Query(ctx, q)
		require.NoError(t, err)

		assert.Equal(t, "/query", captured.path)
		assert.Equal(t, "application/edn", captured.contentType)
		assert.Equal(t, q, captured.body)
		assert.Len(t, results, 2)
	})

	t.Run("non-2xx response is an error with the body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "malformed query", http.StatusBadRequest)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, discard())
		_, err := c.Query(ctx, "{:query}")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "malformed query")
	})
}

func TestPut(t *testing.T) {
	ctx := context.Background()

	t.Run("wraps the document in a single put transaction", func(t *testing.T) {
		var captured map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/tx", r.URL.Path)
			raw, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(raw, &captured))
			io.WriteString(w, `{"txId":7}`)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, discard())
		err := c.Put(ctx, map[string]any{
			"xt/id":           ":constraint/no-hazmat-air",
			"constraint/name": "No hazmat by air",
		})
		require.NoError(t, err)

		ops := captured["txOps"].([]any)
		require.Len(t, ops, 1)
		op := ops[0].([]any)
		require.Len(t, op, 2)
		assert.Equal(t, "put", op[0])
		doc := op[1].(map[string]any)
		assert.Equal(t, ":constraint/no-hazmat-air", doc["xt/id"])
	})

	t.Run("non-2xx response is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, discard())
		err := c.Put(ctx, map[string]any{"xt/id": ":x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
	})
}

func TestConnect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/status", r.URL.Path)
		io.WriteString(w, `{"version":"1.24.3"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, discard())
	require.False(t, c.IsConnected())
	require.NoError(t, c.Connect(context.Background()))
	assert.True(t, c.IsConnected())
}
