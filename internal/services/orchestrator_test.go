package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipment-route-service/internal/domain"
	"shipment-route-service/internal/platform/apperr"
)

type storeCall struct {
	query string
	vars  map[string]any
}

// fakeStore records every query and answers through fn, or with empty
// rows when fn is nil.
type fakeStore struct {
	calls []storeCall
	fn    func(q string, vars map[string]any) ([]map[string]any, error)
}

func (f *fakeStore) Connect(ctx context.Context) error { return nil }
func (f *fakeStore) IsConnected() bool                 { return true }

func (f *fakeStore) Query(ctx context.Context, q string, vars map[string]any) ([]map[string]any, error) {
	f.calls = append(f.calls, storeCall{query: q, vars: vars})
	if f.fn != nil {
		return f.fn(q, vars)
	}
	return []map[string]any{}, nil
}

type fakeOptimizer struct {
	req  domain.OptimizeRequest
	resp domain.OptimizeResponse
	err  error
}

func (f *fakeOptimizer) Connect(ctx context.Context) error { return nil }
func (f *fakeOptimizer) IsConnected() bool                 { return true }

func (f *fakeOptimizer) Optimize(ctx context.Context, req domain.OptimizeRequest) (domain.OptimizeResponse, error) {
	f.req = req
	return f.resp, f.err
}

func (f *fakeOptimizer) GraphStatus(ctx context.Context) (domain.GraphStatus, error) {
	return domain.GraphStatus{}, nil
}

func (f *fakeOptimizer) ReloadGraph(ctx context.Context) (domain.GraphReload, error) {
	return domain.GraphReload{}, nil
}

func ptr[T any](v T) *T { return &v }

func newTestOrchestrator(store *fakeStore, opt *fakeOptimizer, selected domain.ShipmentStatus) *Orchestrator {
	return NewOrchestrator(store, opt, selected, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func fullOverrides() OptimizeOverrides {
	return OptimizeOverrides{
		OriginPort:      ptr("SHA"),
		DestinationPort: ptr("RTM"),
	}
}

func TestOptimizeRoutes(t *testing.T) {
	ctx := context.Background()

	t.Run("persists every route and plans the shipment", func(t *testing.T) {
		store := &fakeStore{}
		opt := &fakeOptimizer{resp: domain.OptimizeResponse{
			Success: true,
			Routes: []domain.Route{
				{RouteID: "r1", WeightedScore: 0.2, TotalCostUsd: 1500},
				{RouteID: "r2", WeightedScore: 0.5, TotalCostUsd: 900},
			},
		}}
		orch := newTestOrchestrator(store, opt, domain.ShipmentAccepted)

		resp, err := orch.OptimizeRoutes(ctx, "s1", fullOverrides())
		require.NoError(t, err)

		// The engine response passes through verbatim.
		assert.Equal(t, opt.resp, resp)

		// Both ports came from overrides, so no shipment fetch happened:
		// two route CREATEs then one status UPDATE.
		require.Len(t, store.calls, 3)
		assert.Contains(t, store.calls[0].query, "CREATE")
		assert.Contains(t, store.calls[0].query, "selected = false")
		assert.Equal(t, "r1", store.calls[0].vars["id"])
		assert.Equal(t, "r2", store.calls[1].vars["id"])
		assert.Contains(t, store.calls[2].query, "UPDATE")
		assert.Equal(t, "planned", store.calls[2].vars["status"])
	})

	t.Run("unsuccessful run persists nothing", func(t *testing.T) {
		store := &fakeStore{}
		opt := &fakeOptimizer{resp: domain.OptimizeResponse{
			Success:      false,
			ErrorMessage: "no path between ports",
			Routes:       []domain.Route{},
		}}
		orch := newTestOrchestrator(store, opt, domain.ShipmentAccepted)

		resp, err := orch.OptimizeRoutes(ctx, "s1", fullOverrides())
		require.NoError(t, err)

		assert.False(t, resp.Success)
		assert.Empty(t, store.calls)
	})

	t.Run("success with zero routes persists nothing", func(t *testing.T) {
		store := &fakeStore{}
		opt := &fakeOptimizer{resp: domain.OptimizeResponse{Success: true, Routes: []domain.Route{}}}
		orch := newTestOrchestrator(store, opt, domain.ShipmentAccepted)

		_, err := orch.OptimizeRoutes(ctx, "s1", fullOverrides())
		require.NoError(t, err)
		assert.Empty(t, store.calls)
	})

	t.Run("engine transport error maps to optimizer_error", func(t *testing.T) {
		store := &fakeStore{}
		opt := &fakeOptimizer{err: errors.New("connection refused")}
		orch := newTestOrchestrator(store, opt, domain.ShipmentAccepted)

		_, err := orch.OptimizeRoutes(ctx, "s1", fullOverrides())
		require.Error(t, err)

		var ae *apperr.Error
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, apperr.KindOptimizer, ae.Kind)
	})

	t.Run("mid-batch persistence failure maps to database_error", func(t *testing.T) {
		store := &fakeStore{}
		store.fn = func(q string, vars map[string]any) ([]map[string]any, error) {
			if vars["id"] == "r2" {
				return nil, errors.New("write conflict")
			}
			return []map[string]any{}, nil
		}
		opt := &fakeOptimizer{resp: domain.OptimizeResponse{
			Success: true,
			Routes:  []domain.Route{{RouteID: "r1"}, {RouteID: "r2"}},
		}}
		orch := newTestOrchestrator(store, opt, domain.ShipmentAccepted)

		_, err := orch.OptimizeRoutes(ctx, "s1", fullOverrides())
		require.Error(t, err)

		var ae *apperr.Error
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, apperr.KindDatabase, ae.Kind)

		// r1 persisted, r2 failed, no status update reached.
		require.Len(t, store.calls, 2)
	})
}

func TestOptimizeRequestBuilding(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults apply for an unknown shipment", func(t *testing.T) {
		store := &fakeStore{} // empty result set: shipment does not exist
		opt := &fakeOptimizer{resp: domain.OptimizeResponse{Success: false}}
		orch := newTestOrchestrator(store, opt, domain.ShipmentAccepted)

		_, err := orch.OptimizeRoutes(ctx, "ghost", OptimizeOverrides{})
		require.NoError(t, err)

		// The lookup ran and found nothing, yet the engine was still
		// called with the hard defaults.
		require.Len(t, store.calls, 1)
		assert.Contains(t, store.calls[0].query, "FETCH origin, destination")
		assert.Equal(t, "ghost", store.calls[0].vars["id"])

		req := opt.req
		assert.Equal(t, "ghost", req.ShipmentID)
		assert.Equal(t, float64(1000), req.WeightKg)
		assert.Equal(t, float64(1), req.VolumeM3)
		assert.Equal(t, 10, req.MaxRoutes)
		assert.Equal(t, 8, req.MaxSegments)
		assert.Equal(t, 0.4, req.CostWeight)
		assert.Equal(t, 0.3, req.TimeWeight)
		assert.Equal(t, 0.2, req.CarbonWeight)
		assert.Equal(t, 0.1, req.LaborWeight)
		assert.NotNil(t, req.AllowedModes)
		assert.NotNil(t, req.ExcludedCarriers)
	})

	t.Run("stored shipment values beat defaults", func(t *testing.T) {
		store := &fakeStore{}
		store.fn = func(q string, vars map[string]any) ([]map[string]any, error) {
			return []map[string]any{{
				"origin":          map[string]any{"code": "SGSIN"},
				"destination":     map[string]any{"code": "NLRTM"},
				"weight_kg":       float64(250),
				"volume_cbm":      float64(2.5),
				"earliest_pickup": "2026-09-02T00:00:00Z",
				"latest_delivery": "2026-09-20T00:00:00Z",
			}}, nil
		}
		opt := &fakeOptimizer{resp: domain.OptimizeResponse{Success: false}}
		orch := newTestOrchestrator(store, opt, domain.ShipmentAccepted)

		_, err := orch.OptimizeRoutes(ctx, "s1", OptimizeOverrides{})
		require.NoError(t, err)

		req := opt.req
		assert.Equal(t, "SGSIN", req.OriginPort)
		assert.Equal(t, "NLRTM", req.DestinationPort)
		assert.Equal(t, float64(250), req.WeightKg)
		assert.Equal(t, float64(2.5), req.VolumeM3)
		assert.Equal(t, "2026-09-02T00:00:00Z", req.PickupAfter)
		assert.Equal(t, "2026-09-20T00:00:00Z", req.DeliverBy)
	})

	t.Run("caller overrides beat stored values", func(t *testing.T) {
		store := &fakeStore{}
		store.fn = func(q string, vars map[string]any) ([]map[string]any, error) {
			return []map[string]any{{
				"origin":    map[string]any{"code": "SGSIN"},
				"weight_kg": float64(250),
			}}, nil
		}
		opt := &fakeOptimizer{resp: domain.OptimizeResponse{Success: false}}
		orch := newTestOrchestrator(store, opt, domain.ShipmentAccepted)

		_, err := orch.OptimizeRoutes(ctx, "s1", OptimizeOverrides{
			OriginPort:   ptr("CNSHA"),
			WeightKg:     ptr(float64(900)),
			MaxRoutes:    ptr(3),
			AllowedModes: []string{"sea", "rail"},
			MaxCostUsd:   ptr(float64(5000)),
		})
		require.NoError(t, err)

		req := opt.req
		assert.Equal(t, "CNSHA", req.OriginPort)
		assert.Equal(t, float64(900), req.WeightKg)
		assert.Equal(t, 3, req.MaxRoutes)
		assert.Equal(t, []string{"sea", "rail"}, req.AllowedModes)
		require.NotNil(t, req.MaxCostUsd)
		assert.Equal(t, float64(5000), *req.MaxCostUsd)
	})

	t.Run("record link origin decodes as no known code", func(t *testing.T) {
		store := &fakeStore{}
		store.fn = func(q string, vars map[string]any) ([]map[string]any, error) {
			return []map[string]any{{
				"origin":      "node:sgsin",
				"destination": "node:nlrtm",
			}}, nil
		}
		opt := &fakeOptimizer{resp: domain.OptimizeResponse{Success: false}}
		orch := newTestOrchestrator(store, opt, domain.ShipmentAccepted)

		_, err := orch.OptimizeRoutes(ctx, "s1", OptimizeOverrides{})
		require.NoError(t, err)
		assert.Equal(t, "", opt.req.OriginPort)
	})
}

func TestSelectRoute(t *testing.T) {
	ctx := context.Background()

	t.Run("deselects then selects then updates the shipment", func(t *testing.T) {
		store := &fakeStore{}
		orch := newTestOrchestrator(store, &fakeOptimizer{}, domain.ShipmentAccepted)

		require.NoError(t, orch.SelectRoute(ctx, "s1", "r2"))

		require.Len(t, store.calls, 3)

		assert.Contains(t, store.calls[0].query, "selected = false")
		assert.Equal(t, "s1", store.calls[0].vars["id"])
		assert.Equal(t, "proposed", store.calls[0].vars["status"])

		assert.Contains(t, store.calls[1].query, "selected = true")
		assert.Equal(t, "r2", store.calls[1].vars["id"])
		assert.Equal(t, "accepted", store.calls[1].vars["status"])

		assert.True(t, strings.Contains(store.calls[2].query, `type::thing("shipment", $id)`))
		assert.Equal(t, "accepted", store.calls[2].vars["status"])
	})

	t.Run("configured legacy status flows into the shipment update", func(t *testing.T) {
		store := &fakeStore{}
		orch := newTestOrchestrator(store, &fakeOptimizer{}, domain.ShipmentPlanned)

		require.NoError(t, orch.SelectRoute(ctx, "s1", "r2"))

		require.Len(t, store.calls, 3)
		assert.Equal(t, "planned", store.calls[2].vars["status"])
	})

	t.Run("deselect failure aborts before selection", func(t *testing.T) {
		store := &fakeStore{}
		store.fn = func(q string, vars map[string]any) ([]map[string]any, error) {
			return nil, errors.New("down")
		}
		orch := newTestOrchestrator(store, &fakeOptimizer{}, domain.ShipmentAccepted)

		err := orch.SelectRoute(ctx, "s1", "r2")
		require.Error(t, err)

		var ae *apperr.Error
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, apperr.KindDatabase, ae.Kind)
		require.Len(t, store.calls, 1)
	})
}
