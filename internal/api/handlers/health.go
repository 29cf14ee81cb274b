package handlers

import (
	"net/http"
	"time"

	"shipment-route-service/internal/api/dto"
	"shipment-route-service/internal/api/respond"
	"shipment-route-service/internal/ports"
)

// HealthHandler reports service liveness and the last probe outcome of
// every backend gateway. Probe state is best-effort, not a guarantee of
// current reachability.
type HealthHandler struct {
	Store     ports.DocumentStore
	Facts     ports.FactStore
	Cache     ports.Cache
	Optimizer ports.RouteOptimizer
	Version   string
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	respond.JSON(w, r, http.StatusOK, dto.HealthResponse{
		Status:    "healthy",
		Version:   h.Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services: map[string]string{
			"surrealdb": probeState(h.Store.IsConnected()),
			"xtdb":      probeState(h.Facts.IsConnected()),
			"dragonfly": probeState(h.Cache.IsConnected()),
			"optimizer": probeState(h.Optimizer.IsConnected()),
		},
	})
}

func probeState(connected bool) string {
	if connected {
		return "connected"
	}
	return "disconnected"
}
