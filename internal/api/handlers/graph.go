package handlers

import (
	"log/slog"
	"net/http"

	"shipment-route-service/internal/api/respond"
	"shipment-route-service/internal/platform/apperr"
	"shipment-route-service/internal/ports"
)

// GraphHandler proxies transport-graph operations to the engine.
type GraphHandler struct {
	Optimizer ports.RouteOptimizer
	Logger    *slog.Logger
}

func (h *GraphHandler) Status(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	status, err := h.Optimizer.GraphStatus(r.Context())
	if err != nil {
		h.Logger.Error("graph status failed", "err", err)
		respond.Error(w, r, apperr.Wrap(apperr.KindOptimizer, err))
		return
	}

	respond.JSON(w, r, http.StatusOK, status)
}

func (h *GraphHandler) Reload(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	result, err := h.Optimizer.ReloadGraph(r.Context())
	if err != nil {
		h.Logger.Error("graph reload failed", "err", err)
		respond.Error(w, r, apperr.Wrap(apperr.KindOptimizer, err))
		return
	}

	respond.JSON(w, r, http.StatusOK, result)
}
