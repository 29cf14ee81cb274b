package handlers

import (
	"log/slog"
	"net/http"

	"shipment-route-service/internal/api/dto"
	"shipment-route-service/internal/api/respond"
	"shipment-route-service/internal/domain"
	"shipment-route-service/internal/platform/apperr"
	"shipment-route-service/internal/ports"
	"shipment-route-service/internal/services"
)

// RouteHandler exposes the optimization workflow: run the engine,
// inspect the candidate set, and select a route.
type RouteHandler struct {
	Orchestrator *services.Orchestrator
	Store        ports.DocumentStore
	Logger       *slog.Logger
}

func (h *RouteHandler) Optimize(w http.ResponseWriter, r *http.Request, params map[string]string) {
	shipmentID := params["shipmentId"]

	var body dto.OptimizeOverrides
	if err := decodeBody(r, &body); err != nil {
		respond.Error(w, r, err)
		return
	}

	result, err := h.Orchestrator.OptimizeRoutes(r.Context(), shipmentID, services.OptimizeOverrides(body))
	if err != nil {
		h.Logger.Error("optimize routes failed", "shipment_id", shipmentID, "err", err)
		respond.Error(w, r, err)
		return
	}

	routes := result.Routes
	if routes == nil {
		routes = []domain.Route{}
	}

	respond.JSON(w, r, http.StatusOK, dto.OptimizeResponse{
		Success:             result.Success,
		ShipmentID:          shipmentID,
		Routes:              routes,
		OptimizationTimeMs:  result.OptimizationTimeMs,
		CandidatesEvaluated: result.CandidatesEvaluated,
		ErrorMessage:        result.ErrorMessage,
		Diagnostic:          result.Diagnostic,
	})
}

func (h *RouteHandler) List(w http.ResponseWriter, r *http.Request, params map[string]string) {
	shipmentID := params["shipmentId"]

	rows, err := h.Store.Query(r.Context(),
		`SELECT * FROM route WHERE shipment = type::thing("shipment", $id) ORDER BY weighted_score ASC`,
		map[string]any{"id": shipmentID},
	)
	if err != nil {
		h.Logger.Error("list routes failed", "shipment_id", shipmentID, "err", err)
		respond.Error(w, r, apperr.Wrap(apperr.KindDatabase, err))
		return
	}

	respond.JSON(w, r, http.StatusOK, dto.RouteListResponse{
		ShipmentID: shipmentID,
		Data:       rows,
		Total:      len(rows),
	})
}

func (h *RouteHandler) Select(w http.ResponseWriter, r *http.Request, params map[string]string) {
	shipmentID := params["shipmentId"]
	routeID := params["routeId"]

	if err := h.Orchestrator.SelectRoute(r.Context(), shipmentID, routeID); err != nil {
		h.Logger.Error("select route failed", "shipment_id", shipmentID, "route_id", routeID, "err", err)
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, dto.SelectRouteResponse{
		Success:    true,
		ShipmentID: shipmentID,
		RouteID:    routeID,
		Message:    "Route selected",
	})
}
