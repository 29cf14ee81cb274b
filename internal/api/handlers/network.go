package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"shipment-route-service/internal/api/dto"
	"shipment-route-service/internal/api/respond"
	"shipment-route-service/internal/platform/apperr"
	"shipment-route-service/internal/ports"
)

// NetworkHandler exposes read-only network topology listings.
type NetworkHandler struct {
	Store  ports.DocumentStore
	Logger *slog.Logger
}

func (h *NetworkHandler) Nodes(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	limit := queryInt(r, "limit", 100)
	offset := queryInt(r, "offset", 0)

	rows, err := h.Store.Query(r.Context(),
		`SELECT * FROM transport_node WHERE active = true FETCH port, port.country LIMIT $limit START $offset`,
		map[string]any{"limit": limit, "offset": offset},
	)
	if err != nil {
		h.Logger.Error("list nodes failed", "err", err)
		respond.Error(w, r, apperr.Wrap(apperr.KindDatabase, err))
		return
	}

	countRows, err := h.Store.Query(r.Context(),
		`SELECT count() FROM transport_node WHERE active = true GROUP ALL`, nil)
	if err != nil {
		h.Logger.Error("count nodes failed", "err", err)
		respond.Error(w, r, apperr.Wrap(apperr.KindDatabase, err))
		return
	}

	respond.JSON(w, r, http.StatusOK, dto.ListResponse{
		Data:   rows,
		Total:  rowCount(countRows),
		Limit:  limit,
		Offset: offset,
	})
}

func (h *NetworkHandler) Edges(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	limit := queryInt(r, "limit", 100)
	offset := queryInt(r, "offset", 0)
	mode := strings.ToUpper(r.URL.Query().Get("mode"))

	listQ := `SELECT * FROM transport_edge WHERE active = true FETCH from_node, to_node, carrier LIMIT $limit START $offset`
	countQ := `SELECT count() FROM transport_edge WHERE active = true GROUP ALL`
	vars := map[string]any{"limit": limit, "offset": offset}
	countVars := map[string]any(nil)

	if mode != "" {
		listQ = `SELECT * FROM transport_edge WHERE active = true AND mode = $mode FETCH from_node, to_node, carrier LIMIT $limit START $offset`
		countQ = `SELECT count() FROM transport_edge WHERE active = true AND mode = $mode GROUP ALL`
		vars["mode"] = mode
		countVars = map[string]any{"mode": mode}
	}

	rows, err := h.Store.Query(r.Context(), listQ, vars)
	if err != nil {
		h.Logger.Error("list edges failed", "err", err)
		respond.Error(w, r, apperr.Wrap(apperr.KindDatabase, err))
		return
	}

	countRows, err := h.Store.Query(r.Context(), countQ, countVars)
	if err != nil {
		h.Logger.Error("count edges failed", "err", err)
		respond.Error(w, r, apperr.Wrap(apperr.KindDatabase, err))
		return
	}

	respond.JSON(w, r, http.StatusOK, dto.EdgeListResponse{
		Data:   rows,
		Total:  rowCount(countRows),
		Limit:  limit,
		Offset: offset,
		Mode:   mode,
	})
}
