package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"shipment-route-service/internal/api/dto"
	"shipment-route-service/internal/api/respond"
	"shipment-route-service/internal/platform/apperr"
	"shipment-route-service/internal/ports"
)

// TrackingHandler manages append-only position history per shipment.
type TrackingHandler struct {
	Store  ports.DocumentStore
	Logger *slog.Logger
}

func (h *TrackingHandler) Get(w http.ResponseWriter, r *http.Request, params map[string]string) {
	shipmentID := params["shipmentId"]

	rows, err := h.Store.Query(r.Context(),
		`SELECT * FROM position_update WHERE shipment = type::thing("shipment", $id) ORDER BY timestamp DESC LIMIT 100`,
		map[string]any{"id": shipmentID},
	)
	if err != nil {
		h.Logger.Error("get tracking failed", "shipment_id", shipmentID, "err", err)
		respond.Error(w, r, apperr.Wrap(apperr.KindDatabase, err))
		return
	}

	var lastUpdated any
	if len(rows) > 0 {
		lastUpdated = rows[0]["timestamp"]
	}

	respond.JSON(w, r, http.StatusOK, dto.TrackingResponse{
		ShipmentID:  shipmentID,
		Positions:   rows,
		LastUpdated: lastUpdated,
	})
}

func (h *TrackingHandler) AddPosition(w http.ResponseWriter, r *http.Request, params map[string]string) {
	shipmentID := params["shipmentId"]

	var body dto.AddPositionRequest
	if err := decodeBody(r, &body); err != nil {
		respond.Error(w, r, err)
		return
	}

	if body.Lat == nil || body.Lon == nil {
		respond.ErrorKind(w, r, apperr.KindValidation, "lat and lon are required")
		return
	}

	source := body.Source
	if source == "" {
		source = "manual"
	}

	timestamp := time.Now().UTC().Format(time.RFC3339)
	_, err := h.Store.Query(r.Context(),
		`CREATE type::thing("position_update", $id) SET
			shipment = type::thing("shipment", $shipment),
			location = { type: 'Point', coordinates: [$lon, $lat] },
			speed_knots = $speed_knots,
			heading = $heading,
			source = $source,
			timestamp = $timestamp`,
		map[string]any{
			"id":          uuid.NewString(),
			"shipment":    shipmentID,
			"lon":         *body.Lon,
			"lat":         *body.Lat,
			"speed_knots": body.SpeedKnots,
			"heading":     body.Heading,
			"source":      source,
			"timestamp":   timestamp,
		},
	)
	if err != nil {
		h.Logger.Error("add position failed", "shipment_id", shipmentID, "err", err)
		respond.Error(w, r, apperr.Wrap(apperr.KindDatabase, err))
		return
	}

	respond.JSON(w, r, http.StatusOK, dto.PositionCreatedResponse{
		Success:    true,
		ShipmentID: shipmentID,
		Position:   dto.Position{Lat: *body.Lat, Lon: *body.Lon},
		Timestamp:  timestamp,
	})
}
