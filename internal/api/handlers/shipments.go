package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"shipment-route-service/internal/api/dto"
	"shipment-route-service/internal/api/respond"
	"shipment-route-service/internal/domain"
	"shipment-route-service/internal/platform/apperr"
	"shipment-route-service/internal/ports"
)

// ShipmentHandler exposes shipment CRUD against the document store.
type ShipmentHandler struct {
	Store  ports.DocumentStore
	Logger *slog.Logger
}

func (h *ShipmentHandler) List(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)

	rows, err := h.Store.Query(r.Context(),
		`SELECT * FROM shipment ORDER BY created_at DESC LIMIT $limit START $offset`,
		map[string]any{"limit": limit, "offset": offset},
	)
	if err != nil {
		h.Logger.Error("list shipments failed", "err", err)
		respond.Error(w, r, apperr.Wrap(apperr.KindDatabase, err))
		return
	}

	countRows, err := h.Store.Query(r.Context(),
		`SELECT count() FROM shipment GROUP ALL`, nil)
	if err != nil {
		h.Logger.Error("count shipments failed", "err", err)
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

func (h *ShipmentHandler) Get(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id := params["id"]

	rows, err := h.Store.Query(r.Context(),
		`SELECT * FROM shipment WHERE id = type::thing("shipment", $id) OR external_id = $id`,
		map[string]any{"id": id},
	)
	if err != nil {
		h.Logger.Error("get shipment failed", "shipment_id", id, "err", err)
		respond.Error(w, r, apperr.Wrap(apperr.KindDatabase, err))
		return
	}

	if len(rows) == 0 {
		respond.ErrorKind(w, r, apperr.KindNotFound, fmt.Sprintf("Shipment %s not found", id))
		return
	}

	respond.JSON(w, r, http.StatusOK, rows[0])
}

func (h *ShipmentHandler) Create(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var body dto.CreateShipmentRequest
	if err := decodeBody(r, &body); err != nil {
		respond.Error(w, r, err)
		return
	}

	if missing := firstMissingField(body); missing != "" {
		respond.ErrorKind(w, r, apperr.KindValidation, "Missing required field: "+missing)
		return
	}

	now := time.Now().UTC()
	earliestPickup := now
	if body.EarliestPickup != nil {
		earliestPickup = *body.EarliestPickup
	}
	latestDelivery := now.Add(30 * 24 * time.Hour)
	if body.LatestDelivery != nil {
		latestDelivery = *body.LatestDelivery
	}
	priority := body.Priority
	if priority == "" {
		priority = "normal"
	}

	id := uuid.NewString()
	rows, err := h.Store.Query(r.Context(),
		`CREATE type::thing("shipment", $id) SET
			external_id = $external_id,
			customer_id = $customer_id,
			origin = type::thing("transport_node", $origin),
			destination = type::thing("transport_node", $destination),
			weight_kg = $weight_kg,
			volume_cbm = $volume_cbm,
			commodity_code = $commodity_code,
			commodity_desc = $commodity_desc,
			hazmat_class = $hazmat_class,
			temperature_controlled = $temperature_controlled,
			earliest_pickup = $earliest_pickup,
			latest_delivery = $latest_delivery,
			priority = $priority,
			status = $status,
			max_cost_usd = $max_cost_usd,
			max_carbon_kg = $max_carbon_kg,
			created_at = $created_at`,
		map[string]any{
			"id":                     id,
			"external_id":            body.ExternalID,
			"customer_id":            body.CustomerID,
			"origin":                 body.Origin,
			"destination":            body.Destination,
			"weight_kg":              *body.WeightKg,
			"volume_cbm":             body.VolumeCbm,
			"commodity_code":         body.CommodityCode,
			"commodity_desc":         body.CommodityDesc,
			"hazmat_class":           body.HazmatClass,
			"temperature_controlled": body.TemperatureControlled,
			"earliest_pickup":        earliestPickup.Format(time.RFC3339),
			"latest_delivery":        latestDelivery.Format(time.RFC3339),
			"priority":               priority,
			"status":                 string(domain.ShipmentPending),
			"max_cost_usd":           body.MaxCostUsd,
			"max_carbon_kg":          body.MaxCarbonKg,
			"created_at":             now.Format(time.RFC3339),
		},
	)
	if err != nil {
		h.Logger.Error("create shipment failed", "err", err)
		respond.Error(w, r, apperr.Wrap(apperr.KindDatabase, err))
		return
	}

	if len(rows) == 0 {
		respond.JSON(w, r, http.StatusCreated, map[string]any{
			"id":     id,
			"status": string(domain.ShipmentPending),
		})
		return
	}

	respond.JSON(w, r, http.StatusCreated, rows[0])
}

func firstMissingField(body dto.CreateShipmentRequest) string {
	if body.CustomerID == "" {
		return "customerId"
	}
	if body.Origin == "" {
		return "origin"
	}
	if body.Destination == "" {
		return "destination"
	}
	if body.WeightKg == nil {
		return "weightKg"
	}
	return ""
}
