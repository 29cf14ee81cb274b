// Package services holds the shipment-route optimization workflows.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"shipment-route-service/internal/domain"
	"shipment-route-service/internal/platform/apperr"
	"shipment-route-service/internal/platform/lock"
	"shipment-route-service/internal/ports"
)

// Hard defaults applied when neither the caller nor the stored shipment
// supplies a value.
const (
	defaultWeightKg      = 1000
	defaultVolumeM3      = 1
	defaultDeliveryAfter = 30 * 24 * time.Hour
	defaultMaxRoutes     = 10
	defaultMaxSegments   = 8

	defaultCostWeight   = 0.4
	defaultTimeWeight   = 0.3
	defaultCarbonWeight = 0.2
	defaultLaborWeight  = 0.1
)

// OptimizeOverrides carries caller-supplied optimization parameters.
// Nil fields are absent and fall through to shipment-derived values,
// then to the hard defaults.
type OptimizeOverrides struct {
	OriginPort       *string
	DestinationPort  *string
	WeightKg         *float64
	VolumeM3         *float64
	PickupAfter      *string
	DeliverBy        *string
	MaxCostUsd       *float64
	MaxCarbonKg      *float64
	MinLaborScore    *float64
	AllowedModes     []string
	ExcludedCarriers []string
	MaxRoutes        *int
	MaxSegments      *int
	CostWeight       *float64
	TimeWeight       *float64
	CarbonWeight     *float64
	LaborWeight      *float64
}

// Orchestrator coordinates optimization runs and the route-selection
// lifecycle. Operations on the same shipment run in a single-writer
// section so the "at most one selected route" and append-only history
// invariants hold under concurrent requests.
type Orchestrator struct {
	store          ports.DocumentStore
	optimizer      ports.RouteOptimizer
	locks          lock.KeyedMutex
	logger         *slog.Logger
	selectedStatus domain.ShipmentStatus
}

func NewOrchestrator(
	store ports.DocumentStore,
	optimizer ports.RouteOptimizer,
	selectedStatus domain.ShipmentStatus,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		store:          store,
		optimizer:      optimizer,
		logger:         logger,
		selectedStatus: selectedStatus,
	}
}

// shipmentDetail is the slice of a stored shipment the optimization
// request needs, with origin/destination expanded to their nodes.
type shipmentDetail struct {
	Origin         nodeRef  `json:"origin"`
	Destination    nodeRef  `json:"destination"`
	WeightKg       float64  `json:"weight_kg"`
	VolumeCbm      float64  `json:"volume_cbm"`
	EarliestPickup string   `json:"earliest_pickup"`
	LatestDelivery string   `json:"latest_delivery"`
	MaxCostUsd     *float64 `json:"max_cost_usd"`
	MaxCarbonKg    *float64 `json:"max_carbon_kg"`
}

type nodeRef struct {
	Code string `json:"code"`
}

// A node reference comes back as a plain record link when expansion did
// not apply; treat that as "no code known".
func (n *nodeRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return nil
	}
	type alias nodeRef
	return json.Unmarshal(data, (*alias)(n))
}

// OptimizeRoutes runs one optimization for the shipment and persists the
// returned candidate set. An unknown shipment id still reaches the
// engine with default parameters; "not found" is deferred downstream.
// Re-running on a planned or accepted shipment appends a new candidate
// set, preserving history.
func (o *Orchestrator) OptimizeRoutes(ctx context.Context, shipmentID string, ov OptimizeOverrides) (domain.OptimizeResponse, error) {
	unlock := o.locks.Lock(shipmentID)
	defer unlock()

	var detail *shipmentDetail
	if ov.OriginPort == nil || ov.DestinationPort == nil {
		rows, err := o.store.Query(ctx,
			`SELECT * FROM type::thing("shipment", $id) FETCH origin, destination`,
			map[string]any{"id": shipmentID},
		)
		if err != nil {
			return domain.OptimizeResponse{}, apperr.Wrap(apperr.KindDatabase, fmt.Errorf("fetch shipment %s: %w", shipmentID, err))
		}
		if len(rows) > 0 {
			detail = decodeShipmentDetail(rows[0])
		}
	}

	req := buildOptimizeRequest(shipmentID, ov, detail)

	result, err := o.optimizer.Optimize(ctx, req)
	if err != nil {
		return domain.OptimizeResponse{}, apperr.Wrap(apperr.KindOptimizer, fmt.Errorf("optimize shipment %s: %w", shipmentID, err))
	}

	if result.Success && len(result.Routes) > 0 {
		if err := o.persistRoutes(ctx, shipmentID, result.Routes); err != nil {
			return domain.OptimizeResponse{}, err
		}

		if err := o.setShipmentStatus(ctx, shipmentID, domain.ShipmentPlanned); err != nil {
			return domain.OptimizeResponse{}, err
		}
	}

	return result, nil
}

// persistRoutes stores every candidate route with its Pareto metadata.
// A mid-batch failure aborts the operation and can leave a partial
// candidate set behind; the persisted count is logged for operators.
func (o *Orchestrator) persistRoutes(ctx context.Context, shipmentID string, routes []domain.Route) error {
	const create = `CREATE type::thing("route", $id) SET
		shipment = type::thing("shipment", $shipment),
		status = $status,
		selected = false,
		total_cost_usd = $total_cost_usd,
		total_carbon_kg = $total_carbon_kg,
		total_transit_hours = $total_transit_hours,
		total_distance_km = $total_distance_km,
		labor_score = $labor_score,
		pareto_optimal = $pareto_optimal,
		pareto_rank = $pareto_rank,
		weighted_score = $weighted_score`

	for i, rt := range routes {
		_, err := o.store.Query(ctx, create, map[string]any{
			"id":                  rt.RouteID,
			"shipment":            shipmentID,
			"status":              string(domain.RouteProposed),
			"total_cost_usd":      rt.TotalCostUsd,
			"total_carbon_kg":     rt.TotalCarbonKg,
			"total_transit_hours": rt.TotalTimeHours,
			"total_distance_km":   rt.TotalDistanceKm,
			"labor_score":         rt.LaborScore,
			"pareto_optimal":      rt.ParetoOptimal,
			"pareto_rank":         rt.ParetoRank,
			"weighted_score":      rt.WeightedScore,
		})
		if err != nil {
			o.logger.Error("route persistence failed mid-batch",
				"shipment_id", shipmentID, "persisted", i, "total", len(routes), "err", err)
			return apperr.Wrap(apperr.KindDatabase, fmt.Errorf("persist route %s: %w", rt.RouteID, err))
		}
	}

	return nil
}

func (o *Orchestrator) setShipmentStatus(ctx context.Context, shipmentID string, status domain.ShipmentStatus) error {
	_, err := o.store.Query(ctx,
		`UPDATE type::thing("shipment", $id) SET status = $status`,
		map[string]any{"id": shipmentID, "status": string(status)},
	)
	if err != nil {
		return apperr.Wrap(apperr.KindDatabase, fmt.Errorf("update shipment %s status: %w", shipmentID, err))
	}
	return nil
}

// SelectRoute marks one candidate as the shipment's selected route.
// Deselect-then-select ordering inside the per-shipment section keeps
// at most one route selected.
func (o *Orchestrator) SelectRoute(ctx context.Context, shipmentID, routeID string) error {
	unlock := o.locks.Lock(shipmentID)
	defer unlock()

	_, err := o.store.Query(ctx,
		`UPDATE route SET selected = false, status = $status WHERE shipment = type::thing("shipment", $id)`,
		map[string]any{"id": shipmentID, "status": string(domain.RouteProposed)},
	)
	if err != nil {
		return apperr.Wrap(apperr.KindDatabase, fmt.Errorf("deselect routes of shipment %s: %w", shipmentID, err))
	}

	_, err = o.store.Query(ctx,
		`UPDATE type::thing("route", $id) SET selected = true, status = $status`,
		map[string]any{"id": routeID, "status": string(domain.RouteAccepted)},
	)
	if err != nil {
		return apperr.Wrap(apperr.KindDatabase, fmt.Errorf("select route %s: %w", routeID, err))
	}

	return o.setShipmentStatus(ctx, shipmentID, o.selectedStatus)
}

func decodeShipmentDetail(row map[string]any) *shipmentDetail {
	raw, err := json.Marshal(row)
	if err != nil {
		return nil
	}

	var detail shipmentDetail
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil
	}

	return &detail
}

// buildOptimizeRequest merges parameters with precedence
// override > shipment > default.
func buildOptimizeRequest(shipmentID string, ov OptimizeOverrides, sh *shipmentDetail) domain.OptimizeRequest {
	now := time.Now().UTC()

	var (
		originPort, destinationPort string
		weightKg, volumeM3          float64
		pickupAfter, deliverBy      string
		maxCostUsd, maxCarbonKg     *float64
	)

	if sh != nil {
		originPort = sh.Origin.Code
		destinationPort = sh.Destination.Code
		weightKg = sh.WeightKg
		volumeM3 = sh.VolumeCbm
		pickupAfter = sh.EarliestPickup
		deliverBy = sh.LatestDelivery
		maxCostUsd = sh.MaxCostUsd
		maxCarbonKg = sh.MaxCarbonKg
	}

	if ov.MaxCostUsd != nil {
		maxCostUsd = ov.MaxCostUsd
	}
	if ov.MaxCarbonKg != nil {
		maxCarbonKg = ov.MaxCarbonKg
	}

	return domain.OptimizeRequest{
		ShipmentID:       shipmentID,
		OriginPort:       strOr(ov.OriginPort, originPort, ""),
		DestinationPort:  strOr(ov.DestinationPort, destinationPort, ""),
		WeightKg:         floatOr(ov.WeightKg, weightKg, defaultWeightKg),
		VolumeM3:         floatOr(ov.VolumeM3, volumeM3, defaultVolumeM3),
		PickupAfter:      strOr(ov.PickupAfter, pickupAfter, now.Format(time.RFC3339)),
		DeliverBy:        strOr(ov.DeliverBy, deliverBy, now.Add(defaultDeliveryAfter).Format(time.RFC3339)),
		MaxCostUsd:       maxCostUsd,
		MaxCarbonKg:      maxCarbonKg,
		MinLaborScore:    ov.MinLaborScore,
		AllowedModes:     sliceOr(ov.AllowedModes),
		ExcludedCarriers: sliceOr(ov.ExcludedCarriers),
		MaxRoutes:        intOr(ov.MaxRoutes, defaultMaxRoutes),
		MaxSegments:      intOr(ov.MaxSegments, defaultMaxSegments),
		CostWeight:       floatOr(ov.CostWeight, 0, defaultCostWeight),
		TimeWeight:       floatOr(ov.TimeWeight, 0, defaultTimeWeight),
		CarbonWeight:     floatOr(ov.CarbonWeight, 0, defaultCarbonWeight),
		LaborWeight:      floatOr(ov.LaborWeight, 0, defaultLaborWeight),
	}
}

func strOr(override *string, fromShipment, fallback string) string {
	if override != nil && *override != "" {
		return *override
	}
	if fromShipment != "" {
		return fromShipment
	}
	return fallback
}

func floatOr(override *float64, fromShipment, fallback float64) float64 {
	if override != nil {
		return *override
	}
	if fromShipment != 0 {
		return fromShipment
	}
	return fallback
}

func intOr(override *int, fallback int) int {
	if override != nil && *override != 0 {
		return *override
	}
	return fallback
}

func sliceOr(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
