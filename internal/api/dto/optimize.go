package dto

import "shipment-route-service/internal/domain"

// OptimizeOverrides is the POST /shipments/{id}/optimize body. Every
// field is optional; present values take precedence over shipment-derived
// values, which take precedence over hard defaults.
type OptimizeOverrides struct {
	OriginPort       *string  `json:"originPort"`
	DestinationPort  *string  `json:"destinationPort"`
	WeightKg         *float64 `json:"weightKg"`
	VolumeM3         *float64 `json:"volumeM3"`
	PickupAfter      *string  `json:"pickupAfter"`
	DeliverBy        *string  `json:"deliverBy"`
	MaxCostUsd       *float64 `json:"maxCostUsd"`
	MaxCarbonKg      *float64 `json:"maxCarbonKg"`
	MinLaborScore    *float64 `json:"minLaborScore"`
	AllowedModes     []string `json:"allowedModes"`
	ExcludedCarriers []string `json:"excludedCarriers"`
	MaxRoutes        *int     `json:"maxRoutes"`
	MaxSegments      *int     `json:"maxSegments"`
	CostWeight       *float64 `json:"costWeight"`
	TimeWeight       *float64 `json:"timeWeight"`
	CarbonWeight     *float64 `json:"carbonWeight"`
	LaborWeight      *float64 `json:"laborWeight"`
}

// OptimizeResponse echoes the engine outcome plus the shipment id.
type OptimizeResponse struct {
	Success             bool                      `json:"success"`
	ShipmentID          string                    `json:"shipmentId"`
	Routes              []domain.Route            `json:"routes"`
	OptimizationTimeMs  int64                     `json:"optimizationTimeMs"`
	CandidatesEvaluated int64                     `json:"candidatesEvaluated"`
	ErrorMessage        string                    `json:"errorMessage,omitempty"`
	Diagnostic          *domain.GatewayDiagnostic `json:"diagnostic,omitempty"`
}

// RouteListResponse lists a shipment's candidate routes.
type RouteListResponse struct {
	ShipmentID string           `json:"shipmentId"`
	Data       []map[string]any `json:"data"`
	Total      int              `json:"total"`
}

// SelectRouteResponse confirms a route selection.
type SelectRouteResponse struct {
	Success    bool   `json:"success"`
	ShipmentID string `json:"shipmentId"`
	RouteID    string `json:"routeId"`
	Message    string `json:"message"`
}
