package domain

// Exchange types for the optimization engine. Field names follow the
// engine's JSON-over-HTTP contract and are echoed verbatim to API callers.

// OptimizeRequest describes one multi-objective optimization run for a
// single shipment. Objective weights are not required to sum to 1.
type OptimizeRequest struct {
	ShipmentID       string   `json:"shipmentId"`
	OriginPort       string   `json:"originPort"`
	DestinationPort  string   `json:"destinationPort"`
	WeightKg         float64  `json:"weightKg"`
	VolumeM3         float64  `json:"volumeM3"`
	PickupAfter      string   `json:"pickupAfter"`
	DeliverBy        string   `json:"deliverBy"`
	MaxCostUsd       *float64 `json:"maxCostUsd,omitempty"`
	MaxCarbonKg      *float64 `json:"maxCarbonKg,omitempty"`
	MinLaborScore    *float64 `json:"minLaborScore,omitempty"`
	AllowedModes     []string `json:"allowedModes"`
	ExcludedCarriers []string `json:"excludedCarriers"`
	MaxRoutes        int      `json:"maxRoutes"`
	MaxSegments      int      `json:"maxSegments"`
	CostWeight       float64  `json:"costWeight"`
	TimeWeight       float64  `json:"timeWeight"`
	CarbonWeight     float64  `json:"carbonWeight"`
	LaborWeight      float64  `json:"laborWeight"`
}

// Route is one candidate returned by the engine. ParetoRank 0 means the
// route sits on the non-dominated frontier; WeightedScore is the scalar
// combination of objectives (lower is better).
type Route struct {
	RouteID           string             `json:"routeId"`
	Segments          []Segment          `json:"segments"`
	TotalCostUsd      float64            `json:"totalCostUsd"`
	TotalTimeHours    float64            `json:"totalTimeHours"`
	TotalCarbonKg     float64            `json:"totalCarbonKg"`
	TotalDistanceKm   float64            `json:"totalDistanceKm"`
	LaborScore        float64            `json:"laborScore"`
	ParetoRank        int                `json:"paretoRank"`
	ParetoOptimal     bool               `json:"paretoOptimal"`
	WeightedScore     float64            `json:"weightedScore"`
	ConstraintResults []ConstraintResult `json:"constraintResults"`
}

// Segment is one ordered leg of a Route. Segments are immutable once the
// route exists and are owned exclusively by it.
type Segment struct {
	SegmentID        string  `json:"segmentId"`
	Sequence         int     `json:"sequence"`
	FromNode         string  `json:"fromNode"`
	ToNode           string  `json:"toNode"`
	Mode             string  `json:"mode"`
	CarrierCode      string  `json:"carrierCode"`
	DistanceKm       float64 `json:"distanceKm"`
	CostUsd          float64 `json:"costUsd"`
	TransitHours     float64 `json:"transitHours"`
	CarbonKg         float64 `json:"carbonKg"`
	CarrierWageCents int     `json:"carrierWageCents"`
	DepartureTime    string  `json:"departureTime"`
	ArrivalTime      string  `json:"arrivalTime"`
}

// ConstraintResult is the evaluation outcome of one named routing
// constraint against a Route at optimization time.
type ConstraintResult struct {
	ConstraintID   string  `json:"constraintId"`
	ConstraintType string  `json:"constraintType"`
	Passed         bool    `json:"passed"`
	IsHard         bool    `json:"isHard"`
	Score          float64 `json:"score"`
	Message        string  `json:"message"`
}

// OptimizeResponse is the engine's verdict for one run. A gateway-level
// failure (non-2xx) is normalized into Success=false with Diagnostic
// carrying the original HTTP status and body, so callers can tell
// "engine said no" apart from "engine unreachable".
type OptimizeResponse struct {
	Success             bool               `json:"success"`
	ErrorMessage        string             `json:"errorMessage"`
	Routes              []Route            `json:"routes"`
	OptimizationTimeMs  int64              `json:"optimizationTimeMs"`
	CandidatesEvaluated int64              `json:"candidatesEvaluated"`
	Diagnostic          *GatewayDiagnostic `json:"diagnostic,omitempty"`
}

// GatewayDiagnostic preserves the raw transport outcome behind a
// normalized failure response.
type GatewayDiagnostic struct {
	StatusCode int    `json:"statusCode"`
	Detail     string `json:"detail"`
}

// GraphStatus reports the engine's loaded transport graph.
type GraphStatus struct {
	NodeCount  int            `json:"nodeCount"`
	EdgeCount  int            `json:"edgeCount"`
	LastLoaded string         `json:"lastLoaded"`
	LoadTimeMs int64          `json:"loadTimeMs"`
	ModeCounts map[string]int `json:"modeCounts"`
}

// GraphReload is the outcome of asking the engine to reload its graph.
type GraphReload struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	LoadTimeMs int64  `json:"loadTimeMs"`
}
