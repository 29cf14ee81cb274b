package dto

// AddPositionRequest is the POST /tracking/{id}/positions body.
type AddPositionRequest struct {
	Lat        *float64 `json:"lat"`
	Lon        *float64 `json:"lon"`
	SpeedKnots *float64 `json:"speedKnots"`
	Heading    *float64 `json:"heading"`
	Source     string   `json:"source"`
}

// TrackingResponse returns the newest-first position history.
type TrackingResponse struct {
	ShipmentID  string           `json:"shipmentId"`
	Positions   []map[string]any `json:"positions"`
	LastUpdated any              `json:"lastUpdated"`
}

// PositionCreatedResponse confirms one appended sample.
type PositionCreatedResponse struct {
	Success    bool     `json:"success"`
	ShipmentID string   `json:"shipmentId"`
	Position   Position `json:"position"`
	Timestamp  string   `json:"timestamp"`
}

type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
