package dto

import "time"

// CreateShipmentRequest carries the POST /shipments body. Pointer fields
// distinguish "absent" from zero for required-field validation.
type CreateShipmentRequest struct {
	ExternalID            string     `json:"externalId"`
	CustomerID            string     `json:"customerId"`
	Origin                string     `json:"origin"`
	Destination           string     `json:"destination"`
	WeightKg              *float64   `json:"weightKg"`
	VolumeCbm             *float64   `json:"volumeCbm"`
	CommodityCode         string     `json:"commodityCode"`
	CommodityDesc         string     `json:"commodityDesc"`
	HazmatClass           *string    `json:"hazmatClass"`
	TemperatureControlled bool       `json:"temperatureControlled"`
	EarliestPickup        *time.Time `json:"earliestPickup"`
	LatestDelivery        *time.Time `json:"latestDelivery"`
	Priority              string     `json:"priority"`
	MaxCostUsd            *float64   `json:"maxCostUsd"`
	MaxCarbonKg           *float64   `json:"maxCarbonKg"`
}

// ListResponse is the paged envelope for store-backed collections. Rows
// pass through from the store unmodified.
type ListResponse struct {
	Data   []map[string]any `json:"data"`
	Total  int              `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// EdgeListResponse adds the optional mode filter echo.
type EdgeListResponse struct {
	Data   []map[string]any `json:"data"`
	Total  int              `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
	Mode   string           `json:"mode,omitempty"`
}
