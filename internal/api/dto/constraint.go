package dto

// CreateConstraintRequest is the POST /constraints body.
type CreateConstraintRequest struct {
	Name           string         `json:"name"`
	ConstraintType string         `json:"constraintType"`
	Description    string         `json:"description"`
	IsHard         *bool          `json:"isHard"`
	Priority       *int           `json:"priority"`
	Params         map[string]any `json:"params"`
	DatalogRule    *string        `json:"datalogRule"`
}

// CreateConstraintResponse echoes the stored definition with its id.
type CreateConstraintResponse struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	ConstraintType string         `json:"constraintType"`
	Description    string         `json:"description,omitempty"`
	IsHard         bool           `json:"isHard"`
	Priority       int            `json:"priority"`
	Params         map[string]any `json:"params,omitempty"`
	DatalogRule    *string        `json:"datalogRule,omitempty"`
}

// ConstraintListResponse lists active constraint definitions.
type ConstraintListResponse struct {
	Data  []any `json:"data"`
	Total int   `json:"total"`
}
