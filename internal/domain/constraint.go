package domain

import "time"

// Constraint is a named, typed routing rule definition. Definitions live
// in the bitemporal fact store: they are never updated in place, new
// facts supersede old ones.
type Constraint struct {
	ID          string
	Name        string
	Type        string
	Description string
	IsHard      bool
	Active      bool
	Priority    int
	Params      map[string]any
	DatalogRule *string
	CreatedAt   time.Time
}

// Document renders the constraint as a fact-store document with
// namespaced keys.
func (c Constraint) Document() map[string]any {
	var rule any
	if c.DatalogRule != nil {
		rule = *c.DatalogRule
	}

	params := c.Params
	if params == nil {
		params = map[string]any{}
	}

	return map[string]any{
		"xt/id":                   ":constraint/" + c.ID,
		"constraint/id":           c.ID,
		"constraint/name":         c.Name,
		"constraint/type":         ":" + c.Type,
		"constraint/description":  c.Description,
		"constraint/hard?":        c.IsHard,
		"constraint/active?":      c.Active,
		"constraint/priority":     c.Priority,
		"constraint/params":       params,
		"constraint/datalog-rule": rule,
		"constraint/created-at":   c.CreatedAt.UTC().Format(time.RFC3339),
	}
}
