package domain

import "fmt"

// Lifecycle status of a Shipment.
//
// A shipment starts as Pending, becomes Planned once an optimization run
// has produced candidate routes, and Accepted once a route is selected.
type ShipmentStatus string

const (
	ShipmentPending  ShipmentStatus = "pending"
	ShipmentPlanned  ShipmentStatus = "planned"
	ShipmentAccepted ShipmentStatus = "accepted"
)

func (s ShipmentStatus) Validate() error {
	switch s {
	case ShipmentPending, ShipmentPlanned, ShipmentAccepted:
		return nil
	}
	return fmt.Errorf("invalid shipment status %q", string(s))
}

func (s ShipmentStatus) String() string {
	return string(s)
}

// Lifecycle status of a candidate Route. Routes are created as Proposed;
// selecting a route marks it Accepted and resets its siblings to Proposed.
type RouteStatus string

const (
	RouteProposed RouteStatus = "proposed"
	RouteAccepted RouteStatus = "accepted"
)

func (s RouteStatus) Validate() error {
	switch s {
	case RouteProposed, RouteAccepted:
		return nil
	}
	return fmt.Errorf("invalid route status %q", string(s))
}

func (s RouteStatus) String() string {
	return string(s)
}
