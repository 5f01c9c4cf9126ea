package model

import "time"

// ShipmentStatus describes the physical delivery lifecycle.
type ShipmentStatus string

const (
	ShipmentStatusReadyForPickup ShipmentStatus = "READY_FOR_PICKUP"
	ShipmentStatusInTransit      ShipmentStatus = "IN_TRANSIT"
	ShipmentStatusOutForDelivery ShipmentStatus = "OUT_FOR_DELIVERY"
	ShipmentStatusDelivered      ShipmentStatus = "DELIVERED"
	ShipmentStatusReturned       ShipmentStatus = "RETURNED"
)

// shipmentRank orders the forward-only delivery progression.
var shipmentRank = map[ShipmentStatus]int{
	ShipmentStatusReadyForPickup: 0,
	ShipmentStatusInTransit:      1,
	ShipmentStatusOutForDelivery: 2,
	ShipmentStatusDelivered:      3,
}

// Rank returns the canonical position of a status on the success path, or -1 for RETURNED.
func (s ShipmentStatus) Rank() int {
	if rank, ok := shipmentRank[s]; ok {
		return rank
	}
	return -1
}

// CanTransition reports whether the edge from -> to is legal for shipments.
// Forward moves along the success path are allowed; RETURNED is reachable from
// any non-terminal state; nothing leaves a terminal state.
func (from ShipmentStatus) CanTransition(to ShipmentStatus) bool {
	if from.Terminal() {
		return false
	}
	if to == ShipmentStatusReturned {
		return true
	}
	return to.Rank() > from.Rank() && to.Rank() >= 0
}

// Terminal reports whether the shipment reached its final state.
func (s ShipmentStatus) Terminal() bool {
	return s == ShipmentStatusDelivered || s == ShipmentStatusReturned
}

// Shipment is the fulfillment record materialized once an order is approved.
type Shipment struct {
	ID                string
	OrderID           string
	Origin            Address
	Destination       Address
	WeightKg          float64
	DistanceKm        float64
	Priority          int
	Status            ShipmentStatus
	DeliveryPersonID  *string
	VehicleID         *string
	EstimatedDelivery *time.Time
	DeliveredAt       *time.Time
	Incident          *Incident
	CreatedAt         time.Time
	History           []StatusChange
}
