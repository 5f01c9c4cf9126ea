package model

import "time"

// EventOrigin tags which status log a tracking event came from.
type EventOrigin string

const (
	OriginOrder    EventOrigin = "order"
	OriginShipment EventOrigin = "shipment"
)

// TrackingEvent is a derived, display-ready projection of one status change.
// It is produced on demand and never persisted.
type TrackingEvent struct {
	Key         string
	Label       string
	Color       string
	Completed   bool
	At          *time.Time
	Origin      EventOrigin
	Description string
}

// StepInfo carries the display mapping and canonical position of a status key.
type StepInfo struct {
	Label string
	Color string
	Seq   int
}

// trackingSteps maps every status key to its display attributes and canonical
// sequence index. Order steps sort before shipment steps on timestamp ties.
var trackingSteps = map[string]StepInfo{
	string(OrderStatusAwaitingPayment): {Label: "Awaiting payment", Color: "#f0ad4e", Seq: 0},
	string(OrderStatusPendingApproval): {Label: "Pending approval", Color: "#5bc0de", Seq: 1},
	string(OrderStatusApproved):        {Label: "Order approved", Color: "#5cb85c", Seq: 2},
	string(OrderStatusRejected):        {Label: "Order rejected", Color: "#d9534f", Seq: 3},
	string(OrderStatusCancelled):       {Label: "Order cancelled", Color: "#777777", Seq: 4},
	string(ShipmentStatusReadyForPickup): {Label: "Ready for pickup", Color: "#5bc0de", Seq: 10},
	string(ShipmentStatusInTransit):      {Label: "In transit", Color: "#0275d8", Seq: 11},
	string(ShipmentStatusOutForDelivery): {Label: "Out for delivery", Color: "#0275d8", Seq: 12},
	string(ShipmentStatusDelivered):      {Label: "Delivered", Color: "#5cb85c", Seq: 13},
	string(ShipmentStatusReturned):       {Label: "Returned", Color: "#d9534f", Seq: 14},
}

// LookupStep returns display attributes for a status key. Unknown keys get a
// neutral entry sorted after every known step.
func LookupStep(key string) StepInfo {
	if info, ok := trackingSteps[key]; ok {
		return info
	}
	return StepInfo{Label: key, Color: "#777777", Seq: 99}
}

// ShipmentJourney is the canonical success path a healthy shipment follows.
var ShipmentJourney = []ShipmentStatus{
	ShipmentStatusReadyForPickup,
	ShipmentStatusInTransit,
	ShipmentStatusOutForDelivery,
	ShipmentStatusDelivered,
}
