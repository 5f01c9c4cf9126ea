package model

import "time"

// OrderStatus describes the order lifecycle.
type OrderStatus string

const (
	OrderStatusAwaitingPayment OrderStatus = "AWAITING_PAYMENT"
	OrderStatusPendingApproval OrderStatus = "PENDING_APPROVAL"
	OrderStatusApproved        OrderStatus = "APPROVED"
	OrderStatusRejected        OrderStatus = "REJECTED"
	OrderStatusCancelled       OrderStatus = "CANCELLED"
)

// orderTransitions lists the legal edges of the order state machine.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusAwaitingPayment: {OrderStatusPendingApproval, OrderStatusCancelled},
	OrderStatusPendingApproval: {OrderStatusApproved, OrderStatusRejected, OrderStatusCancelled},
	OrderStatusApproved:        {OrderStatusCancelled},
	OrderStatusRejected:        {},
	OrderStatusCancelled:       {},
}

// CanTransition reports whether the edge from -> to is legal for orders.
func (from OrderStatus) CanTransition(to OrderStatus) bool {
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further order transitions are possible.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusRejected || s == OrderStatusCancelled
}

// Order is a user's request to ship a package, tracked independently of fulfillment.
// Package and route attributes are kept on the order so the shipment can be
// materialized from it after approval.
type Order struct {
	ID          string
	UserID      string
	Origin      Address
	Destination Address
	WeightKg    float64
	DistanceKm  float64
	Priority    int
	Status      OrderStatus
	InvoiceID   string
	PaymentID   *string
	ShipmentID  *string
	CreatedAt   time.Time
	History     []StatusChange
}
