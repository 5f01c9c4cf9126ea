package dto

import "time"

// AddressPayload mirrors model.Address on the wire.
type AddressPayload struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// CreateOrderRequest opens a new order.
type CreateOrderRequest struct {
	UserID      string         `json:"user_id"`
	Origin      AddressPayload `json:"origin"`
	Destination AddressPayload `json:"destination"`
	WeightKg    float64        `json:"weight_kg"`
	WidthCm     float64        `json:"width_cm"`
	HeightCm    float64        `json:"height_cm"`
	LengthCm    float64        `json:"length_cm"`
	DistanceKm  float64        `json:"distance_km"`
	Priority    int            `json:"priority"`
	Services    []string       `json:"services,omitempty"`
}

// ActionRequest carries the acting party for approve/reject/cancel operations.
type ActionRequest struct {
	ActorID string `json:"actor_id"`
	Reason  string `json:"reason,omitempty"`
}

// StatusChangeResponse is one entry of a status log.
type StatusChangeResponse struct {
	Status  string    `json:"status"`
	At      time.Time `json:"at"`
	ActorID string    `json:"actor_id"`
	Reason  string    `json:"reason,omitempty"`
}

// OrderResponse represents an order with its full status log.
type OrderResponse struct {
	ID         string                 `json:"id"`
	UserID     string                 `json:"user_id"`
	Status     string                 `json:"status"`
	InvoiceID  string                 `json:"invoice_id"`
	PaymentID  *string                `json:"payment_id,omitempty"`
	ShipmentID *string                `json:"shipment_id,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	History    []StatusChangeResponse `json:"history"`
}

// LineItemResponse is one priced entry of an invoice.
type LineItemResponse struct {
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
}

// InvoiceResponse represents the priced breakdown backing a payment.
type InvoiceResponse struct {
	ID      string             `json:"id"`
	OrderID string             `json:"order_id"`
	Items   []LineItemResponse `json:"items"`
	Total   int64              `json:"total"`
}

// CreateOrderResponse returns the opened order together with its invoice.
type CreateOrderResponse struct {
	Order   OrderResponse   `json:"order"`
	Invoice InvoiceResponse `json:"invoice"`
}
