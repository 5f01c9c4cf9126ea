package dto

import "time"

// ChangeShipmentStatusRequest moves a shipment along the delivery path.
type ChangeShipmentStatusRequest struct {
	Status  string `json:"status"`
	ActorID string `json:"actor_id"`
	Reason  string `json:"reason,omitempty"`
}

// AssignRequest assigns a courier or a vehicle to a shipment.
type AssignRequest struct {
	ID string `json:"id"`
}

// ReportIncidentRequest files a delivery problem report.
type ReportIncidentRequest struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	ReporterID  string `json:"reporter_id"`
}

// IncidentResponse represents the incident attached to a shipment.
type IncidentResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	ReporterID  string    `json:"reporter_id"`
	At          time.Time `json:"at"`
}

// ShipmentResponse represents a shipment with its full status log.
type ShipmentResponse struct {
	ID                string                 `json:"id"`
	OrderID           string                 `json:"order_id"`
	Status            string                 `json:"status"`
	DeliveryPersonID  *string                `json:"delivery_person_id,omitempty"`
	VehicleID         *string                `json:"vehicle_id,omitempty"`
	EstimatedDelivery *time.Time             `json:"estimated_delivery,omitempty"`
	DeliveredAt       *time.Time             `json:"delivered_at,omitempty"`
	Incident          *IncidentResponse      `json:"incident,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	History           []StatusChangeResponse `json:"history"`
}
