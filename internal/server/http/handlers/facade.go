package handlers

import (
	"context"

	"github.com/parcelo/logistics/internal/domain/model"
	"github.com/parcelo/logistics/internal/usecase"
)

// OrderFacade encapsulates order lifecycle operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, in usecase.CreateInput) (*model.Order, *model.Invoice, error)
	Order(ctx context.Context, orderID string) (*model.Order, error)
	Orders(ctx context.Context, userID string) ([]model.Order, error)
	ApproveOrder(ctx context.Context, orderID, adminID string) (*model.Order, error)
	RejectOrder(ctx context.Context, orderID, adminID, reason string) (*model.Order, error)
	CancelOrder(ctx context.Context, orderID, actorID, reason string) (*model.Order, error)
}

// PaymentFacade encapsulates payment operations exposed via HTTP.
type PaymentFacade interface {
	PayInvoice(ctx context.Context, invoiceID string, method model.PaymentMethod) (*model.Payment, error)
	RefundPayment(ctx context.Context, paymentID string) (*model.Payment, error)
}

// ShipmentFacade encapsulates delivery operations exposed via HTTP.
type ShipmentFacade interface {
	Shipment(ctx context.Context, shipmentID string) (*model.Shipment, error)
	ChangeShipmentStatus(ctx context.Context, shipmentID string, status model.ShipmentStatus, reason, actorID string) (*model.Shipment, error)
	AssignDeliveryPerson(ctx context.Context, shipmentID, personID string) (*model.Shipment, error)
	AssignVehicle(ctx context.Context, shipmentID, vehicleID string) (*model.Shipment, error)
	ReportIncident(ctx context.Context, shipmentID string, in usecase.IncidentInput) (*model.Shipment, error)
}

// TrackingFacade serves the merged order/shipment timelines.
type TrackingFacade interface {
	OrderTimeline(ctx context.Context, orderID string) ([]model.TrackingEvent, error)
	ShipmentTimeline(ctx context.Context, shipmentID string) ([]model.TrackingEvent, error)
}

// Pinger reports storage connectivity for the health endpoint.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// LogisticsFacade aggregates the full set of operations used across handlers.
type LogisticsFacade interface {
	OrderFacade
	PaymentFacade
	ShipmentFacade
	TrackingFacade
}
