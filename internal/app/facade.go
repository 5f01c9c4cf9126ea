package app

import (
	"context"

	"github.com/parcelo/logistics/internal/domain/model"
	"github.com/parcelo/logistics/internal/saga"
	"github.com/parcelo/logistics/internal/usecase"
)

// LogisticsFacade is the single entry point the HTTP layer and the background
// worker talk to. Reads go straight to the use cases; every lifecycle mutation
// goes through the orchestrator so per-entity locking stays in one place.
type LogisticsFacade struct {
	orders    *usecase.OrderUseCase
	shipments *usecase.ShipmentUseCase
	payments  *usecase.PaymentUseCase
	timeline  *usecase.TimelineUseCase
	orch      *saga.Orchestrator
}

func NewLogisticsFacade(
	orders *usecase.OrderUseCase,
	shipments *usecase.ShipmentUseCase,
	payments *usecase.PaymentUseCase,
	timeline *usecase.TimelineUseCase,
	orch *saga.Orchestrator,
) *LogisticsFacade {
	return &LogisticsFacade{orders: orders, shipments: shipments, payments: payments, timeline: timeline, orch: orch}
}

func (f *LogisticsFacade) CreateOrder(ctx context.Context, in usecase.CreateInput) (*model.Order, *model.Invoice, error) {
	return f.orders.Create(ctx, in)
}

func (f *LogisticsFacade) Order(ctx context.Context, orderID string) (*model.Order, error) {
	return f.orders.Get(ctx, orderID)
}

func (f *LogisticsFacade) Orders(ctx context.Context, userID string) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *LogisticsFacade) ApproveOrder(ctx context.Context, orderID, adminID string) (*model.Order, error) {
	return f.orch.ApproveOrder(ctx, orderID, adminID)
}

func (f *LogisticsFacade) RejectOrder(ctx context.Context, orderID, adminID, reason string) (*model.Order, error) {
	return f.orch.RejectOrder(ctx, orderID, adminID, reason)
}

func (f *LogisticsFacade) CancelOrder(ctx context.Context, orderID, actorID, reason string) (*model.Order, error) {
	return f.orch.CancelOrder(ctx, orderID, actorID, reason)
}

func (f *LogisticsFacade) PayInvoice(ctx context.Context, invoiceID string, method model.PaymentMethod) (*model.Payment, error) {
	return f.payments.ProcessPayment(ctx, invoiceID, method)
}

func (f *LogisticsFacade) RefundPayment(ctx context.Context, paymentID string) (*model.Payment, error) {
	return f.payments.Refund(ctx, paymentID)
}

func (f *LogisticsFacade) Shipment(ctx context.Context, shipmentID string) (*model.Shipment, error) {
	return f.shipments.Get(ctx, shipmentID)
}

func (f *LogisticsFacade) ChangeShipmentStatus(ctx context.Context, shipmentID string, status model.ShipmentStatus, reason, actorID string) (*model.Shipment, error) {
	return f.orch.ChangeShipmentStatus(ctx, shipmentID, status, reason, actorID)
}

func (f *LogisticsFacade) AssignDeliveryPerson(ctx context.Context, shipmentID, personID string) (*model.Shipment, error) {
	return f.orch.AssignDeliveryPerson(ctx, shipmentID, personID)
}

func (f *LogisticsFacade) AssignVehicle(ctx context.Context, shipmentID, vehicleID string) (*model.Shipment, error) {
	return f.orch.AssignVehicle(ctx, shipmentID, vehicleID)
}

func (f *LogisticsFacade) ReportIncident(ctx context.Context, shipmentID string, in usecase.IncidentInput) (*model.Shipment, error) {
	return f.orch.ReportIncident(ctx, shipmentID, in)
}

func (f *LogisticsFacade) OrderTimeline(ctx context.Context, orderID string) ([]model.TrackingEvent, error) {
	return f.timeline.ByOrder(ctx, orderID)
}

func (f *LogisticsFacade) ShipmentTimeline(ctx context.Context, shipmentID string) ([]model.TrackingEvent, error) {
	return f.timeline.ByShipment(ctx, shipmentID)
}

func (f *LogisticsFacade) ListStalePending(ctx context.Context, limit int) ([]model.Payment, error) {
	return f.payments.ListStalePending(ctx, limit)
}

func (f *LogisticsFacade) ExpirePending(ctx context.Context, paymentID string) error {
	return f.payments.ExpirePending(ctx, paymentID)
}
