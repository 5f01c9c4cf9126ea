// Package handlertest provides facade stubs for handler and router tests.
// It lives outside internal/test so the usecase package can use the shared
// repository stubs without an import cycle.
package handlertest

import (
	"context"

	"github.com/parcelo/logistics/internal/domain/model"
	"github.com/parcelo/logistics/internal/usecase"
)

// OrderFacadeStub backs order handlers in tests.
type OrderFacadeStub struct {
	CreateFn  func(context.Context, usecase.CreateInput) (*model.Order, *model.Invoice, error)
	OrderFn   func(context.Context, string) (*model.Order, error)
	OrdersFn  func(context.Context, string) ([]model.Order, error)
	ApproveFn func(context.Context, string, string) (*model.Order, error)
	RejectFn  func(context.Context, string, string, string) (*model.Order, error)
	CancelFn  func(context.Context, string, string, string) (*model.Order, error)
}

func (s OrderFacadeStub) CreateOrder(ctx context.Context, in usecase.CreateInput) (*model.Order, *model.Invoice, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, in)
	}
	return &model.Order{ID: "order-1", Status: model.OrderStatusAwaitingPayment}, &model.Invoice{ID: "inv-1", OrderID: "order-1"}, nil
}

func (s OrderFacadeStub) Order(ctx context.Context, orderID string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusAwaitingPayment}, nil
}

func (s OrderFacadeStub) Orders(ctx context.Context, userID string) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{ID: "order-1", UserID: userID, Status: model.OrderStatusAwaitingPayment}}, nil
}

func (s OrderFacadeStub) ApproveOrder(ctx context.Context, orderID, adminID string) (*model.Order, error) {
	if s.ApproveFn != nil {
		return s.ApproveFn(ctx, orderID, adminID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusApproved}, nil
}

func (s OrderFacadeStub) RejectOrder(ctx context.Context, orderID, adminID, reason string) (*model.Order, error) {
	if s.RejectFn != nil {
		return s.RejectFn(ctx, orderID, adminID, reason)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusRejected}, nil
}

func (s OrderFacadeStub) CancelOrder(ctx context.Context, orderID, actorID, reason string) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, orderID, actorID, reason)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusCancelled}, nil
}

// PaymentFacadeStub backs payment handlers in tests.
type PaymentFacadeStub struct {
	PayFn    func(context.Context, string, model.PaymentMethod) (*model.Payment, error)
	RefundFn func(context.Context, string) (*model.Payment, error)
}

func (s PaymentFacadeStub) PayInvoice(ctx context.Context, invoiceID string, method model.PaymentMethod) (*model.Payment, error) {
	if s.PayFn != nil {
		return s.PayFn(ctx, invoiceID, method)
	}
	return &model.Payment{ID: "pay-1", InvoiceID: invoiceID, Status: model.PaymentStatusApproved}, nil
}

func (s PaymentFacadeStub) RefundPayment(ctx context.Context, paymentID string) (*model.Payment, error) {
	if s.RefundFn != nil {
		return s.RefundFn(ctx, paymentID)
	}
	return &model.Payment{ID: paymentID, Status: model.PaymentStatusRefunded}, nil
}

// ShipmentFacadeStub backs shipment handlers in tests.
type ShipmentFacadeStub struct {
	ShipmentFn       func(context.Context, string) (*model.Shipment, error)
	ChangeStatusFn   func(context.Context, string, model.ShipmentStatus, string, string) (*model.Shipment, error)
	AssignCourierFn  func(context.Context, string, string) (*model.Shipment, error)
	AssignVehicleFn  func(context.Context, string, string) (*model.Shipment, error)
	ReportIncidentFn func(context.Context, string, usecase.IncidentInput) (*model.Shipment, error)
}

func (s ShipmentFacadeStub) Shipment(ctx context.Context, shipmentID string) (*model.Shipment, error) {
	if s.ShipmentFn != nil {
		return s.ShipmentFn(ctx, shipmentID)
	}
	return &model.Shipment{ID: shipmentID, Status: model.ShipmentStatusReadyForPickup}, nil
}

func (s ShipmentFacadeStub) ChangeShipmentStatus(ctx context.Context, shipmentID string, status model.ShipmentStatus, reason, actorID string) (*model.Shipment, error) {
	if s.ChangeStatusFn != nil {
		return s.ChangeStatusFn(ctx, shipmentID, status, reason, actorID)
	}
	return &model.Shipment{ID: shipmentID, Status: status}, nil
}

func (s ShipmentFacadeStub) AssignDeliveryPerson(ctx context.Context, shipmentID, personID string) (*model.Shipment, error) {
	if s.AssignCourierFn != nil {
		return s.AssignCourierFn(ctx, shipmentID, personID)
	}
	return &model.Shipment{ID: shipmentID, DeliveryPersonID: &personID}, nil
}

func (s ShipmentFacadeStub) AssignVehicle(ctx context.Context, shipmentID, vehicleID string) (*model.Shipment, error) {
	if s.AssignVehicleFn != nil {
		return s.AssignVehicleFn(ctx, shipmentID, vehicleID)
	}
	return &model.Shipment{ID: shipmentID, VehicleID: &vehicleID}, nil
}

func (s ShipmentFacadeStub) ReportIncident(ctx context.Context, shipmentID string, in usecase.IncidentInput) (*model.Shipment, error) {
	if s.ReportIncidentFn != nil {
		return s.ReportIncidentFn(ctx, shipmentID, in)
	}
	return &model.Shipment{ID: shipmentID, Status: model.ShipmentStatusReturned}, nil
}

// TrackingFacadeStub backs timeline handlers in tests.
type TrackingFacadeStub struct {
	OrderTimelineFn    func(context.Context, string) ([]model.TrackingEvent, error)
	ShipmentTimelineFn func(context.Context, string) ([]model.TrackingEvent, error)
}

func (s TrackingFacadeStub) OrderTimeline(ctx context.Context, orderID string) ([]model.TrackingEvent, error) {
	if s.OrderTimelineFn != nil {
		return s.OrderTimelineFn(ctx, orderID)
	}
	return nil, nil
}

func (s TrackingFacadeStub) ShipmentTimeline(ctx context.Context, shipmentID string) ([]model.TrackingEvent, error) {
	if s.ShipmentTimelineFn != nil {
		return s.ShipmentTimelineFn(ctx, shipmentID)
	}
	return nil, nil
}

// PingerStub backs the health endpoint in tests.
type PingerStub struct {
	Err error
}

func (s PingerStub) HealthCheck(context.Context) error { return s.Err }

// LogisticsFacadeStub aggregates the handler-facing stubs for router tests.
type LogisticsFacadeStub struct {
	OrderFacadeStub
	PaymentFacadeStub
	ShipmentFacadeStub
	TrackingFacadeStub
}
