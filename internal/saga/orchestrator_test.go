package saga

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	domainErrors "github.com/parcelo/logistics/internal/domain/errors"
	"github.com/parcelo/logistics/internal/domain/model"
	"github.com/parcelo/logistics/internal/pkg/clock"
	"github.com/parcelo/logistics/internal/pricing"
	testhelpers "github.com/parcelo/logistics/internal/test"
	"github.com/parcelo/logistics/internal/usecase"
)

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type sagaEnv struct {
	orch      *Orchestrator
	orders    *testhelpers.OrderRepositoryStub
	shipments *testhelpers.ShipmentRepositoryStub
	notifier  *testhelpers.NotifierStub
	orderUC   *usecase.OrderUseCase
}

func newSagaEnv() sagaEnv {
	orders := testhelpers.NewOrderRepositoryStub()
	shipments := testhelpers.NewShipmentRepositoryStub()
	invoices := testhelpers.NewInvoiceRepositoryStub()
	notifier := &testhelpers.NotifierStub{}
	fixed := clock.Fixed{T: testTime}

	engine := pricing.NewEngine(pricing.Tariff{BaseCost: 5000, PerKmRate: 800, PerKgRate: 1500, PerM3Rate: 200000, PrioritySurcharge: 3000})
	orderUC := usecase.NewOrderUseCase(orders, invoices, engine, fixed)
	shipmentUC := usecase.NewShipmentUseCase(shipments, fixed)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	return sagaEnv{
		orch:      NewOrchestrator(orderUC, shipmentUC, notifier, logger),
		orders:    orders,
		shipments: shipments,
		notifier:  notifier,
		orderUC:   orderUC,
	}
}

func (e sagaEnv) createOrder(t *testing.T) *model.Order {
	t.Helper()
	addr := model.Address{Street: "1 Main St", City: "Boston", Zip: "02101", Country: "US"}
	order, _, err := e.orderUC.Create(context.Background(), usecase.CreateInput{
		UserID:      "user-1",
		Origin:      addr,
		Destination: addr,
		Package:     pricing.Input{WeightKg: 2, WidthCm: 30, HeightCm: 20, LengthCm: 10, DistanceKm: 15, Priority: 2},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}

func (e sagaEnv) paidOrder(t *testing.T) *model.Order {
	t.Helper()
	order := e.createOrder(t)
	e.orch.PaymentApproved(context.Background(), order.ID, "pay-1")
	stored, err := e.orders.GetByID(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("load order: %v", err)
	}
	return stored
}

func TestPaymentApprovedAdvancesOnce(t *testing.T) {
	env := newSagaEnv()
	order := env.createOrder(t)
	ctx := context.Background()

	env.orch.PaymentApproved(ctx, order.ID, "pay-1")
	env.orch.PaymentApproved(ctx, order.ID, "pay-1")

	stored, err := env.orders.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("load order: %v", err)
	}
	if stored.Status != model.OrderStatusPendingApproval {
		t.Fatalf("expected PENDING_APPROVAL, got %s", stored.Status)
	}
	if len(stored.History) != 2 {
		t.Fatalf("duplicate delivery must advance once, history has %d records", len(stored.History))
	}

	sent := env.notifier.Sent()
	if len(sent) != 1 || sent[0].UserID != AdminAudience {
		t.Fatalf("expected one admin notification, got %+v", sent)
	}
}

func TestApproveOrderMaterializesShipment(t *testing.T) {
	env := newSagaEnv()
	order := env.paidOrder(t)
	ctx := context.Background()

	approved, err := env.orch.ApproveOrder(ctx, order.ID, "admin-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if approved.Status != model.OrderStatusApproved {
		t.Fatalf("expected APPROVED, got %s", approved.Status)
	}
	if approved.ShipmentID == nil {
		t.Fatal("expected a linked shipment")
	}

	shipment, err := env.shipments.GetByID(ctx, *approved.ShipmentID)
	if err != nil {
		t.Fatalf("shipment not stored: %v", err)
	}
	if shipment.Status != model.ShipmentStatusReadyForPickup || shipment.OrderID != order.ID {
		t.Fatalf("unexpected shipment %+v", shipment)
	}
}

func TestApproveOrderIdempotentReapply(t *testing.T) {
	env := newSagaEnv()
	order := env.paidOrder(t)
	ctx := context.Background()

	first, err := env.orch.ApproveOrder(ctx, order.ID, "admin-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := env.orch.ApproveOrder(ctx, order.ID, "admin-1")
	if err != nil {
		t.Fatalf("re-apply must succeed: %v", err)
	}
	if *first.ShipmentID != *second.ShipmentID {
		t.Fatal("re-apply must keep the existing shipment")
	}
	if len(env.shipments.Shipments) != 1 {
		t.Fatalf("expected one shipment, got %d", len(env.shipments.Shipments))
	}
	if len(second.History) != len(first.History) {
		t.Fatal("re-apply must not append history")
	}
}

func TestApproveOrderFillsMissingShipment(t *testing.T) {
	env := newSagaEnv()
	order := env.paidOrder(t)
	ctx := context.Background()

	// Simulate a crash after the status write but before shipment creation.
	if _, err := env.orderUC.Approve(ctx, order.ID, "admin-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	approved, err := env.orch.ApproveOrder(ctx, order.ID, "admin-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if approved.ShipmentID == nil {
		t.Fatal("re-apply must fill the missing shipment")
	}
}

func TestRejectOrderNotifiesUser(t *testing.T) {
	env := newSagaEnv()
	order := env.paidOrder(t)
	ctx := context.Background()

	rejected, err := env.orch.RejectOrder(ctx, order.ID, "admin-1", "out of service area")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rejected.Status != model.OrderStatusRejected {
		t.Fatalf("expected REJECTED, got %s", rejected.Status)
	}

	sent := env.notifier.Sent()
	last := sent[len(sent)-1]
	if last.UserID != "user-1" || last.Title != "Order rejected" {
		t.Fatalf("unexpected notification %+v", last)
	}
}

func TestCancelOrderBeforeApproval(t *testing.T) {
	env := newSagaEnv()
	order := env.createOrder(t)

	cancelled, err := env.orch.CancelOrder(context.Background(), order.ID, "user-1", "changed my mind")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cancelled.Status != model.OrderStatusCancelled {
		t.Fatalf("expected CANCELLED, got %s", cancelled.Status)
	}
	if len(env.shipments.Shipments) != 0 {
		t.Fatal("no shipment should exist")
	}
}

func TestCancelOrderCascadesWhileReadyForPickup(t *testing.T) {
	env := newSagaEnv()
	order := env.paidOrder(t)
	ctx := context.Background()

	approved, err := env.orch.ApproveOrder(ctx, order.ID, "admin-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cancelled, err := env.orch.CancelOrder(ctx, order.ID, "user-1", "no longer needed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cancelled.Status != model.OrderStatusCancelled {
		t.Fatalf("expected CANCELLED, got %s", cancelled.Status)
	}

	shipment, err := env.shipments.GetByID(ctx, *approved.ShipmentID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shipment.Status != model.ShipmentStatusReturned {
		t.Fatalf("expected RETURNED shipment, got %s", shipment.Status)
	}
}

func TestCancelOrderRejectedOnceInTransit(t *testing.T) {
	env := newSagaEnv()
	order := env.paidOrder(t)
	ctx := context.Background()

	approved, err := env.orch.ApproveOrder(ctx, order.ID, "admin-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := env.orch.ChangeShipmentStatus(ctx, *approved.ShipmentID, model.ShipmentStatusInTransit, "", "courier-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := env.orch.CancelOrder(ctx, order.ID, "user-1", "too late"); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}

	stored, err := env.orders.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != model.OrderStatusApproved {
		t.Fatalf("order must stay APPROVED, got %s", stored.Status)
	}
}

func TestDeliveredShipmentNotifiesAndKeepsOrderApproved(t *testing.T) {
	env := newSagaEnv()
	order := env.paidOrder(t)
	ctx := context.Background()

	approved, err := env.orch.ApproveOrder(ctx, order.ID, "admin-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	shipmentID := *approved.ShipmentID

	for _, step := range []model.ShipmentStatus{model.ShipmentStatusInTransit, model.ShipmentStatusOutForDelivery, model.ShipmentStatusDelivered} {
		if _, err := env.orch.ChangeShipmentStatus(ctx, shipmentID, step, "", "courier-1"); err != nil {
			t.Fatalf("transition to %s: %v", step, err)
		}
	}

	stored, err := env.orders.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != model.OrderStatusApproved {
		t.Fatalf("delivery must not move the order, got %s", stored.Status)
	}

	sent := env.notifier.Sent()
	last := sent[len(sent)-1]
	if last.Title != "Shipment delivered" || last.UserID != "user-1" {
		t.Fatalf("unexpected notification %+v", last)
	}
}

func TestReportIncidentNotifiesWithType(t *testing.T) {
	env := newSagaEnv()
	order := env.paidOrder(t)
	ctx := context.Background()

	approved, err := env.orch.ApproveOrder(ctx, order.ID, "admin-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	shipment, err := env.orch.ReportIncident(ctx, *approved.ShipmentID, usecase.IncidentInput{
		Type:        model.IncidentLostPackage,
		Description: "package missing at hub",
		ReporterID:  "courier-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shipment.Status != model.ShipmentStatusReturned {
		t.Fatalf("expected RETURNED, got %s", shipment.Status)
	}

	sent := env.notifier.Sent()
	last := sent[len(sent)-1]
	if last.Title != "Shipment returned" || last.Severity != "warning" {
		t.Fatalf("unexpected notification %+v", last)
	}
}
