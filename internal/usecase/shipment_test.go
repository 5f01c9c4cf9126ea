package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/parcelo/logistics/internal/domain/errors"
	"github.com/parcelo/logistics/internal/domain/model"
	"github.com/parcelo/logistics/internal/pkg/clock"
	testhelpers "github.com/parcelo/logistics/internal/test"
)

func newShipmentEnv() (*ShipmentUseCase, *testhelpers.ShipmentRepositoryStub) {
	shipments := testhelpers.NewShipmentRepositoryStub()
	return NewShipmentUseCase(shipments, clock.Fixed{T: testTime}), shipments
}

func approvedOrder() *model.Order {
	return &model.Order{
		ID:          "order-1",
		UserID:      "user-1",
		Origin:      testAddress("New York"),
		Destination: testAddress("Boston"),
		WeightKg:    2,
		DistanceKm:  350,
		Priority:    1,
		Status:      model.OrderStatusApproved,
	}
}

func materializeTestShipment(t *testing.T, uc *ShipmentUseCase) *model.Shipment {
	t.Helper()
	shipment, err := uc.Materialize(context.Background(), approvedOrder())
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	return shipment
}

func TestMaterializeCopiesOrderAttributes(t *testing.T) {
	uc, _ := newShipmentEnv()
	shipment := materializeTestShipment(t, uc)

	if shipment.Status != model.ShipmentStatusReadyForPickup {
		t.Fatalf("expected READY_FOR_PICKUP, got %s", shipment.Status)
	}
	if shipment.OrderID != "order-1" || shipment.WeightKg != 2 || shipment.DistanceKm != 350 {
		t.Fatalf("order attributes not copied: %+v", shipment)
	}
	if shipment.EstimatedDelivery == nil || !shipment.EstimatedDelivery.After(testTime) {
		t.Fatal("expected a future delivery estimate")
	}
	if len(shipment.History) != 1 {
		t.Fatalf("expected one initial history record, got %d", len(shipment.History))
	}
}

func TestMaterializeRequiresApprovedOrder(t *testing.T) {
	uc, _ := newShipmentEnv()
	order := approvedOrder()
	order.Status = model.OrderStatusPendingApproval

	if _, err := uc.Materialize(context.Background(), order); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestShipmentForwardProgression(t *testing.T) {
	uc, _ := newShipmentEnv()
	shipment := materializeTestShipment(t, uc)
	ctx := context.Background()

	steps := []model.ShipmentStatus{
		model.ShipmentStatusInTransit,
		model.ShipmentStatusOutForDelivery,
		model.ShipmentStatusDelivered,
	}
	for _, step := range steps {
		updated, err := uc.ChangeStatus(ctx, shipment.ID, step, "", "courier-1")
		if err != nil {
			t.Fatalf("transition to %s: %v", step, err)
		}
		if updated.Status != step {
			t.Fatalf("expected %s, got %s", step, updated.Status)
		}
	}

	final, err := uc.Get(ctx, shipment.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if final.DeliveredAt == nil {
		t.Fatal("expected delivered timestamp")
	}

	previous := model.ShipmentStatus(final.History[0].Status)
	for _, change := range final.History[1:] {
		current := model.ShipmentStatus(change.Status)
		if current.Rank() <= previous.Rank() {
			t.Fatalf("history is not strictly forward: %s after %s", current, previous)
		}
		previous = current
	}
}

func TestShipmentBackwardMoveRejected(t *testing.T) {
	uc, _ := newShipmentEnv()
	shipment := materializeTestShipment(t, uc)
	ctx := context.Background()

	if _, err := uc.ChangeStatus(ctx, shipment.ID, model.ShipmentStatusOutForDelivery, "", "courier-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.ChangeStatus(ctx, shipment.ID, model.ShipmentStatusInTransit, "", "courier-1"); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestShipmentNoTransitionOutOfDelivered(t *testing.T) {
	uc, _ := newShipmentEnv()
	shipment := materializeTestShipment(t, uc)
	ctx := context.Background()

	if _, err := uc.ChangeStatus(ctx, shipment.ID, model.ShipmentStatusDelivered, "", "courier-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.ChangeStatus(ctx, shipment.ID, model.ShipmentStatusReturned, "", "courier-1"); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestAssignmentAllowedBeforeFinalLeg(t *testing.T) {
	uc, _ := newShipmentEnv()
	shipment := materializeTestShipment(t, uc)
	ctx := context.Background()

	updated, err := uc.AssignDeliveryPerson(ctx, shipment.ID, "courier-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.DeliveryPersonID == nil || *updated.DeliveryPersonID != "courier-1" {
		t.Fatal("expected courier to be assigned")
	}

	if _, err := uc.AssignVehicle(ctx, shipment.ID, "van-7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := uc.ChangeStatus(ctx, shipment.ID, model.ShipmentStatusInTransit, "", "courier-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.AssignDeliveryPerson(ctx, shipment.ID, "courier-2"); err != nil {
		t.Fatalf("reassignment while in transit should be allowed: %v", err)
	}

	if _, err := uc.ChangeStatus(ctx, shipment.ID, model.ShipmentStatusOutForDelivery, "", "courier-2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.AssignDeliveryPerson(ctx, shipment.ID, "courier-3"); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition for mid-delivery handoff, got %v", err)
	}
}

func TestReportIncidentForcesReturned(t *testing.T) {
	uc, _ := newShipmentEnv()
	shipment := materializeTestShipment(t, uc)
	ctx := context.Background()

	if _, err := uc.ChangeStatus(ctx, shipment.ID, model.ShipmentStatusInTransit, "", "courier-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := uc.ReportIncident(ctx, shipment.ID, IncidentInput{
		Type:        model.IncidentDamagedPackage,
		Description: "crate crushed during loading",
		ReporterID:  "courier-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != model.ShipmentStatusReturned {
		t.Fatalf("expected RETURNED, got %s", updated.Status)
	}
	if updated.Incident == nil || updated.Incident.Type != model.IncidentDamagedPackage {
		t.Fatal("expected exactly one attached incident")
	}

	// Second report hits a terminal shipment.
	_, err = uc.ReportIncident(ctx, shipment.ID, IncidentInput{
		Type:       model.IncidentDelay,
		ReporterID: "courier-1",
	})
	if !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestReportIncidentValidation(t *testing.T) {
	uc, shipments := newShipmentEnv()
	shipment := materializeTestShipment(t, uc)
	ctx := context.Background()

	cases := []struct {
		name string
		in   IncidentInput
	}{
		{"unknown type", IncidentInput{Type: "FLOOD", ReporterID: "courier-1"}},
		{"missing reporter", IncidentInput{Type: model.IncidentDelay}},
		{"oversized description", IncidentInput{Type: model.IncidentDelay, ReporterID: "courier-1", Description: string(make([]byte, model.MaxIncidentDescription+1))}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.ReportIncident(ctx, shipment.ID, tc.in); !errors.Is(err, domainErrors.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	stored, err := shipments.GetByID(ctx, shipment.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Incident != nil || stored.Status != model.ShipmentStatusReadyForPickup {
		t.Fatal("failed validation must leave the shipment untouched")
	}
}
