package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/parcelo/logistics/internal/domain/errors"
	"github.com/parcelo/logistics/internal/domain/model"
	"github.com/parcelo/logistics/internal/domain/repository"
	"github.com/parcelo/logistics/internal/pkg/clock"
)

// ShipmentUseCase is the shipment state machine. Transitions are forward-only
// along the canonical delivery path; RETURNED is reachable from any
// non-terminal state.
type ShipmentUseCase struct {
	shipments repository.ShipmentRepository
	clock     clock.Clock
}

// NewShipmentUseCase constructs ShipmentUseCase.
func NewShipmentUseCase(shipments repository.ShipmentRepository, clk clock.Clock) *ShipmentUseCase {
	return &ShipmentUseCase{shipments: shipments, clock: clk}
}

// Materialize creates the fulfillment record for an approved order, copying
// the package and route attributes. Invoked only by the orchestrator.
func (u *ShipmentUseCase) Materialize(ctx context.Context, order *model.Order) (*model.Shipment, error) {
	if order.Status != model.OrderStatusApproved {
		return nil, fmt.Errorf("%w: shipment requires an approved order", domainErrors.ErrInvalidTransition)
	}

	now := u.clock.Now()
	estimate := now.Add(estimateDelivery(order.DistanceKm, order.Priority))
	shipment := &model.Shipment{
		ID:                uuid.NewString(),
		OrderID:           order.ID,
		Origin:            order.Origin,
		Destination:       order.Destination,
		WeightKg:          order.WeightKg,
		DistanceKm:        order.DistanceKm,
		Priority:          order.Priority,
		Status:            model.ShipmentStatusReadyForPickup,
		EstimatedDelivery: &estimate,
		CreatedAt:         now,
		History: []model.StatusChange{{
			Status:  string(model.ShipmentStatusReadyForPickup),
			At:      now,
			ActorID: model.SystemActor,
			Reason:  "shipment created",
		}},
	}
	if err := u.shipments.Create(ctx, shipment); err != nil {
		return nil, err
	}
	return shipment, nil
}

// Get returns the shipment with an independent copy of its history.
func (u *ShipmentUseCase) Get(ctx context.Context, shipmentID string) (*model.Shipment, error) {
	shipment, err := u.shipments.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	shipment.History = model.CloneHistory(shipment.History)
	return shipment, nil
}

// GetByOrder returns the shipment materialized for an order, if any.
func (u *ShipmentUseCase) GetByOrder(ctx context.Context, orderID string) (*model.Shipment, error) {
	shipment, err := u.shipments.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	shipment.History = model.CloneHistory(shipment.History)
	return shipment, nil
}

// AssignDeliveryPerson sets the courier. Reassignment while OUT_FOR_DELIVERY
// is rejected to avoid mid-delivery handoff ambiguity.
func (u *ShipmentUseCase) AssignDeliveryPerson(ctx context.Context, shipmentID, personID string) (*model.Shipment, error) {
	if err := ValidateActor(personID); err != nil {
		return nil, err
	}
	return u.assign(ctx, shipmentID, func(s *model.Shipment) { s.DeliveryPersonID = &personID })
}

// AssignVehicle sets the vehicle under the same rules as courier assignment.
func (u *ShipmentUseCase) AssignVehicle(ctx context.Context, shipmentID, vehicleID string) (*model.Shipment, error) {
	if vehicleID == "" {
		return nil, fmt.Errorf("%w: vehicle id is required", domainErrors.ErrValidation)
	}
	return u.assign(ctx, shipmentID, func(s *model.Shipment) { s.VehicleID = &vehicleID })
}

func (u *ShipmentUseCase) assign(ctx context.Context, shipmentID string, mutate func(*model.Shipment)) (*model.Shipment, error) {
	shipment, err := u.shipments.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	if shipment.Status != model.ShipmentStatusReadyForPickup && shipment.Status != model.ShipmentStatusInTransit {
		return nil, fmt.Errorf("%w: assignment is only allowed before the final delivery leg", domainErrors.ErrInvalidTransition)
	}
	mutate(shipment)
	if err := u.shipments.Update(ctx, shipment); err != nil {
		return nil, err
	}
	return shipment, nil
}

// ChangeStatus moves the shipment forward along the canonical path and
// appends a status-change record. Backward moves are rejected.
func (u *ShipmentUseCase) ChangeStatus(ctx context.Context, shipmentID string, to model.ShipmentStatus, reason, actorID string) (*model.Shipment, error) {
	if err := ValidateActor(actorID); err != nil {
		return nil, err
	}
	shipment, err := u.shipments.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	if !shipment.Status.CanTransition(to) {
		return nil, fmt.Errorf("%w: shipment %s -> %s", domainErrors.ErrInvalidTransition, shipment.Status, to)
	}

	now := u.clock.Now()
	shipment.Status = to
	if to == model.ShipmentStatusDelivered {
		shipment.DeliveredAt = &now
	}
	shipment.History = append(model.CloneHistory(shipment.History), model.StatusChange{
		Status:  string(to),
		At:      now,
		ActorID: actorID,
		Reason:  reason,
	})

	if err := u.shipments.Update(ctx, shipment); err != nil {
		return nil, err
	}
	return shipment, nil
}

// IncidentInput describes a delivery problem reported by a courier.
type IncidentInput struct {
	Type        model.IncidentType
	Description string
	ReporterID  string
}

// ReportIncident attaches an incident and forces the shipment to RETURNED.
// Both effects are applied in a single write: either the shipment ends up
// returned with its incident, or nothing changes.
func (u *ShipmentUseCase) ReportIncident(ctx context.Context, shipmentID string, in IncidentInput) (*model.Shipment, error) {
	if err := ValidateActor(in.ReporterID); err != nil {
		return nil, err
	}
	if !model.KnownIncidentType(in.Type) {
		return nil, fmt.Errorf("%w: unknown incident type %q", domainErrors.ErrValidation, in.Type)
	}
	if len(in.Description) > model.MaxIncidentDescription {
		return nil, fmt.Errorf("%w: incident description exceeds %d characters", domainErrors.ErrValidation, model.MaxIncidentDescription)
	}

	shipment, err := u.shipments.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	if shipment.Status.Terminal() {
		return nil, fmt.Errorf("%w: shipment is already %s", domainErrors.ErrInvalidTransition, shipment.Status)
	}

	now := u.clock.Now()
	shipment.Incident = &model.Incident{
		ID:          uuid.NewString(),
		ShipmentID:  shipment.ID,
		Type:        in.Type,
		Description: in.Description,
		ReporterID:  in.ReporterID,
		At:          now,
	}
	shipment.Status = model.ShipmentStatusReturned
	shipment.History = append(model.CloneHistory(shipment.History), model.StatusChange{
		Status:  string(model.ShipmentStatusReturned),
		At:      now,
		ActorID: in.ReporterID,
		Reason:  string(in.Type),
	})

	if err := u.shipments.Update(ctx, shipment); err != nil {
		return nil, err
	}
	return shipment, nil
}

// estimateDelivery derives a delivery promise from route length and priority.
// Each priority level buys back four hours, floored at six hours.
func estimateDelivery(distanceKm float64, priority int) time.Duration {
	hours := 24 + distanceKm/50
	hours -= float64(priority) * 4
	if hours < 6 {
		hours = 6
	}
	return time.Duration(hours * float64(time.Hour))
}
