package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	domainErrors "github.com/parcelo/logistics/internal/domain/errors"
	"github.com/parcelo/logistics/internal/domain/model"
	"github.com/parcelo/logistics/internal/domain/repository"
	"github.com/parcelo/logistics/internal/pkg/clock"
	"github.com/parcelo/logistics/internal/pricing"
)

// OrderUseCase is the order state machine. Every mutation goes through a
// guarded transition that appends a status-change record atomically with the
// state write; on any error the order is left untouched.
type OrderUseCase struct {
	orders   repository.OrderRepository
	invoices repository.InvoiceRepository
	pricer   *pricing.Engine
	clock    clock.Clock
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, invoices repository.InvoiceRepository, pricer *pricing.Engine, clk clock.Clock) *OrderUseCase {
	return &OrderUseCase{orders: orders, invoices: invoices, pricer: pricer, clock: clk}
}

// CreateInput carries everything needed to price and open a new order.
type CreateInput struct {
	UserID      string
	Origin      model.Address
	Destination model.Address
	Package     pricing.Input
}

// Create prices the request, persists the invoice and opens the order in
// AWAITING_PAYMENT.
func (u *OrderUseCase) Create(ctx context.Context, in CreateInput) (*model.Order, *model.Invoice, error) {
	if err := ValidateActor(in.UserID); err != nil {
		return nil, nil, err
	}
	if err := ValidateAddress("origin", in.Origin); err != nil {
		return nil, nil, err
	}
	if err := ValidateAddress("destination", in.Destination); err != nil {
		return nil, nil, err
	}

	breakdown, err := u.pricer.Price(in.Package)
	if err != nil {
		return nil, nil, err
	}
	if breakdown.Total <= 0 {
		return nil, nil, fmt.Errorf("%w: invoice total must be positive", domainErrors.ErrValidation)
	}

	now := u.clock.Now()
	orderID := uuid.NewString()

	invoice := &model.Invoice{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		Items:     breakdown.LineItems(),
		Total:     breakdown.Total,
		CreatedAt: now,
	}
	if err := u.invoices.Create(ctx, invoice); err != nil {
		return nil, nil, err
	}

	order := &model.Order{
		ID:          orderID,
		UserID:      in.UserID,
		Origin:      in.Origin,
		Destination: in.Destination,
		WeightKg:    in.Package.WeightKg,
		DistanceKm:  in.Package.DistanceKm,
		Priority:    in.Package.Priority,
		Status:      model.OrderStatusAwaitingPayment,
		InvoiceID:   invoice.ID,
		CreatedAt:   now,
		History: []model.StatusChange{{
			Status:  string(model.OrderStatusAwaitingPayment),
			At:      now,
			ActorID: in.UserID,
			Reason:  "order created",
		}},
	}
	if err := u.orders.Create(ctx, order); err != nil {
		return nil, nil, err
	}

	return order, invoice, nil
}

// Get returns the order with an independent copy of its history.
func (u *OrderUseCase) Get(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.History = model.CloneHistory(order.History)
	return order, nil
}

// ListByUser returns the user's orders.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// RecordPaymentConfirmed advances AWAITING_PAYMENT -> PENDING_APPROVAL and
// links the approved payment. Applied by the orchestrator, actor = system.
func (u *OrderUseCase) RecordPaymentConfirmed(ctx context.Context, orderID, paymentID string) (*model.Order, error) {
	return u.transition(ctx, orderID, model.OrderStatusPendingApproval, model.SystemActor, "payment confirmed", func(o *model.Order) {
		o.PaymentID = &paymentID
	})
}

// Approve advances PENDING_APPROVAL -> APPROVED.
func (u *OrderUseCase) Approve(ctx context.Context, orderID, adminID string) (*model.Order, error) {
	if err := ValidateActor(adminID); err != nil {
		return nil, err
	}
	return u.transition(ctx, orderID, model.OrderStatusApproved, adminID, "", nil)
}

// Reject advances PENDING_APPROVAL -> REJECTED. The reason is mandatory.
func (u *OrderUseCase) Reject(ctx context.Context, orderID, adminID, reason string) (*model.Order, error) {
	if err := ValidateActor(adminID); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", domainErrors.ErrValidation)
	}
	return u.transition(ctx, orderID, model.OrderStatusRejected, adminID, reason, nil)
}

// Cancel terminates an order that has not been approved yet. Cancelling an
// approved order goes through the orchestrator, which decides whether the
// materialized shipment still allows it.
func (u *OrderUseCase) Cancel(ctx context.Context, orderID, actorID, reason string) (*model.Order, error) {
	if err := ValidateActor(actorID); err != nil {
		return nil, err
	}
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == model.OrderStatusApproved {
		return nil, fmt.Errorf("%w: approved order cannot be cancelled directly", domainErrors.ErrInvalidTransition)
	}
	return u.transition(ctx, orderID, model.OrderStatusCancelled, actorID, reason, nil)
}

// CascadeCancel terminates an approved order after its shipment has been
// returned. Only the orchestrator calls this, as the second half of the
// cancellation cascade.
func (u *OrderUseCase) CascadeCancel(ctx context.Context, orderID, actorID, reason string) (*model.Order, error) {
	return u.transition(ctx, orderID, model.OrderStatusCancelled, actorID, reason, nil)
}

// AttachShipment stores the materialized shipment id on the approved order.
// This is the only mutation allowed on an otherwise immutable link field.
func (u *OrderUseCase) AttachShipment(ctx context.Context, orderID, shipmentID string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != model.OrderStatusApproved {
		return nil, fmt.Errorf("%w: shipment can only be attached to an approved order", domainErrors.ErrInvalidTransition)
	}
	if order.ShipmentID != nil {
		if *order.ShipmentID == shipmentID {
			return order, nil
		}
		return nil, fmt.Errorf("%w: order already has a shipment", domainErrors.ErrInvalidTransition)
	}
	order.ShipmentID = &shipmentID
	if err := u.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (u *OrderUseCase) transition(ctx context.Context, orderID string, to model.OrderStatus, actorID, reason string, mutate func(*model.Order)) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransition(to) {
		return nil, fmt.Errorf("%w: order %s -> %s", domainErrors.ErrInvalidTransition, order.Status, to)
	}

	order.Status = to
	if mutate != nil {
		mutate(order)
	}
	order.History = append(model.CloneHistory(order.History), model.StatusChange{
		Status:  string(to),
		At:      u.clock.Now(),
		ActorID: actorID,
		Reason:  reason,
	})

	if err := u.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
