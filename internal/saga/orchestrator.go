package saga

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainErrors "github.com/parcelo/logistics/internal/domain/errors"
	"github.com/parcelo/logistics/internal/domain/model"
	"github.com/parcelo/logistics/internal/pkg/lockset"
	"github.com/parcelo/logistics/internal/usecase"
)

// Notifier is the fire-and-forget notification sink. Implementations must
// never fail a lifecycle transition: delivery problems are logged and
// swallowed on their side.
type Notifier interface {
	Notify(ctx context.Context, userID, title, message, severity string)
}

// AdminAudience addresses notifications at the administrator group rather
// than a single user.
const AdminAudience = "admins"

// Orchestrator coordinates the order/payment/shipment lifecycle. Handlers are
// guarded and idempotent: every one checks the current state under a
// per-entity lock before applying a transition, so duplicate event delivery
// and crash re-application are harmless.
type Orchestrator struct {
	orders    *usecase.OrderUseCase
	shipments *usecase.ShipmentUseCase
	locks     *lockset.LockSet
	notifier  Notifier
	logger    *slog.Logger
}

// NewOrchestrator constructs the lifecycle orchestrator.
func NewOrchestrator(orders *usecase.OrderUseCase, shipments *usecase.ShipmentUseCase, notifier Notifier, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		orders:    orders,
		shipments: shipments,
		locks:     lockset.New(),
		notifier:  notifier,
		logger:    logger,
	}
}

// PaymentApproved reacts to a successful payment authorization. Delivered
// twice, it advances the order exactly once.
func (o *Orchestrator) PaymentApproved(ctx context.Context, orderID, paymentID string) {
	o.locks.Lock(orderKey(orderID))
	defer o.locks.Unlock(orderKey(orderID))

	order, err := o.orders.Get(ctx, orderID)
	if err != nil {
		o.logger.Error("payment approved: load order failed",
			slog.String("order_id", orderID), slog.String("error", err.Error()))
		return
	}
	if order.Status != model.OrderStatusAwaitingPayment {
		o.logger.Info("payment approved: order already advanced",
			slog.String("order_id", orderID), slog.String("status", string(order.Status)))
		return
	}

	if _, err := o.orders.RecordPaymentConfirmed(ctx, orderID, paymentID); err != nil {
		o.logger.Error("payment approved: transition failed",
			slog.String("order_id", orderID), slog.String("error", err.Error()))
		return
	}

	o.notifier.Notify(ctx, AdminAudience, "Order pending approval",
		fmt.Sprintf("Order %s is paid and awaits review", orderID), "info")
}

// ApproveOrder advances the order to APPROVED and materializes its shipment.
// Re-applying after a crash between the two writes only fills in the missing
// shipment.
func (o *Orchestrator) ApproveOrder(ctx context.Context, orderID, adminID string) (*model.Order, error) {
	o.locks.Lock(orderKey(orderID))
	defer o.locks.Unlock(orderKey(orderID))

	order, err := o.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status != model.OrderStatusApproved {
		if order, err = o.orders.Approve(ctx, orderID, adminID); err != nil {
			return nil, err
		}
	}

	if order.ShipmentID == nil {
		shipment, err := o.shipments.Materialize(ctx, order)
		if err != nil {
			return nil, err
		}
		if order, err = o.orders.AttachShipment(ctx, orderID, shipment.ID); err != nil {
			return nil, err
		}
		o.notifier.Notify(ctx, order.UserID, "Order approved",
			fmt.Sprintf("Order %s is approved, shipment %s is ready for pickup", orderID, shipment.ID), "info")
	}

	return order, nil
}

// RejectOrder terminates a pending order with a mandatory reason.
func (o *Orchestrator) RejectOrder(ctx context.Context, orderID, adminID, reason string) (*model.Order, error) {
	o.locks.Lock(orderKey(orderID))
	defer o.locks.Unlock(orderKey(orderID))

	order, err := o.orders.Reject(ctx, orderID, adminID, reason)
	if err != nil {
		return nil, err
	}
	o.notifier.Notify(ctx, order.UserID, "Order rejected", reason, "warning")
	return order, nil
}

// CancelOrder terminates an order. Before approval it cancels directly. After
// approval the cancellation cascades only while the shipment is still waiting
// for pickup: the shipment is returned first, then the order is cancelled.
func (o *Orchestrator) CancelOrder(ctx context.Context, orderID, actorID, reason string) (*model.Order, error) {
	o.locks.Lock(orderKey(orderID))
	defer o.locks.Unlock(orderKey(orderID))

	order, err := o.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status != model.OrderStatusApproved {
		return o.orders.Cancel(ctx, orderID, actorID, reason)
	}

	if order.ShipmentID != nil {
		shipment, err := o.shipments.Get(ctx, *order.ShipmentID)
		if err != nil {
			return nil, err
		}
		if shipment.Status != model.ShipmentStatusReadyForPickup {
			return nil, fmt.Errorf("%w: shipment is %s, order can no longer be cancelled",
				domainErrors.ErrInvalidTransition, shipment.Status)
		}

		o.locks.Lock(shipmentKey(shipment.ID))
		_, err = o.shipments.ChangeStatus(ctx, shipment.ID, model.ShipmentStatusReturned, "order cancelled", actorID)
		o.locks.Unlock(shipmentKey(shipment.ID))
		if err != nil && !errors.Is(err, domainErrors.ErrInvalidTransition) {
			return nil, err
		}
	}

	order, err = o.orders.CascadeCancel(ctx, orderID, actorID, reason)
	if err != nil {
		return nil, err
	}
	o.notifier.Notify(ctx, order.UserID, "Order cancelled", reason, "warning")
	return order, nil
}

// ChangeShipmentStatus applies a delivery progress update and runs the
// closing hook when the shipment reaches a terminal state.
func (o *Orchestrator) ChangeShipmentStatus(ctx context.Context, shipmentID string, status model.ShipmentStatus, reason, actorID string) (*model.Shipment, error) {
	o.locks.Lock(shipmentKey(shipmentID))
	defer o.locks.Unlock(shipmentKey(shipmentID))

	shipment, err := o.shipments.ChangeStatus(ctx, shipmentID, status, reason, actorID)
	if err != nil {
		return nil, err
	}
	if shipment.Status.Terminal() {
		o.shipmentClosed(ctx, shipment)
	}
	return shipment, nil
}

// AssignDeliveryPerson assigns a courier under the shipment lock.
func (o *Orchestrator) AssignDeliveryPerson(ctx context.Context, shipmentID, personID string) (*model.Shipment, error) {
	o.locks.Lock(shipmentKey(shipmentID))
	defer o.locks.Unlock(shipmentKey(shipmentID))

	return o.shipments.AssignDeliveryPerson(ctx, shipmentID, personID)
}

// AssignVehicle assigns a vehicle under the shipment lock.
func (o *Orchestrator) AssignVehicle(ctx context.Context, shipmentID, vehicleID string) (*model.Shipment, error) {
	o.locks.Lock(shipmentKey(shipmentID))
	defer o.locks.Unlock(shipmentKey(shipmentID))

	return o.shipments.AssignVehicle(ctx, shipmentID, vehicleID)
}

// ReportIncident attaches the incident, forces RETURNED and runs the closing
// hook.
func (o *Orchestrator) ReportIncident(ctx context.Context, shipmentID string, in usecase.IncidentInput) (*model.Shipment, error) {
	o.locks.Lock(shipmentKey(shipmentID))
	defer o.locks.Unlock(shipmentKey(shipmentID))

	shipment, err := o.shipments.ReportIncident(ctx, shipmentID, in)
	if err != nil {
		return nil, err
	}
	o.shipmentClosed(ctx, shipment)
	return shipment, nil
}

// shipmentClosed is the terminal-state hook. The order intentionally stays
// APPROVED: the shipment's terminal status is the source of truth for
// completion.
func (o *Orchestrator) shipmentClosed(ctx context.Context, shipment *model.Shipment) {
	order, err := o.orders.Get(ctx, shipment.OrderID)
	if err != nil {
		o.logger.Error("shipment closed: load order failed",
			slog.String("shipment_id", shipment.ID), slog.String("error", err.Error()))
		return
	}

	switch shipment.Status {
	case model.ShipmentStatusDelivered:
		o.notifier.Notify(ctx, order.UserID, "Shipment delivered",
			fmt.Sprintf("Shipment %s was delivered", shipment.ID), "info")
	case model.ShipmentStatusReturned:
		message := fmt.Sprintf("Shipment %s was returned", shipment.ID)
		if shipment.Incident != nil {
			message = fmt.Sprintf("Shipment %s was returned: %s", shipment.ID, shipment.Incident.Type)
		}
		o.notifier.Notify(ctx, order.UserID, "Shipment returned", message, "warning")
	}
}

func orderKey(id string) string    { return "order:" + id }
func shipmentKey(id string) string { return "shipment:" + id }
