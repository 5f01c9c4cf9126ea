package usecase

import (
	"context"
	"errors"
	"sort"

	domainErrors "github.com/parcelo/logistics/internal/domain/errors"
	"github.com/parcelo/logistics/internal/domain/model"
	"github.com/parcelo/logistics/internal/domain/repository"
)

// TimelineUseCase merges the order and shipment status logs into one
// display-ready tracking sequence. It only reads.
type TimelineUseCase struct {
	orders    repository.OrderRepository
	shipments repository.ShipmentRepository
}

// NewTimelineUseCase constructs TimelineUseCase.
func NewTimelineUseCase(orders repository.OrderRepository, shipments repository.ShipmentRepository) *TimelineUseCase {
	return &TimelineUseCase{orders: orders, shipments: shipments}
}

// ByOrder returns the unified timeline for an order, including its shipment
// log once one is materialized.
func (u *TimelineUseCase) ByOrder(ctx context.Context, orderID string) ([]model.TrackingEvent, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	var shipmentHistory []model.StatusChange
	if order.ShipmentID != nil {
		shipment, err := u.shipments.GetByID(ctx, *order.ShipmentID)
		if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
			return nil, err
		}
		if shipment != nil {
			shipmentHistory = shipment.History
		}
	}

	return MergeTimeline(model.CloneHistory(order.History), model.CloneHistory(shipmentHistory)), nil
}

// ByShipment returns the unified timeline resolved from the shipment side.
func (u *TimelineUseCase) ByShipment(ctx context.Context, shipmentID string) ([]model.TrackingEvent, error) {
	shipment, err := u.shipments.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	order, err := u.orders.GetByID(ctx, shipment.OrderID)
	if err != nil {
		return nil, err
	}
	return MergeTimeline(model.CloneHistory(order.History), model.CloneHistory(shipment.History)), nil
}

// MergeTimeline is a pure function over the two status logs. Real events are
// sorted by timestamp, ties broken by origin (order before shipment) and then
// by canonical sequence index, so the result is a total order. Canonical
// steps not yet reached are appended as incomplete placeholders with no
// timestamp, unless the journey already ended in a terminal failure.
// Unchanged inputs always produce an identical sequence.
func MergeTimeline(orderHistory, shipmentHistory []model.StatusChange) []model.TrackingEvent {
	events := make([]model.TrackingEvent, 0, len(orderHistory)+len(shipmentHistory))
	events = append(events, toEvents(orderHistory, model.OriginOrder)...)
	events = append(events, toEvents(shipmentHistory, model.OriginShipment)...)

	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.At.Equal(*b.At) {
			return a.At.Before(*b.At)
		}
		if a.Origin != b.Origin {
			return a.Origin == model.OriginOrder
		}
		return model.LookupStep(a.Key).Seq < model.LookupStep(b.Key).Seq
	})

	return append(events, placeholders(orderHistory, shipmentHistory)...)
}

func toEvents(history []model.StatusChange, origin model.EventOrigin) []model.TrackingEvent {
	events := make([]model.TrackingEvent, 0, len(history))
	for _, change := range history {
		at := change.At
		info := model.LookupStep(change.Status)
		events = append(events, model.TrackingEvent{
			Key:         change.Status,
			Label:       info.Label,
			Color:       info.Color,
			Completed:   true,
			At:          &at,
			Origin:      origin,
			Description: change.Reason,
		})
	}
	return events
}

// placeholders synthesizes the remaining expected journey in canonical order.
// A rejected or cancelled order, or a returned shipment, has no future steps.
func placeholders(orderHistory, shipmentHistory []model.StatusChange) []model.TrackingEvent {
	if containsStatus(orderHistory, string(model.OrderStatusRejected)) ||
		containsStatus(orderHistory, string(model.OrderStatusCancelled)) ||
		containsStatus(shipmentHistory, string(model.ShipmentStatusReturned)) {
		return nil
	}

	var out []model.TrackingEvent

	if len(shipmentHistory) == 0 {
		orderSteps := []model.OrderStatus{model.OrderStatusPendingApproval, model.OrderStatusApproved}
		for _, step := range orderSteps {
			if !containsStatus(orderHistory, string(step)) {
				out = append(out, placeholder(string(step), model.OriginOrder))
			}
		}
	}

	maxRank := -1
	for _, change := range shipmentHistory {
		if rank := model.ShipmentStatus(change.Status).Rank(); rank > maxRank {
			maxRank = rank
		}
	}
	for _, step := range model.ShipmentJourney {
		if step.Rank() > maxRank {
			out = append(out, placeholder(string(step), model.OriginShipment))
		}
	}

	return out
}

func placeholder(key string, origin model.EventOrigin) model.TrackingEvent {
	info := model.LookupStep(key)
	return model.TrackingEvent{
		Key:       key,
		Label:     info.Label,
		Color:     info.Color,
		Completed: false,
		Origin:    origin,
	}
}

func containsStatus(history []model.StatusChange, status string) bool {
	for _, change := range history {
		if change.Status == status {
			return true
		}
	}
	return false
}
