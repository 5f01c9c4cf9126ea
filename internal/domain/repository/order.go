package repository

import (
	"context"

	"github.com/parcelo/logistics/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
	// Update persists the order state, shipment/payment links and any history
	// records appended since the last read as one atomic write.
	Update(ctx context.Context, order *model.Order) error
}
