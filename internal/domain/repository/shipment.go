package repository

import (
	"context"

	"github.com/parcelo/logistics/internal/domain/model"
)

// ShipmentRepository describes persistence operations with shipments.
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *model.Shipment) error
	GetByID(ctx context.Context, id string) (*model.Shipment, error)
	GetByOrderID(ctx context.Context, orderID string) (*model.Shipment, error)
	Update(ctx context.Context, shipment *model.Shipment) error
}
