package repository

import (
	"context"

	"github.com/parcelo/logistics/internal/domain/model"
)

// InvoiceRepository describes persistence operations with invoices.
// Invoices are write-once.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	GetByID(ctx context.Context, id string) (*model.Invoice, error)
}
