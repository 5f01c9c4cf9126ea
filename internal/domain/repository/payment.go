package repository

import (
	"context"
	"time"

	"github.com/parcelo/logistics/internal/domain/model"
)

// PaymentRepository describes persistence operations with payments.
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	GetByID(ctx context.Context, id string) (*model.Payment, error)
	GetApprovedByInvoice(ctx context.Context, invoiceID string) (*model.Payment, error)
	UpdateStatus(ctx context.Context, paymentID string, status model.PaymentStatus) error
	// ListPendingOlderThan returns payments still PENDING whose attempt started
	// before the cutoff, oldest first.
	ListPendingOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]model.Payment, error)
}
