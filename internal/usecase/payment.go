package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/parcelo/logistics/internal/domain/errors"
	"github.com/parcelo/logistics/internal/domain/model"
	"github.com/parcelo/logistics/internal/domain/repository"
	"github.com/parcelo/logistics/internal/pkg/clock"
)

// Authorizer performs the payment authorization round-trip. It is the only
// long-running call in the core; everything else is synchronous.
type Authorizer interface {
	Authorize(ctx context.Context, payment *model.Payment) error
}

// PaymentObserver is notified once a payment is approved. The lifecycle
// orchestrator implements it to advance the owning order.
type PaymentObserver interface {
	PaymentApproved(ctx context.Context, orderID, paymentID string)
}

// PaymentUseCase validates and records payment attempts against invoices.
type PaymentUseCase struct {
	payments    repository.PaymentRepository
	invoices    repository.InvoiceRepository
	authorizer  Authorizer
	observer    PaymentObserver
	authTimeout time.Duration
	clock       clock.Clock
	logger      *slog.Logger
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(
	payments repository.PaymentRepository,
	invoices repository.InvoiceRepository,
	authorizer Authorizer,
	observer PaymentObserver,
	authTimeout time.Duration,
	clk clock.Clock,
	logger *slog.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		payments:    payments,
		invoices:    invoices,
		authorizer:  authorizer,
		observer:    observer,
		authTimeout: authTimeout,
		clock:       clk,
		logger:      logger,
	}
}

// ProcessPayment records a payment attempt for the invoice and runs
// authorization within a bounded wait. The attempt is persisted as PENDING
// before the provider call and finalized afterwards, so no per-entity lock is
// held across the round-trip. Declines and timeouts surface as
// ErrPaymentDeclined; the caller may resubmit, the system never retries.
func (u *PaymentUseCase) ProcessPayment(ctx context.Context, invoiceID string, method model.PaymentMethod) (*model.Payment, error) {
	if method.Type == "" || method.Provider == "" {
		return nil, fmt.Errorf("%w: payment method type and provider are required", domainErrors.ErrValidation)
	}

	invoice, err := u.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if existing, err := u.payments.GetApprovedByInvoice(ctx, invoiceID); err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("%w: invoice %s", domainErrors.ErrDuplicatePayment, invoiceID)
	}

	payment := &model.Payment{
		ID:        uuid.NewString(),
		InvoiceID: invoice.ID,
		Method:    method,
		Amount:    invoice.Total,
		Status:    model.PaymentStatusPending,
		At:        u.clock.Now(),
	}
	if err := u.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	authCtx, cancel := context.WithTimeout(ctx, u.authTimeout)
	defer cancel()

	if err := u.authorizer.Authorize(authCtx, payment); err != nil {
		payment.Status = model.PaymentStatusFailed
		if updateErr := u.payments.UpdateStatus(ctx, payment.ID, model.PaymentStatusFailed); updateErr != nil {
			return nil, updateErr
		}
		return payment, fmt.Errorf("%w: %v", domainErrors.ErrPaymentDeclined, err)
	}

	payment.Status = model.PaymentStatusApproved
	if err := u.payments.UpdateStatus(ctx, payment.ID, model.PaymentStatusApproved); err != nil {
		return nil, err
	}

	if u.observer != nil {
		u.observer.PaymentApproved(ctx, invoice.OrderID, payment.ID)
	}

	return payment, nil
}

// Refund moves an approved payment to REFUNDED. Refunds are always explicit;
// nothing in the lifecycle triggers one automatically.
func (u *PaymentUseCase) Refund(ctx context.Context, paymentID string) (*model.Payment, error) {
	payment, err := u.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != model.PaymentStatusApproved {
		return nil, fmt.Errorf("%w: only approved payments can be refunded, payment is %s", domainErrors.ErrInvalidTransition, payment.Status)
	}
	if err := u.payments.UpdateStatus(ctx, paymentID, model.PaymentStatusRefunded); err != nil {
		return nil, err
	}
	payment.Status = model.PaymentStatusRefunded
	return payment, nil
}

// Get returns a payment by id.
func (u *PaymentUseCase) Get(ctx context.Context, paymentID string) (*model.Payment, error) {
	return u.payments.GetByID(ctx, paymentID)
}

// ExpirePending finalizes a payment stuck in PENDING as FAILED. Used by the
// background sweep when an authorization outcome never arrived.
func (u *PaymentUseCase) ExpirePending(ctx context.Context, paymentID string) error {
	payment, err := u.payments.GetByID(ctx, paymentID)
	if err != nil {
		return err
	}
	if payment.Status != model.PaymentStatusPending {
		return nil
	}
	u.logger.Warn("expiring stale pending payment", slog.String("payment_id", paymentID))
	return u.payments.UpdateStatus(ctx, paymentID, model.PaymentStatusFailed)
}

// ListStalePending returns pending payments older than the authorization
// timeout, for the background sweep.
func (u *PaymentUseCase) ListStalePending(ctx context.Context, limit int) ([]model.Payment, error) {
	cutoff := u.clock.Now().Add(-u.authTimeout)
	return u.payments.ListPendingOlderThan(ctx, cutoff, limit)
}
