package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	domainErrors "github.com/parcelo/logistics/internal/domain/errors"
	"github.com/parcelo/logistics/internal/domain/model"
	"github.com/parcelo/logistics/internal/pkg/clock"
	testhelpers "github.com/parcelo/logistics/internal/test"
)

func testMethod() model.PaymentMethod {
	return model.PaymentMethod{Type: "card", Provider: "acme-pay", MaskedRef: "****4242"}
}

type paymentEnv struct {
	uc       *PaymentUseCase
	payments *testhelpers.PaymentRepositoryStub
	invoices *testhelpers.InvoiceRepositoryStub
	auth     *testhelpers.AuthorizerStub
	observer *testhelpers.ObserverStub
}

func newPaymentEnv() paymentEnv {
	payments := testhelpers.NewPaymentRepositoryStub()
	invoices := testhelpers.NewInvoiceRepositoryStub()
	auth := &testhelpers.AuthorizerStub{}
	observer := &testhelpers.ObserverStub{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	uc := NewPaymentUseCase(payments, invoices, auth, observer, 5*time.Second, clock.Fixed{T: testTime}, logger)
	return paymentEnv{uc: uc, payments: payments, invoices: invoices, auth: auth, observer: observer}
}

func (e paymentEnv) storeInvoice(t *testing.T, total int64) *model.Invoice {
	t.Helper()
	invoice := &model.Invoice{ID: "inv-1", OrderID: "order-1", Total: total, CreatedAt: testTime}
	if err := e.invoices.Create(context.Background(), invoice); err != nil {
		t.Fatalf("store invoice: %v", err)
	}
	return invoice
}

func TestProcessPaymentApproved(t *testing.T) {
	env := newPaymentEnv()
	invoice := env.storeInvoice(t, 27200)

	payment, err := env.uc.ProcessPayment(context.Background(), invoice.ID, testMethod())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payment.Status != model.PaymentStatusApproved {
		t.Fatalf("expected APPROVED, got %s", payment.Status)
	}
	if payment.Amount != invoice.Total {
		t.Fatalf("payment amount %d must equal invoice total %d", payment.Amount, invoice.Total)
	}
	if env.observer.Count() != 1 {
		t.Fatalf("expected one observer notification, got %d", env.observer.Count())
	}
	if env.observer.Approved[0][0] != "order-1" {
		t.Fatalf("observer got wrong order id %s", env.observer.Approved[0][0])
	}
}

func TestProcessPaymentDeclined(t *testing.T) {
	env := newPaymentEnv()
	invoice := env.storeInvoice(t, 27200)
	env.auth.Err = errors.New("insufficient funds")

	payment, err := env.uc.ProcessPayment(context.Background(), invoice.ID, testMethod())
	if !errors.Is(err, domainErrors.ErrPaymentDeclined) {
		t.Fatalf("expected payment declined, got %v", err)
	}
	if payment == nil || payment.Status != model.PaymentStatusFailed {
		t.Fatalf("expected FAILED payment record, got %+v", payment)
	}
	if env.observer.Count() != 0 {
		t.Fatal("observer must not fire on decline")
	}

	// The user may resubmit after a decline.
	env.auth.Err = nil
	if _, err := env.uc.ProcessPayment(context.Background(), invoice.ID, testMethod()); err != nil {
		t.Fatalf("resubmission after decline failed: %v", err)
	}
}

func TestProcessPaymentDuplicateRejected(t *testing.T) {
	env := newPaymentEnv()
	invoice := env.storeInvoice(t, 27200)

	if _, err := env.uc.ProcessPayment(context.Background(), invoice.ID, testMethod()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := env.uc.ProcessPayment(context.Background(), invoice.ID, testMethod()); !errors.Is(err, domainErrors.ErrDuplicatePayment) {
		t.Fatalf("expected duplicate payment error, got %v", err)
	}
	if env.auth.Calls != 1 {
		t.Fatalf("authorizer must not run for a duplicate, got %d calls", env.auth.Calls)
	}
}

func TestProcessPaymentUnknownInvoice(t *testing.T) {
	env := newPaymentEnv()
	if _, err := env.uc.ProcessPayment(context.Background(), "missing", testMethod()); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProcessPaymentRequiresMethod(t *testing.T) {
	env := newPaymentEnv()
	env.storeInvoice(t, 27200)

	if _, err := env.uc.ProcessPayment(context.Background(), "inv-1", model.PaymentMethod{}); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRefundOnlyFromApproved(t *testing.T) {
	env := newPaymentEnv()
	invoice := env.storeInvoice(t, 27200)

	payment, err := env.uc.ProcessPayment(context.Background(), invoice.ID, testMethod())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	refunded, err := env.uc.Refund(context.Background(), payment.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refunded.Status != model.PaymentStatusRefunded {
		t.Fatalf("expected REFUNDED, got %s", refunded.Status)
	}

	if _, err := env.uc.Refund(context.Background(), payment.ID); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition on double refund, got %v", err)
	}
}

func TestExpirePendingOnlyTouchesPending(t *testing.T) {
	env := newPaymentEnv()
	ctx := context.Background()

	pending := &model.Payment{ID: "pay-1", InvoiceID: "inv-1", Status: model.PaymentStatusPending, At: testTime.Add(-time.Minute)}
	approved := &model.Payment{ID: "pay-2", InvoiceID: "inv-2", Status: model.PaymentStatusApproved, At: testTime.Add(-time.Minute)}
	for _, p := range []*model.Payment{pending, approved} {
		if err := env.payments.Create(ctx, p); err != nil {
			t.Fatalf("store payment: %v", err)
		}
	}

	stale, err := env.uc.ListStalePending(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stale) != 1 || stale[0].ID != "pay-1" {
		t.Fatalf("expected only the pending payment, got %+v", stale)
	}

	if err := env.uc.ExpirePending(ctx, "pay-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := env.uc.ExpirePending(ctx, "pay-2"); err != nil {
		t.Fatalf("expire must no-op on non-pending payments: %v", err)
	}

	got, _ := env.payments.GetByID(ctx, "pay-1")
	if got.Status != model.PaymentStatusFailed {
		t.Fatalf("expected FAILED, got %s", got.Status)
	}
	got, _ = env.payments.GetByID(ctx, "pay-2")
	if got.Status != model.PaymentStatusApproved {
		t.Fatalf("approved payment must be untouched, got %s", got.Status)
	}
}
