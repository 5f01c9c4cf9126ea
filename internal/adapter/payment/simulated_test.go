package payment

import (
	"context"
	"errors"
	"testing"
)

func TestSimulatedAuthorize(t *testing.T) {
	authorizer := NewSimulated()

	payment := testPayment()
	if err := authorizer.Authorize(context.Background(), payment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payment = testPayment()
	payment.Amount = 0
	if err := authorizer.Authorize(context.Background(), payment); !errors.Is(err, ErrDeclined) {
		t.Fatalf("expected decline for zero amount, got %v", err)
	}

	payment = testPayment()
	payment.Method.MaskedRef = "****0000"
	if err := authorizer.Authorize(context.Background(), payment); !errors.Is(err, ErrDeclined) {
		t.Fatalf("expected decline for flagged reference, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := authorizer.Authorize(ctx, testPayment()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}
