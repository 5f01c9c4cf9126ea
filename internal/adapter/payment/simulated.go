package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/parcelo/logistics/internal/domain/model"
)

// declinedRefSuffix simulates an account with insufficient funds.
const declinedRefSuffix = "0000"

// Simulated approves payments synchronously without a provider round-trip.
// Account references ending in 0000 are declined, so both outcomes stay
// reachable in local runs and tests.
type Simulated struct{}

// NewSimulated constructs the simulated authorizer.
func NewSimulated() Simulated { return Simulated{} }

// Authorize applies the simulated check.
func (Simulated) Authorize(ctx context.Context, payment *model.Payment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if payment.Amount <= 0 {
		return fmt.Errorf("%w: non-positive amount", ErrDeclined)
	}
	if strings.HasSuffix(payment.Method.MaskedRef, declinedRefSuffix) {
		return fmt.Errorf("%w: insufficient funds", ErrDeclined)
	}
	return nil
}
