package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/parcelo/logistics/internal/config"
	"github.com/parcelo/logistics/internal/domain/repository"
	"github.com/parcelo/logistics/internal/pkg/clock"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewOrderUseCase,
	NewShipmentUseCase,
	NewTimelineUseCase,
	newPaymentUseCase,
)

type paymentParams struct {
	fx.In

	Payments   repository.PaymentRepository
	Invoices   repository.InvoiceRepository
	Authorizer Authorizer
	Observer   PaymentObserver
	Config     *config.Config
	Clock      clock.Clock
	Logger     *slog.Logger
}

func newPaymentUseCase(p paymentParams) *PaymentUseCase {
	return NewPaymentUseCase(p.Payments, p.Invoices, p.Authorizer, p.Observer, p.Config.PaymentAuthTimeout, p.Clock, p.Logger)
}
