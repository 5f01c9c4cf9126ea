package payment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/parcelo/logistics/internal/config"
)

// Module exposes the payment authorizer implementation to the fx graph. With
// no provider address configured the simulated authorizer is used.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	if p.Config.PaymentProviderAddress == "" {
		return NewSimulated(), nil
	}
	return NewHTTPClient(p.Config.PaymentProviderAddress, p.Logger)
}
