package saga

import (
	"go.uber.org/fx"

	"github.com/parcelo/logistics/internal/usecase"
)

// Module wires the lifecycle orchestrator and exposes it as the payment
// observer consumed by the payment use case.
var Module = fx.Options(
	fx.Provide(NewOrchestrator),
	fx.Provide(func(o *Orchestrator) usecase.PaymentObserver { return o }),
)
