package pricing

import "go.uber.org/fx"

// Module exposes the pricing engine constructor for fx graphs. The tariff is
// supplied by the configuration module.
var Module = fx.Provide(NewEngine)
