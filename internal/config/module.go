package config

import (
	"go.uber.org/fx"

	"github.com/parcelo/logistics/internal/pricing"
)

// Module exposes configuration loader for fx graphs.
var Module = fx.Provide(
	Load,
	func(cfg *Config) pricing.Tariff { return cfg.Tariff },
)
