package di

import (
	"go.uber.org/fx"

	"github.com/parcelo/logistics/internal/adapter/notify"
	"github.com/parcelo/logistics/internal/adapter/payment"
	"github.com/parcelo/logistics/internal/app"
	"github.com/parcelo/logistics/internal/config"
	"github.com/parcelo/logistics/internal/logger"
	"github.com/parcelo/logistics/internal/pkg/clock"
	"github.com/parcelo/logistics/internal/pricing"
	"github.com/parcelo/logistics/internal/saga"
	"github.com/parcelo/logistics/internal/server/http/handlers"
	"github.com/parcelo/logistics/internal/server/http/router"
	"github.com/parcelo/logistics/internal/storage/postgres"
	"github.com/parcelo/logistics/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		clock.Module,
		postgres.Module,
		pricing.Module,
		payment.Module,
		notify.Module,
		usecase.Module,
		saga.Module,
		fx.Provide(func(client payment.Client) usecase.Authorizer { return client }),
		fx.Provide(func(sink notify.Sink) saga.Notifier { return sink }),
		fx.Provide(func(facade *app.LogisticsFacade) handlers.LogisticsFacade { return facade }),
		fx.Provide(func(storage *postgres.Storage) handlers.Pinger { return storage }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
