package notify

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/parcelo/logistics/internal/config"
)

// Module exposes the notification sink to the fx graph. Kafka is used when
// brokers are configured, the log sink otherwise.
var Module = fx.Options(
	fx.Provide(newSink),
)

type sinkParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newSink(p sinkParams) (Sink, error) {
	if len(p.Config.KafkaBrokers) == 0 {
		return NewLogSink(p.Logger), nil
	}

	sink, err := NewKafkaSink(p.Config.KafkaBrokers, p.Config.NotificationTopic, p.Logger)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return sink.Close()
		},
	})
	return sink, nil
}
