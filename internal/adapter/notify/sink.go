package notify

import (
	"context"
	"log/slog"
)

// Sink delivers user-facing notifications. Delivery is fire-and-forget: a
// failed notification is logged and swallowed, it never blocks or rolls back
// a lifecycle transition.
type Sink interface {
	Notify(ctx context.Context, userID, title, message, severity string)
}

// LogSink writes notifications to the application log. Used when no broker is
// configured.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink constructs a log-backed sink.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Notify logs the notification.
func (s *LogSink) Notify(ctx context.Context, userID, title, message, severity string) {
	s.logger.Info("notification",
		slog.String("user_id", userID),
		slog.String("title", title),
		slog.String("message", message),
		slog.String("severity", severity),
	)
}
