package logger

import (
	"log/slog"
	"os"
)

// New builds the process-wide JSON logger. Every line carries the service
// name so aggregated logs stay attributable.
func New() *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	base := slog.New(slog.NewJSONHandler(os.Stdout, opts))
	return base.With(slog.String("service", "logistics"))
}
