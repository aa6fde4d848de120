package bootstrap

import (
	"shareit/internal/handler/middleware"
	"shareit/internal/infra/metrics"
	"shareit/internal/usecase/commands"

	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		NewRecorder,
		func(r *metrics.Recorder) middleware.HTTPObserver { return r },
		func(r *metrics.Recorder) commands.BookingMetrics { return r },
	),
)

func NewRecorder() *metrics.Recorder {
	metrics.Register()
	return metrics.NewRecorder()
}
