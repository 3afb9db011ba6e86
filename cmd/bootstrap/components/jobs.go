package components

import (
	"context"
	"log/slog"

	"interpreter-booking/internal/jobs"
	"interpreter-booking/internal/pkg/config"
	"interpreter-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var JobsModule = fx.Module("jobs",
	fx.Provide(
		func(bookings commands.BookingCommands, cfg config.Config, logger *slog.Logger) *jobs.ExpirySweepJob {
			return jobs.NewExpirySweepJob(bookings, cfg.Booking.ExpirySweep, logger)
		},
	),
	fx.Invoke(registerExpirySweep),
)

func registerExpirySweep(lc fx.Lifecycle, sweep *jobs.ExpirySweepJob) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return sweep.Start()
		},
		OnStop: func(_ context.Context) error {
			sweep.Stop()
			return nil
		},
	})
}
