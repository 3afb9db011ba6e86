package jobs

import (
	"context"
	"log/slog"

	"interpreter-booking/internal/usecase/commands"

	"github.com/robfig/cron/v3"
)

// ExpirySweepJob times out pending bookings nobody accepted. It runs on the
// configured schedule and marks every booking whose expiry deadline has passed.
type ExpirySweepJob struct {
	bookings commands.BookingCommands
	spec     string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewExpirySweepJob(bookings commands.BookingCommands, spec string, logger *slog.Logger) *ExpirySweepJob {
	return &ExpirySweepJob{
		bookings: bookings,
		spec:     spec,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "expiry_sweep_job"),
	}
}

func (j *ExpirySweepJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()

		expired, err := j.bookings.ExpireOverdueJobs(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Expiry sweep failed", "error", err)
			return
		}
		if expired > 0 {
			j.logger.InfoContext(ctx, "Expired overdue bookings", "count", expired)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Expiry sweep job started", "schedule", j.spec)
	return nil
}

func (j *ExpirySweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Expiry sweep job stopped")
}
