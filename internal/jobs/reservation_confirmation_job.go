package jobs

import (
	"context"
	"log/slog"

	"orders/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ReservationConfirmationJob promotes reserved bookings of confirmed buyables
// into processing. Runs every ten seconds so checkout reservations become
// visible to vendors shortly after stock confirmation.
type ReservationConfirmationJob struct {
	handler commands.ConfirmReservationsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewReservationConfirmationJob creates a new job for confirming reservations.
func NewReservationConfirmationJob(
	handler commands.ConfirmReservationsCommandHandler, logger *slog.Logger,
) *ReservationConfirmationJob {
	return &ReservationConfirmationJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "reservation_confirmation_job"),
	}
}

// Start begins the reservation confirmation job.
func (j *ReservationConfirmationJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewConfirmReservationsCommand()
		if err != nil {
			j.logger.ErrorContext(ctx, "Reservation confirmation command invalid", "error", err)
			return
		}

		confirmed, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Reservation confirmation job failed", "error", err)
			return
		}

		if confirmed > 0 {
			j.logger.InfoContext(ctx, "Reservations confirmed", "count", confirmed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reservation confirmation job started (running every 10 seconds)")
	return nil
}

// Stop stops the reservation confirmation job.
func (j *ReservationConfirmationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Reservation confirmation job stopped")
}
