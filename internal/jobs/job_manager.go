// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3.
package jobs

import (
	"fmt"
	"log/slog"

	"orders/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	reservationConfirmationJob *ReservationConfirmationJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	confirmReservationsHandler commands.ConfirmReservationsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		reservationConfirmationJob: NewReservationConfirmationJob(confirmReservationsHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.reservationConfirmationJob.Start(); err != nil {
		return fmt.Errorf("failed to start reservation confirmation job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.reservationConfirmationJob.Stop()
}
