package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// Schedules are cron expressions with a leading seconds field.
type Schedules struct {
	LowStock          string
	BookingCompletion string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	lowStockJob          *LowStockJob
	bookingCompletionJob *BookingCompletionJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	items ItemsReader,
	completer BookingCompleter,
	schedules Schedules,
	logger *zap.Logger,
) *JobManager {
	return &JobManager{
		lowStockJob:          NewLowStockJob(items, schedules.LowStock, logger),
		bookingCompletionJob: NewBookingCompletionJob(completer, schedules.BookingCompletion, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.lowStockJob.Start(); err != nil {
		return fmt.Errorf("failed to start low stock job: %w", err)
	}

	if err := jm.bookingCompletionJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.lowStockJob.Stop()
		return fmt.Errorf("failed to start booking completion job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs, waiting for running ones.
func (jm *JobManager) StopAll() {
	jm.bookingCompletionJob.Stop()
	jm.lowStockJob.Stop()
}
