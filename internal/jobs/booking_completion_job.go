package jobs

import (
	"context"
	"time"

	"ferryops/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const completionBatchSize = 100

// BookingCompleter closes assigned bookings whose travel date has passed.
type BookingCompleter interface {
	Handle(ctx context.Context, cmd commands.CompleteDepartedBookingsCommand) (int, error)
}

// BookingCompletionJob completes assigned bookings once their travel day is
// over.
type BookingCompletionJob struct {
	completer BookingCompleter
	schedule  string
	cron      *cron.Cron
	logger    *zap.Logger
	now       func() time.Time
}

func NewBookingCompletionJob(completer BookingCompleter, schedule string, logger *zap.Logger) *BookingCompletionJob {
	return &BookingCompletionJob{
		completer: completer,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With(zap.String("component", "booking_completion_job")),
		now:       time.Now,
	}
}

func (j *BookingCompletionJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("booking completion job started", zap.String("schedule", j.schedule))
	return nil
}

func (j *BookingCompletionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("booking completion job stopped")
}

// Run completes bookings that travelled before today (UTC), a batch at a time,
// until a batch comes back short.
func (j *BookingCompletionJob) Run(ctx context.Context) {
	cutoff := j.now().UTC().Truncate(24 * time.Hour)
	cmd, err := commands.NewCompleteDepartedBookingsCommand(cutoff, completionBatchSize)
	if err != nil {
		j.logger.Error("invalid booking completion command", zap.Error(err))
		return
	}

	total := 0
	for {
		n, err := j.completer.Handle(ctx, cmd)
		if err != nil {
			j.logger.Error("booking completion failed", zap.Error(err))
			break
		}
		total += n
		if n < completionBatchSize || ctx.Err() != nil {
			break
		}
	}

	if total > 0 {
		j.logger.Info("completed departed bookings", zap.Int("count", total), zap.Time("cutoff", cutoff))
	}
}
