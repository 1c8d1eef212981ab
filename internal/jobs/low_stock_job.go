package jobs

import (
	"context"

	"ferryops/internal/core/application/usecases/queries"
	"ferryops/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ItemsReader lists inventory items.
type ItemsReader interface {
	Handle(ctx context.Context, query queries.GetItemsQuery) ([]queries.ItemView, error)
}

// LowStockJob scans for items at or below their reorder level, publishes the
// count as a gauge and logs each one.
type LowStockJob struct {
	items    ItemsReader
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewLowStockJob(items ItemsReader, schedule string, logger *zap.Logger) *LowStockJob {
	return &LowStockJob{
		items:    items,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With(zap.String("component", "low_stock_job")),
	}
}

func (j *LowStockJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("low stock job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop waits for a running scan to finish.
func (j *LowStockJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("low stock job stopped")
}

// Run performs one scan. The gauge keeps its last value when the scan fails.
func (j *LowStockJob) Run(ctx context.Context) {
	low, err := j.items.Handle(ctx, queries.NewGetItemsQuery(true))
	if err != nil {
		j.logger.Error("low stock scan failed", zap.Error(err))
		return
	}

	metrics.LowStockItems.Set(float64(len(low)))
	for _, item := range low {
		j.logger.Warn("item at or below reorder level",
			zap.String("item_id", item.ID.String()),
			zap.String("name", item.Name),
			zap.Int("current_stock", item.CurrentStock),
			zap.Int("reorder_level", item.ReorderLevel),
		)
	}
}
