package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Jamlick126/invoice-manager/internal/domain"
)

// StockSource yields the current low-stock products.
type StockSource interface {
	LowStock(ctx context.Context) []domain.StockLevel
}

// Scheduler runs the periodic low-stock report.
type Scheduler struct {
	cron   *cron.Cron
	spec   string
	source StockSource
	logger *zap.Logger
}

// NewScheduler builds a scheduler for the given cron expression. An empty
// expression disables the job.
func NewScheduler(spec string, source StockSource, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:   cron.New(),
		spec:   spec,
		source: source,
		logger: logger,
	}
}

// Start registers the job and starts the cron loop.
func (s *Scheduler) Start() error {
	if s.spec == "" {
		s.logger.Info("low-stock report disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.spec, s.reportLowStock); err != nil {
		return err
	}
	s.logger.Info("starting scheduler", zap.String("low_stock_cron", s.spec))
	s.cron.Start()
	return nil
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) reportLowStock() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	items := s.source.LowStock(ctx)
	for _, item := range items {
		s.logger.Warn("low stock",
			zap.String("product_id", item.ProductID),
			zap.String("name", item.Name),
			zap.Int("remaining", item.Remaining),
		)
	}
	s.logger.Info("low-stock report complete", zap.Int("low_stock_count", len(items)))
}
