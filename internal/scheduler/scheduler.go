package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/petokpredict/server/internal/config"
	"github.com/petokpredict/server/internal/service/dashboard"
	"github.com/petokpredict/server/internal/service/market"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	marketSvc *market.Service
	dashboard *dashboard.Service
	cfg       config.PricingConfig
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.PricingConfig, marketSvc *market.Service, dashboardSvc *dashboard.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// robfig/cron/v3 default parser is standard cron (5 fields: min,
	// hour, dom, month, dow). Fall back to the server's local time when
	// the configured timezone cannot be loaded.
	opts := []cron.Option{}
	if loc, err := time.LoadLocation(cfg.Timezone); err == nil {
		opts = append(opts, cron.WithLocation(loc))
	} else {
		logger.Warn("invalid timezone, using local time", zap.String("timezone", cfg.Timezone))
	}
	c := cron.New(opts...)

	return &Scheduler{
		cron:      c,
		marketSvc: marketSvc,
		dashboard: dashboardSvc,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start registers the price refresh job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.CronSchedule, s.refreshPrices)
	if err != nil {
		s.logger.Error("failed to schedule price refresh", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) refreshPrices() {
	s.logger.Info("refreshing market prices")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	s.marketSvc.RefreshAll(ctx)
	s.dashboard.Invalidate()
}
