// Package scheduler runs the periodic report snapshot refresh.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ndewijer/Author-Ledger-Backend/internal/config"
)

const refreshTimeout = 5 * time.Minute

// Refresher recomputes and stores report snapshots. It is satisfied by *service.SnapshotService.
type Refresher interface {
	Refresh(ctx context.Context) (int, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	cfg       config.SnapshotConfig
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.SnapshotConfig, refresher Refresher, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:      cron.New(),
		refresher: refresher,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start registers the snapshot refresh and starts the cron loop.
// It does nothing when snapshots are disabled.
func (s *Scheduler) Start() error {
	if !s.cfg.Enabled {
		s.logger.Info("snapshot refresh disabled")
		return nil
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Schedule))

	if _, err := s.cron.AddFunc(s.cfg.Schedule, s.RefreshSnapshots); err != nil {
		s.logger.Error("failed to schedule snapshot refresh", zap.Error(err))
		return err
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// RefreshSnapshots runs one refresh with a bounded timeout. Failures are logged, not returned.
func (s *Scheduler) RefreshSnapshots() {
	s.logger.Info("refreshing report snapshots")
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	count, err := s.refresher.Refresh(ctx)
	if err != nil {
		s.logger.Error("failed to refresh report snapshots", zap.Error(err))
		return
	}

	s.logger.Info("report snapshots refreshed", zap.Int("books", count))
}
