package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"listing-feed-service/internal/contextkeys"
	"listing-feed-service/internal/core/port"
	"listing-feed-service/internal/core/port/usecases_port"
)

// PendingSyncScheduler runs the pending-message sync on a cron schedule so
// recipients that never hit the REST surface still get their sets refreshed.
type PendingSyncScheduler struct {
	cron     *cron.Cron
	schedule string
	syncUC   usecases_port.SyncPendingUseCase
	logger   port.LoggerPort
}

func NewPendingSyncScheduler(schedule string, syncUC usecases_port.SyncPendingUseCase, logger port.LoggerPort) *PendingSyncScheduler {
	return &PendingSyncScheduler{
		cron:     cron.New(),
		schedule: schedule,
		syncUC:   syncUC,
		logger:   logger,
	}
}

func (s *PendingSyncScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx := contextkeys.ContextWithLogger(context.Background(), s.logger)
		if err := s.syncUC.Execute(ctx); err != nil {
			s.logger.Error("scheduled pending sync failed", err, nil)
		}
	})
	if err != nil {
		return fmt.Errorf("scheduler: invalid schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()
	s.logger.Info("Pending sync scheduler started", port.Fields{"schedule": s.schedule})
	return nil
}

// Stop waits for a running sync to finish.
func (s *PendingSyncScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Pending sync scheduler stopped", nil)
}
