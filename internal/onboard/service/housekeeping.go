package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/fmalaspina/vallebot/internal/onboard/store"
)

// HousekeepingService periodically prunes the inbound/outbound message log
// so it does not grow without bound. Onboarding state never depends on the
// log, so pruning is safe at any time.
type HousekeepingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration
	Now       func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. A non-positive
// interval defaults to one hour; a non-positive retention keeps messages
// forever.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}

	return &HousekeepingService{
		Store:     st,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start launches the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	if s.Retention <= 0 {
		close(s.doneCh)
		s.Logger.Info("message retention disabled, housekeeping not started")
		return
	}

	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval, "retention", s.Retention)
}

// Stop blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup deletes messages older than Retention and returns the count.
func (s *HousekeepingService) Cleanup(ctx context.Context) int64 {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	cutoff := now().UTC().Add(-s.Retention)

	n, err := s.Store.Messages().DeleteMessagesBefore(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to prune message log", "error", err)
		return 0
	}

	s.Logger.Info("housekeeping cleanup completed", "messages_deleted", n, "cutoff", cutoff)
	return n
}
