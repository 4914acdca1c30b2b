package tables

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// RefreshScheduler reloads lookup tables on a cron schedule, so long-running
// processes pick up table revisions without a restart.
type RefreshScheduler struct {
	schedule string
	tables   []*LazyTable
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewRefreshScheduler creates a scheduler for the given tables.
//
// Common schedules:
//   - "0 3 * * *"   - daily at 3 AM
//   - "0 */12 * * *" - every 12 hours
//
// An empty schedule disables the scheduler.
func NewRefreshScheduler(schedule string, tables []*LazyTable, logger *slog.Logger) *RefreshScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RefreshScheduler{
		schedule: schedule,
		tables:   tables,
		cron:     cron.New(),
		logger:   logger.With("component", "tables.scheduler"),
	}
}

// Start begins scheduled refreshing. It returns immediately; refreshes run
// on the cron goroutine until the context is cancelled or Stop is called.
func (s *RefreshScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("refresh schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.refresh(ctx)
	}); err != nil {
		return fmt.Errorf("schedule table refresh: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("table refresh scheduler started",
		"schedule", s.schedule,
		"table_count", len(s.tables),
	)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// refresh reloads every table, continuing past individual failures.
func (s *RefreshScheduler) refresh(ctx context.Context) {
	s.logger.Info("starting scheduled table refresh")

	for _, t := range s.tables {
		if err := t.Reload(ctx); err != nil {
			s.logger.Error("scheduled table refresh failed",
				"table", t.name,
				"error", err,
			)
		}
	}
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (s *RefreshScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		s.logger.Info("table refresh scheduler stopped")
	}
}

// IsRunning reports whether the scheduler is active.
func (s *RefreshScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns the next scheduled refresh time, if any.
func (s *RefreshScheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return nil
	}
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
