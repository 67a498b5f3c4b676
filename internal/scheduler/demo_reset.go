package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/telecom/internal/logger"
)

// Seeder restores the database to its initial data set.
type Seeder interface {
	InsertInitialData(ctx context.Context) error
}

// Pruner drops stale in-memory state, such as expired login lockouts.
type Pruner interface {
	Prune()
}

// DemoResetScheduler periodically wipes the database back to the initial data
// set and, on the same tick, prunes expired login limiter entries.
type DemoResetScheduler struct {
	seeder   Seeder
	pruner   Pruner
	schedule string
	timeout  time.Duration
	log      *logger.Logger

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewDemoResetScheduler creates a scheduler for the given cron schedule. pruner may be nil.
func NewDemoResetScheduler(seeder Seeder, pruner Pruner, schedule string, log *logger.Logger) *DemoResetScheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &DemoResetScheduler{
		seeder:   seeder,
		pruner:   pruner,
		schedule: schedule,
		timeout:  time.Minute,
		log:      log.With("component", "DemoResetScheduler"),
		cron:     cron.New(cron.WithParser(newParser())),
	}
}

func newParser() cron.Parser {
	return cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
}

// ValidateSchedule reports whether schedule is a five-field cron expression.
func ValidateSchedule(schedule string) error {
	if _, err := newParser().Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}
	return nil
}

// Start registers the reset job and starts the cron loop. The scheduler stops
// when ctx is canceled.
func (s *DemoResetScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return err
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runReset(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reset job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	s.log.Info("Demo reset scheduler started", "schedule", s.schedule, "next_run", s.cron.Entry(entryID).Next)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running reset to finish and halts the cron loop.
func (s *DemoResetScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}
	s.isRunning = false

	s.log.Info("Demo reset scheduler stopped")
}

// RunNow performs a reset synchronously, outside the schedule.
func (s *DemoResetScheduler) RunNow(ctx context.Context) error {
	return s.reset(ctx)
}

func (s *DemoResetScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next reset will occur, or nil when stopped.
func (s *DemoResetScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	return &next
}

func (s *DemoResetScheduler) runReset(parent context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), s.timeout)
	defer cancel()

	if err := s.reset(ctx); err != nil {
		s.log.Error("Demo reset failed", "error", err)
	}
}

func (s *DemoResetScheduler) reset(ctx context.Context) error {
	start := time.Now()
	if err := s.seeder.InsertInitialData(ctx); err != nil {
		return err
	}
	if s.pruner != nil {
		s.pruner.Prune()
	}
	s.log.Info("Demo data reset", "duration", time.Since(start))
	return nil
}
