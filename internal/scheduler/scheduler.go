package scheduler

import (
	"context"
	"fmt"
	"log"

	"saftrade/internal/runner"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the daily batch on a cron timetable.
type Scheduler struct {
	Cron   *cron.Cron
	Runner *runner.Runner
	Ctx    context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, r *runner.Runner) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds()),
		Runner: r,
		Ctx:    ctx,
	}
}

// Register registers the daily batch task.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyBatch); err != nil {
		return fmt.Errorf("register daily batch: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the daily batch immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.dailyBatch()
}

func (s *Scheduler) dailyBatch() {
	log.Println("[INFO] running daily batch")
	s.Runner.RunBatch(s.Ctx)
}
