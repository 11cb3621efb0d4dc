package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"motoweather/internal/ride"
)

// Runner is the pipeline entry operation the daily job invokes.
type Runner interface {
	Run(ctx context.Context) error
}

// Scheduler triggers the pipeline once per weekday at a fixed local time.
type Scheduler struct {
	scheduler *gocron.Scheduler
	runner    Runner
	runAt     string
	location  *time.Location
}

// New creates a Scheduler. runAt is a "HH:MM" wall-clock time in loc; an
// empty runAt disables scheduling entirely (manual trigger only).
func New(runner Runner, runAt string, loc *time.Location) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(loc),
		runner:    runner,
		runAt:     runAt,
		location:  loc,
	}
}

// Start schedules the daily job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.runAt == "" {
		log.Println("scheduler: no daily run time configured; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(1).Day().At(s.runAt).Do(func() {
		now := time.Now().In(s.location)
		if !ride.IsCommuteDay(now) {
			log.Println("scheduler: weekend, skipping ride check")
			return
		}

		log.Println("scheduler: running daily ride check")

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if err := s.runner.Run(ctx); err != nil {
			log.Printf("scheduler: ride check aborted: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
