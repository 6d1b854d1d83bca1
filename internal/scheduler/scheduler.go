// Package scheduler wires up the cron job that periodically re-runs company
// discovery when the service runs in interval mode.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// RunFunc executes one full discovery run.
type RunFunc func(ctx context.Context)

// Scheduler wraps robfig/cron and manages the discovery loop.
type Scheduler struct {
	cron *cron.Cron
	run  RunFunc
	spec string // cron spec, e.g. "@every 6h"
}

// New creates a Scheduler that fires every intervalHours hours.
func New(run RunFunc, intervalHours int) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLogger(cron.DefaultLogger)),
		run:  run,
		spec: fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler. Also kicks off one run
// immediately so results appear without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.run(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started — spec: %s", s.spec)

	// Run immediately on startup (non-blocking)
	go s.run(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] Cron stopped")
}
