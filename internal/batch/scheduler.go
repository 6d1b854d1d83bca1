// Package batch partitions the company list into fixed-size batches and runs
// each batch's pipelines under a bounded concurrency limit.
package batch

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"jobscout/discovery-service/internal/model"
)

// Runner is the per-company unit of work. A non-nil error counts the company
// as failed; errors are contained at this boundary and never cancel siblings.
type Runner interface {
	Run(ctx context.Context, company model.Company) error
}

// Scheduler executes batches sequentially: batch N+1 never starts before
// every pipeline of batch N has settled. Within a batch, companies start in
// list order but may finish out of order.
type Scheduler struct {
	runner        Runner
	batchSize     int
	maxConcurrent int
	delay         time.Duration // pause between batches
}

// NewScheduler constructs a Scheduler. batchSize and maxConcurrent are
// clamped to at least 1; maxConcurrent may be smaller than batchSize.
func NewScheduler(runner Runner, batchSize, maxConcurrent int, delay time.Duration) *Scheduler {
	if batchSize < 1 {
		batchSize = 1
	}
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Scheduler{
		runner:        runner,
		batchSize:     batchSize,
		maxConcurrent: maxConcurrent,
		delay:         delay,
	}
}

// Outcome is the per-batch tally.
type Outcome struct {
	Successful int
	Failed     int
	Duration   time.Duration
}

// Run processes every company and returns the aggregated summary. It always
// returns a summary for whatever work completed, even when ctx is cancelled
// mid-run.
func (s *Scheduler) Run(ctx context.Context, companies []model.Company) Summary {
	batches := Partition(companies, s.batchSize)
	summary := Summary{TotalCompanies: len(companies)}
	start := time.Now()

	for i, b := range batches {
		log.Printf("[scheduler] batch %d/%d: %d company(ies)", i+1, len(batches), len(b))

		out := s.runBatch(ctx, b)
		summary.Batches = append(summary.Batches, out)
		summary.TotalSuccessful += out.Successful
		summary.TotalFailed += out.Failed

		log.Printf("[scheduler] batch %d done in %.1fs — %d successful, %d failed",
			i+1, out.Duration.Seconds(), out.Successful, out.Failed)

		if ctx.Err() != nil {
			log.Printf("[scheduler] run cancelled after batch %d", i+1)
			break
		}

		if i < len(batches)-1 && s.delay > 0 {
			log.Printf("[scheduler] waiting %s before next batch", s.delay)
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
			}
		}
	}

	summary.Duration = time.Since(start)
	return summary
}

// runBatch fans one batch out under the concurrency limit and tallies
// outcomes.
func (s *Scheduler) runBatch(ctx context.Context, companies []model.Company) Outcome {
	start := time.Now()

	var successful, failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(s.maxConcurrent)

	for _, c := range companies {
		c := c
		g.Go(func() error {
			if err := s.runOne(ctx, c); err != nil {
				log.Printf("[scheduler] %s failed: %v", c.Name, err)
				failed.Add(1)
				return nil // best-effort: don't cancel siblings
			}
			successful.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	return Outcome{
		Successful: int(successful.Load()),
		Failed:     int(failed.Load()),
		Duration:   time.Since(start),
	}
}

// runOne converts a pipeline panic into a counted failure so one company can
// never take down its batch.
func (s *Scheduler) runOne(ctx context.Context, c model.Company) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pipeline panic: %v", r)
		}
	}()
	return s.runner.Run(ctx, c)
}

// Partition splits companies into sequential chunks of size; the last chunk
// may be shorter. Input order is preserved.
func Partition(companies []model.Company, size int) [][]model.Company {
	if size < 1 {
		size = 1
	}
	var batches [][]model.Company
	for i := 0; i < len(companies); i += size {
		end := i + size
		if end > len(companies) {
			end = len(companies)
		}
		batches = append(batches, companies[i:end])
	}
	return batches
}
