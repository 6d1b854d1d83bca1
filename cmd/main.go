// jobscout-discovery-service
//
// Batch job-listing discovery: for each company on the list, a browser-driving
// agent locates the careers page and extracts job listings, with every
// pipeline step persisted per company. Runs once and exits, or repeats on a
// cron interval when DISCOVERY_INTERVAL_HOURS is set.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"jobscout/discovery-service/internal/agent"
	"jobscout/discovery-service/internal/batch"
	"jobscout/discovery-service/internal/companies"
	"jobscout/discovery-service/internal/config"
	"jobscout/discovery-service/internal/db"
	"jobscout/discovery-service/internal/live"
	"jobscout/discovery-service/internal/pipeline"
	"jobscout/discovery-service/internal/scheduler"
	"jobscout/discovery-service/internal/store"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[discovery] Config error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	log.Println("[discovery] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[discovery] PostgreSQL: %v", err)
	}
	defer pool.Close()
	log.Println("[discovery] PostgreSQL connected ✓")

	resultStore := store.NewPostgres(pool)
	if err := resultStore.EnsureSchema(ctx); err != nil {
		log.Fatalf("[discovery] Schema: %v", err)
	}

	// ── Redis (optional, live status events) ─────────────────────────────────
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		log.Println("[discovery] Connecting to Redis…")
		rdb, err = db.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("[discovery] Redis: %v", err)
		}
		defer rdb.Close()
		log.Println("[discovery] Redis connected ✓")
	}

	// ── Company list ─────────────────────────────────────────────────────────
	list, err := companies.ParseFile(cfg.CompaniesFile)
	if err != nil {
		log.Fatalf("[discovery] Company list: %v", err)
	}
	if len(list) == 0 {
		log.Println("[discovery] No companies found to process")
		return
	}
	log.Printf("[discovery] v%s — %d company(ies) loaded from %s", version, len(list), cfg.CompaniesFile)

	// ── Pipeline wiring ──────────────────────────────────────────────────────
	client := agent.NewClient(cfg.AgentEndpoint, cfg.AgentAPIKey, cfg.AgentTimeout)
	pipe := pipeline.New(resultStore, client, live.NewPublisher(rdb), cfg.ExcludeTerms)
	sched := batch.NewScheduler(pipe, cfg.BatchSize, cfg.MaxConcurrentPerBatch, cfg.BatchDelay)

	runOnce := func(ctx context.Context) {
		summary := sched.Run(ctx, list)
		summary.Log()
	}

	// ── Run ──────────────────────────────────────────────────────────────────
	if cfg.IntervalHours > 0 {
		cronSched := scheduler.New(runOnce, cfg.IntervalHours)
		if err := cronSched.Start(ctx); err != nil {
			log.Fatalf("[discovery] Scheduler: %v", err)
		}
		<-ctx.Done()
		log.Println("[discovery] Shutting down…")
		cronSched.Stop()
		return
	}

	runOnce(ctx)
}
