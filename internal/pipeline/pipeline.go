package pipeline

import (
	"context"
	"log"
	"log/slog"

	"jobscout/discovery-service/internal/agent"
	"jobscout/discovery-service/internal/live"
	"jobscout/discovery-service/internal/model"
	"jobscout/discovery-service/internal/store"
)

// Pipeline runs the two-step discovery process for single companies. Each
// transition is persisted before the next step begins, so an external reader
// always sees exactly which step a company is on. Step failures terminate
// that company's run with a *_failed status — they never escape to siblings.
type Pipeline struct {
	store   store.ResultStore
	agent   agent.ExtractionClient
	events  *live.Publisher
	exclude []string
}

// New constructs a Pipeline. events may be nil; excludeTerms may be empty.
func New(st store.ResultStore, client agent.ExtractionClient, events *live.Publisher, excludeTerms []string) *Pipeline {
	return &Pipeline{store: st, agent: client, events: events, exclude: excludeTerms}
}

// Run drives company through the state machine to a terminal status.
//
// A non-nil return means the run itself broke (context cancelled) — handled
// step failures are recorded in the store and return nil, because the
// company did reach a terminal state.
func (p *Pipeline) Run(ctx context.Context, company model.Company) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	log.Printf("[pipeline] %s: starting", company.Name)
	p.persist(ctx, company, store.Patch{Status: string(StatusInProgress)})

	// ── Step 1: find jobs page ─────────────────────────────────────────
	p.persist(ctx, company, store.Patch{Status: string(StatusFindProgress)})

	found, err := p.agent.LocateJobsPage(ctx, company.URL)
	if err != nil {
		log.Printf("[pipeline] %s: jobs page search failed: %v", company.Name, err)
		p.persist(ctx, company, store.Patch{
			Status:       string(StatusFindFailed),
			ErrorMessage: ptr(err.Error()),
		})
		return ctx.Err()
	}

	if !found.Found {
		log.Printf("[pipeline] %s: no jobs page found", company.Name)
		p.persist(ctx, company, store.Patch{
			Status:       string(StatusFindNotFound),
			HasJobPage:   ptr(false),
			Jobs:         []model.JobListing{},
			ErrorMessage: ptr("No jobs page found"),
		})
		return nil
	}

	log.Printf("[pipeline] %s: found jobs page %s", company.Name, found.PageURL)
	p.persist(ctx, company, store.Patch{
		Status:      string(StatusFindComplete),
		HasJobPage:  ptr(true),
		JobsPageURL: ptr(found.PageURL),
		Jobs:        []model.JobListing{},
	})

	// ── Step 2: extract listings ───────────────────────────────────────
	p.persist(ctx, company, store.Patch{Status: string(StatusExtractProgress)})

	listings, err := p.agent.ExtractListings(ctx, found.PageURL)
	if err != nil {
		log.Printf("[pipeline] %s: listing extraction failed: %v", company.Name, err)
		p.persist(ctx, company, store.Patch{
			Status:       string(StatusExtractFailed),
			ErrorMessage: ptr(err.Error()),
		})
		return ctx.Err()
	}

	if len(p.exclude) > 0 {
		kept := ExcludeListings(listings, p.exclude)
		if dropped := len(listings) - len(kept); dropped > 0 {
			log.Printf("[pipeline] %s: dropped %d listing(s) on exclusion terms", company.Name, dropped)
		}
		listings = kept
	}

	if len(listings) == 0 {
		log.Printf("[pipeline] %s: no job listings found", company.Name)
		p.persist(ctx, company, store.Patch{
			Status:       string(StatusExtractNoJobs),
			Jobs:         []model.JobListing{},
			ErrorMessage: ptr("No jobs found"),
		})
		return nil
	}

	log.Printf("[pipeline] %s: extracted %d job(s)", company.Name, len(listings))
	p.persist(ctx, company, store.Patch{
		Status: string(StatusExtractComplete),
		Jobs:   listings,
	})
	return nil
}

// persist upserts one transition and emits the live event. A lost write is
// logged and swallowed: durability is best effort, and losing a status write
// must never abort an in-flight extraction.
func (p *Pipeline) persist(ctx context.Context, company model.Company, patch store.Patch) {
	key := store.Key{CompanyName: company.Name, CompanyURL: company.URL}
	if err := p.store.Upsert(ctx, key, patch); err != nil {
		slog.Warn("status write lost", "company", company.Name, "status", patch.Status, "err", err)
	}
	p.events.StatusChanged(ctx, company, patch.Status)
}

func ptr[T any](v T) *T { return &v }
