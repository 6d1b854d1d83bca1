package store_test

import (
	"context"
	"testing"
	"time"

	"jobscout/discovery-service/internal/model"
	"jobscout/discovery-service/internal/store"
)

var key = store.Key{CompanyName: "Acme", CompanyURL: "https://acme.test"}

func ptr[T any](v T) *T { return &v }

func TestUpsert_CreatesRecord(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	if err := m.Upsert(ctx, key, store.Patch{Status: "in_progress"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	rec, err := m.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Status != "in_progress" {
		t.Errorf("status = %q, want in_progress", rec.Status)
	}
	if rec.Jobs == nil || len(rec.Jobs) != 0 {
		t.Errorf("jobs = %v, want empty non-nil default", rec.Jobs)
	}
	if rec.ProcessedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Error("timestamps must be set on creation")
	}
}

func TestUpsert_Idempotent(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m.Now = func() time.Time { return clock }

	patch := store.Patch{Status: "find_jobs_page_progress"}
	if err := m.Upsert(ctx, key, patch); err != nil {
		t.Fatalf("first Upsert: %v", err)
	}

	clock = clock.Add(30 * time.Second)
	if err := m.Upsert(ctx, key, patch); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	rec, err := m.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !rec.ProcessedAt.Equal(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("processed_at = %v, must keep the creation time", rec.ProcessedAt)
	}
	if !rec.UpdatedAt.After(rec.ProcessedAt) {
		t.Errorf("updated_at = %v, must advance past processed_at", rec.UpdatedAt)
	}
}

func TestUpsert_JobCountFollowsJobs(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	jobs := []model.JobListing{
		{JobTitle: "Backend Engineer", URL: "https://acme.test/1"},
		{JobTitle: "Web Developer", URL: "https://acme.test/2"},
	}
	if err := m.Upsert(ctx, key, store.Patch{Status: "extract_job_listings_complete", Jobs: jobs}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	rec, _ := m.Get(ctx, key)
	if rec.JobCount != 2 || len(rec.Jobs) != 2 {
		t.Errorf("job_count = %d, len(jobs) = %d, want 2 and 2", rec.JobCount, len(rec.Jobs))
	}
}

func TestUpsert_NilJobsPreservesCount(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	jobs := []model.JobListing{{JobTitle: "Backend Engineer", URL: "https://acme.test/1"}}
	if err := m.Upsert(ctx, key, store.Patch{Status: "extract_job_listings_complete", Jobs: jobs}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	// a later patch without a jobs list must not zero the count
	if err := m.Upsert(ctx, key, store.Patch{Status: "extract_job_listings_complete"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	rec, _ := m.Get(ctx, key)
	if rec.JobCount != 1 || len(rec.Jobs) != 1 {
		t.Errorf("job_count = %d, len(jobs) = %d, want the earlier list preserved", rec.JobCount, len(rec.Jobs))
	}
}

func TestUpsert_OptionalFieldsMerge(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	if err := m.Upsert(ctx, key, store.Patch{
		Status:      "find_jobs_page_complete",
		HasJobPage:  ptr(true),
		JobsPageURL: ptr("https://acme.test/careers"),
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := m.Upsert(ctx, key, store.Patch{Status: "extract_job_listings_progress"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	rec, _ := m.Get(ctx, key)
	if rec.Status != "extract_job_listings_progress" {
		t.Errorf("status = %q, want the later status", rec.Status)
	}
	if rec.HasJobPage == nil || !*rec.HasJobPage {
		t.Errorf("has_job_page = %v, want preserved true", rec.HasJobPage)
	}
	if rec.JobsPageURL != "https://acme.test/careers" {
		t.Errorf("jobs_page_url = %q, want preserved", rec.JobsPageURL)
	}
}

func TestGet_Missing(t *testing.T) {
	m := store.NewMemory()
	if _, err := m.Get(context.Background(), key); err != store.ErrNotFound {
		t.Errorf("Get on empty store = %v, want ErrNotFound", err)
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	jobs := []model.JobListing{{JobTitle: "Backend Engineer", URL: "https://acme.test/1"}}
	_ = m.Upsert(ctx, key, store.Patch{Status: "extract_job_listings_complete", Jobs: jobs})

	rec, _ := m.Get(ctx, key)
	rec.Jobs[0].JobTitle = "mutated"

	again, _ := m.Get(ctx, key)
	if again.Jobs[0].JobTitle != "Backend Engineer" {
		t.Error("Get must return a copy, not a view of the stored record")
	}
}

func TestDeleteMany(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	other := store.Key{CompanyName: "Globex", CompanyURL: "https://globex.test"}
	_ = m.Upsert(ctx, key, store.Patch{Status: "find_jobs_page_failed"})
	_ = m.Upsert(ctx, other, store.Patch{Status: "extract_job_listings_complete"})

	removed, err := m.DeleteMany(ctx, "find_jobs_page_failed")
	if err != nil {
		t.Fatalf("DeleteMany: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, err := m.Get(ctx, other); err != nil {
		t.Error("unmatched record must survive a filtered delete")
	}

	removed, _ = m.DeleteMany(ctx, "")
	if removed != 1 {
		t.Errorf("unfiltered delete removed %d, want the remaining 1", removed)
	}
}
