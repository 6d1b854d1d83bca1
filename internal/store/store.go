// Package store persists per-company discovery results.
//
// The store is a document-style upsert keyed by (company_name, company_url):
// each pipeline transition writes a partial Patch that is merged into the
// existing record, creating it on first write. processed_at is set once at
// creation; updated_at on every write.
package store

import (
	"context"
	"errors"

	"jobscout/discovery-service/internal/model"
)

// Key identifies one company record.
type Key struct {
	CompanyName string
	CompanyURL  string
}

// Patch is a partial record update. Status is always written. Nil optional
// fields leave the stored value untouched. A nil Jobs slice preserves the
// stored jobs and job_count; a non-nil slice (empty included) replaces them,
// and job_count is always recomputed from its length.
type Patch struct {
	Status       string
	Jobs         []model.JobListing
	HasJobPage   *bool
	JobsPageURL  *string
	ErrorMessage *string
}

// ErrNotFound is returned by Get when no record exists for the key.
var ErrNotFound = errors.New("company record not found")

// ResultStore is the persistence boundary used by the pipeline.
type ResultStore interface {
	Upsert(ctx context.Context, key Key, patch Patch) error
	Get(ctx context.Context, key Key) (*model.CompanyRecord, error)

	// DeleteMany removes records whose status matches statusFilter, or all
	// records when statusFilter is empty. Used by reset tooling only — the
	// pipeline never deletes.
	DeleteMany(ctx context.Context, statusFilter string) (int64, error)
}
