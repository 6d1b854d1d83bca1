package store

import (
	"context"
	"sync"
	"time"

	"jobscout/discovery-service/internal/model"
)

// Memory is an in-process ResultStore with the same merge semantics as the
// Postgres adapter. It backs unit tests and local dry runs; writes to
// different keys are safe from concurrent goroutines.
type Memory struct {
	mu      sync.Mutex
	records map[Key]*model.CompanyRecord

	// Now is the clock used for processed_at/updated_at. Tests may replace it.
	Now func() time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		records: make(map[Key]*model.CompanyRecord),
		Now:     time.Now,
	}
}

// Upsert merges patch into the record for key, creating it if absent.
func (m *Memory) Upsert(_ context.Context, key Key, patch Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.Now()
	rec, ok := m.records[key]
	if !ok {
		rec = &model.CompanyRecord{
			CompanyName: key.CompanyName,
			CompanyURL:  key.CompanyURL,
			Jobs:        []model.JobListing{},
			ProcessedAt: now,
		}
		m.records[key] = rec
	}

	rec.Status = patch.Status
	if patch.HasJobPage != nil {
		rec.HasJobPage = patch.HasJobPage
	}
	if patch.JobsPageURL != nil {
		rec.JobsPageURL = *patch.JobsPageURL
	}
	if patch.ErrorMessage != nil {
		rec.ErrorMessage = *patch.ErrorMessage
	}
	if patch.Jobs != nil {
		rec.Jobs = append([]model.JobListing(nil), patch.Jobs...)
		rec.JobCount = len(patch.Jobs)
	}
	rec.UpdatedAt = now
	return nil
}

// Get returns a copy of the record for key, or ErrNotFound.
func (m *Memory) Get(_ context.Context, key Key) (*model.CompanyRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[key]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	cp.Jobs = make([]model.JobListing, len(rec.Jobs))
	copy(cp.Jobs, rec.Jobs)
	return &cp, nil
}

// DeleteMany removes records by status, or every record when statusFilter is
// empty.
func (m *Memory) DeleteMany(_ context.Context, statusFilter string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed int64
	for k, rec := range m.records {
		if statusFilter == "" || rec.Status == statusFilter {
			delete(m.records, k)
			removed++
		}
	}
	return removed, nil
}
