// Package agent wraps the external browser-driving extraction capability.
//
// The capability is a black box: it takes a natural-language task plus a
// target URL and either returns a schema-conforming payload or fails. Both
// operations are single-shot — retry policy belongs to callers, since a
// repeated browser navigation is neither cheap nor side-effect free.
package agent

import (
	"context"
	"fmt"

	"jobscout/discovery-service/internal/model"
)

// FindResult is the outcome of a careers-page search.
type FindResult struct {
	Found   bool
	PageURL string
}

// ExtractionClient is the boundary the pipeline calls. Implementations must
// give every call an isolated browser context — no session state may be
// shared between concurrent calls.
type ExtractionClient interface {
	// LocateJobsPage determines whether url leads to a careers/jobs page.
	// Found=false is a confirmed absence, not an error.
	LocateJobsPage(ctx context.Context, url string) (FindResult, error)

	// ExtractListings pulls job listings from a known jobs page, in page
	// order. An empty slice means the page was read but held no matching
	// roles.
	ExtractListings(ctx context.Context, pageURL string) ([]model.JobListing, error)
}

// Error is returned for any failure of the external capability: transport
// errors, timeouts, and malformed or absent payloads alike.
type Error struct {
	Op  string // "locate_jobs_page" or "extract_listings"
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("extraction %s: %v", e.Op, e.Err) }

func (e *Error) Unwrap() error { return e.Err }
