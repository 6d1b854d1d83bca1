// Package pipeline drives one company through the two-step discovery process:
// find the careers page, then extract its job listings.
//
// Valid status graph (terminal states marked *):
//
//	in_progress ──► find_jobs_page_progress ──► find_jobs_page_complete
//	                         │                          │
//	                         ├──► find_jobs_page_not_found*
//	                         └──► find_jobs_page_failed*
//
//	find_jobs_page_complete ──► extract_job_listings_progress
//	                                     ├──► extract_job_listings_complete*
//	                                     ├──► extract_job_listings_no_jobs_found*
//	                                     └──► extract_job_listings_failed*
//
// Transitions only move forward; a terminal status ends the run for that
// company.
package pipeline

import "fmt"

// Status values mirror the status field persisted in company_results.
type Status string

const (
	StatusInProgress      Status = "in_progress"
	StatusFindProgress    Status = "find_jobs_page_progress"
	StatusFindComplete    Status = "find_jobs_page_complete"
	StatusFindNotFound    Status = "find_jobs_page_not_found"
	StatusFindFailed      Status = "find_jobs_page_failed"
	StatusExtractProgress Status = "extract_job_listings_progress"
	StatusExtractComplete Status = "extract_job_listings_complete"
	StatusExtractNoJobs   Status = "extract_job_listings_no_jobs_found"
	StatusExtractFailed   Status = "extract_job_listings_failed"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[Status][]Status{
	StatusInProgress:      {StatusFindProgress},
	StatusFindProgress:    {StatusFindComplete, StatusFindNotFound, StatusFindFailed},
	StatusFindComplete:    {StatusExtractProgress},
	StatusExtractProgress: {StatusExtractComplete, StatusExtractNoJobs, StatusExtractFailed},
	// terminal statuses have no outgoing transitions
}

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusInProgress, StatusFindProgress, StatusFindComplete,
		StatusFindNotFound, StatusFindFailed,
		StatusExtractProgress, StatusExtractComplete,
		StatusExtractNoJobs, StatusExtractFailed:
		return st, nil
	}
	return "", fmt.Errorf("unknown pipeline status %q", s)
}

// IsTransitionAllowed returns true when moving from → to is permitted by the
// state machine.
func IsTransitionAllowed(from, to Status) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal returns true when no further automated step runs after s.
func IsTerminal(s Status) bool {
	switch s {
	case StatusFindNotFound, StatusFindFailed,
		StatusExtractComplete, StatusExtractNoJobs, StatusExtractFailed:
		return true
	}
	return false
}
