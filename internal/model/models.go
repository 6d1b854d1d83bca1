// Package model defines shared data structures for the discovery service.
package model

import "time"

// Company is one entry from the external company list. Identity is the
// (Name, URL) pair; it never changes during a run.
type Company struct {
	Name string
	URL  string
}

// JobListing is a single extracted job opening. It is converted to JSON and
// stored in company_results.jobs (JSONB). Immutable once extracted.
type JobListing struct {
	JobTitle   string `json:"job_title"`
	URL        string `json:"url"`
	Location   string `json:"location,omitempty"`
	CompanyURL string `json:"company_url,omitempty"`
}

// CompanyRecord is the persisted per-company pipeline document, upserted on
// every status transition. Exactly one record exists per (CompanyName,
// CompanyURL) pair.
type CompanyRecord struct {
	CompanyName  string       `json:"company_name"`
	CompanyURL   string       `json:"company_url"`
	Status       string       `json:"status"`
	HasJobPage   *bool        `json:"has_job_page,omitempty"`
	JobsPageURL  string       `json:"jobs_page_url,omitempty"`
	Jobs         []JobListing `json:"jobs"`
	JobCount     int          `json:"job_count"`
	ErrorMessage string       `json:"error_message,omitempty"`
	ProcessedAt  time.Time    `json:"processed_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
