package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"jobscout/discovery-service/internal/model"
)

// Postgres implements ResultStore on a company_results table, with the jobs
// list held as JSONB. The ON CONFLICT merge mirrors a Mongo-style
// $set + $setOnInsert upsert: processed_at appears only in the insert column
// list, optional fields merge with COALESCE so a patch that omits them can
// never clobber earlier writes.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs the adapter.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// EnsureSchema creates the company_results table if it does not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS company_results (
			company_name  TEXT NOT NULL,
			company_url   TEXT NOT NULL,
			status        TEXT NOT NULL,
			has_job_page  BOOLEAN,
			jobs_page_url TEXT,
			jobs          JSONB NOT NULL DEFAULT '[]'::jsonb,
			job_count     INTEGER NOT NULL DEFAULT 0,
			error_message TEXT,
			processed_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (company_name, company_url)
		)`)
	if err != nil {
		return fmt.Errorf("create company_results: %w", err)
	}
	return nil
}

// Upsert merges patch into the record for key, creating it if absent.
func (p *Postgres) Upsert(ctx context.Context, key Key, patch Patch) error {
	var jobsJSON *string
	var jobCount *int
	if patch.Jobs != nil {
		raw, err := json.Marshal(patch.Jobs)
		if err != nil {
			return fmt.Errorf("marshal jobs: %w", err)
		}
		s := string(raw)
		n := len(patch.Jobs)
		jobsJSON = &s
		jobCount = &n
	}

	_, err := p.pool.Exec(ctx, `
		INSERT INTO company_results
			(company_name, company_url, status, has_job_page, jobs_page_url,
			 jobs, job_count, error_message, processed_at, updated_at)
		VALUES ($1, $2, $3, $4, $5,
		        COALESCE($6::jsonb, '[]'::jsonb), COALESCE($7, 0), $8, NOW(), NOW())
		ON CONFLICT (company_name, company_url) DO UPDATE SET
			status        = EXCLUDED.status,
			has_job_page  = COALESCE($4, company_results.has_job_page),
			jobs_page_url = COALESCE($5, company_results.jobs_page_url),
			jobs          = COALESCE($6::jsonb, company_results.jobs),
			job_count     = COALESCE($7, company_results.job_count),
			error_message = COALESCE($8, company_results.error_message),
			updated_at    = NOW()`,
		key.CompanyName, key.CompanyURL, patch.Status,
		patch.HasJobPage, patch.JobsPageURL, jobsJSON, jobCount, patch.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("upsert company_results: %w", err)
	}
	return nil
}

// Get returns the record for key, or ErrNotFound.
func (p *Postgres) Get(ctx context.Context, key Key) (*model.CompanyRecord, error) {
	var (
		rec      model.CompanyRecord
		pageURL  *string
		errMsg   *string
		jobsJSON []byte
	)
	err := p.pool.QueryRow(ctx, `
		SELECT company_name, company_url, status, has_job_page, jobs_page_url,
		       jobs, job_count, error_message, processed_at, updated_at
		FROM company_results
		WHERE company_name = $1 AND company_url = $2`,
		key.CompanyName, key.CompanyURL,
	).Scan(
		&rec.CompanyName, &rec.CompanyURL, &rec.Status, &rec.HasJobPage, &pageURL,
		&jobsJSON, &rec.JobCount, &errMsg, &rec.ProcessedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, ErrNotFound
	}

	if pageURL != nil {
		rec.JobsPageURL = *pageURL
	}
	if errMsg != nil {
		rec.ErrorMessage = *errMsg
	}
	if err := json.Unmarshal(jobsJSON, &rec.Jobs); err != nil {
		return nil, fmt.Errorf("unmarshal jobs for %s: %w", key.CompanyName, err)
	}
	return &rec, nil
}

// DeleteMany removes records by status, or every record when statusFilter is
// empty.
func (p *Postgres) DeleteMany(ctx context.Context, statusFilter string) (int64, error) {
	if statusFilter == "" {
		tag, err := p.pool.Exec(ctx, `DELETE FROM company_results`)
		if err != nil {
			return 0, fmt.Errorf("delete company_results: %w", err)
		}
		return tag.RowsAffected(), nil
	}
	tag, err := p.pool.Exec(ctx,
		`DELETE FROM company_results WHERE status = $1`, statusFilter)
	if err != nil {
		return 0, fmt.Errorf("delete company_results: %w", err)
	}
	return tag.RowsAffected(), nil
}
