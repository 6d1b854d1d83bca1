package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"jobscout/discovery-service/internal/model"
)

const (
	schemaFindJobPage     = "find_job_page"
	schemaExtractListings = "extract_job_listings"

	opLocate  = "locate_jobs_page"
	opExtract = "extract_listings"
)

// Client talks to the agent-runner endpoint over JSON/HTTP. One POST per
// operation; the runner drives the browser and answers with a payload shaped
// by the requested schema.
type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewClient constructs a Client with a shared HTTP client. timeout bounds the
// whole agent run for one call, not individual navigations.
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

// taskRequest is the runner invocation envelope.
type taskRequest struct {
	Task   string `json:"task"`
	URL    string `json:"url"`
	Schema string `json:"schema"`
}

// taskResponse mirrors the runner's top-level response.
type taskResponse struct {
	Result json.RawMessage `json:"result"`
}

// findPayload mirrors the find_job_page schema.
type findPayload struct {
	HasJobsPage *bool   `json:"has_jobs_page"`
	JobsPageURL *string `json:"jobs_page_url"`
}

// listingsPayload mirrors the extract_job_listings schema.
type listingsPayload struct {
	Results []listingEntry `json:"results"`
}

type listingEntry struct {
	JobTitle   string  `json:"job_title"`
	URL        string  `json:"url"`
	Location   *string `json:"location"`
	CompanyURL *string `json:"company_url"`
}

// LocateJobsPage asks the agent whether url exposes a careers/jobs page.
func (c *Client) LocateJobsPage(ctx context.Context, url string) (FindResult, error) {
	task := fmt.Sprintf(`Goal: find if %s has an open job listings page.
- Navigate to the careers/jobs/join-us page via header/footer/nav or search.
- Confirm it is a jobs page (scroll if needed): you should see a list of job listings.
- If it exists, return the url of the jobs page.`, url)

	raw, err := c.run(ctx, task, url, schemaFindJobPage)
	if err != nil {
		return FindResult{}, &Error{Op: opLocate, Err: err}
	}

	var payload findPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return FindResult{}, &Error{Op: opLocate, Err: fmt.Errorf("malformed payload: %w", err)}
	}

	// A null has_jobs_page means the agent could not confirm a page —
	// recorded as a confirmed absence, matching a false.
	if payload.HasJobsPage == nil || !*payload.HasJobsPage {
		return FindResult{Found: false}, nil
	}
	if payload.JobsPageURL == nil || *payload.JobsPageURL == "" {
		return FindResult{}, &Error{Op: opLocate,
			Err: fmt.Errorf("payload reports a jobs page but carries no jobs_page_url")}
	}
	return FindResult{Found: true, PageURL: *payload.JobsPageURL}, nil
}

// ExtractListings pulls all matching job listings from pageURL.
func (c *Client) ExtractListings(ctx context.Context, pageURL string) ([]model.JobListing, error) {
	task := fmt.Sprintf(`Goal: extract job listings from %s.
- Confirm it is a jobs page (scroll if needed).
- Extract all matching roles: Web, Fullstack, Backend, Software (Engineer or Developer).
- Look for job titles, locations, and URLs.
- Complete the task when you find job listings or confirm none exist.`, pageURL)

	raw, err := c.run(ctx, task, pageURL, schemaExtractListings)
	if err != nil {
		return nil, &Error{Op: opExtract, Err: err}
	}

	var payload listingsPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &Error{Op: opExtract, Err: fmt.Errorf("malformed payload: %w", err)}
	}

	listings := make([]model.JobListing, 0, len(payload.Results))
	for i, entry := range payload.Results {
		if entry.JobTitle == "" || entry.URL == "" {
			return nil, &Error{Op: opExtract,
				Err: fmt.Errorf("result %d is missing job_title or url", i)}
		}
		listing := model.JobListing{JobTitle: entry.JobTitle, URL: entry.URL}
		if entry.Location != nil {
			listing.Location = *entry.Location
		}
		if entry.CompanyURL != nil {
			listing.CompanyURL = *entry.CompanyURL
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// run posts one task to the runner and returns the raw result payload.
func (c *Client) run(ctx context.Context, task, url, schema string) (json.RawMessage, error) {
	body, err := json.Marshal(taskRequest{Task: task, URL: url, Schema: schema})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint+"/v1/tasks", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http POST: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("agent runner returned %d: %s", resp.StatusCode, string(respBody))
	}

	var tr taskResponse
	if err := json.Unmarshal(respBody, &tr); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if len(tr.Result) == 0 || string(tr.Result) == "null" {
		return nil, fmt.Errorf("agent returned no result")
	}
	return tr.Result, nil
}
