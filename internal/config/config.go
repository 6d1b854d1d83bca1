// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration for the discovery service.
type Config struct {
	DatabaseURL string
	RedisURL    string // optional — empty disables live status events

	AgentEndpoint string
	AgentAPIKey   string
	AgentTimeout  time.Duration // per extraction call

	CompaniesFile string

	BatchSize             int
	MaxConcurrentPerBatch int
	BatchDelay            time.Duration // pause between batches
	IntervalHours         int           // 0 = run once and exit
	ExcludeTerms          []string      // discard listings whose title matches
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	endpoint := os.Getenv("AGENT_ENDPOINT")
	if endpoint == "" {
		return nil, fmt.Errorf("AGENT_ENDPOINT is required")
	}

	agentTimeout, err := intEnv("AGENT_TIMEOUT_SECONDS", 120)
	if err != nil {
		return nil, err
	}

	batchSize, err := intEnv("BATCH_SIZE", 2)
	if err != nil {
		return nil, err
	}

	maxConcurrent, err := intEnv("MAX_CONCURRENT_PER_BATCH", 2)
	if err != nil {
		return nil, err
	}
	if maxConcurrent > batchSize {
		maxConcurrent = batchSize
	}

	batchDelay := 2
	if s := os.Getenv("BATCH_DELAY_SECONDS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("BATCH_DELAY_SECONDS must be a non-negative integer, got %q", s)
		}
		batchDelay = v
	}

	interval := 0
	if s := os.Getenv("DISCOVERY_INTERVAL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("DISCOVERY_INTERVAL_HOURS must be a non-negative integer, got %q", s)
		}
		interval = v
	}

	companiesFile := os.Getenv("COMPANIES_FILE")
	if companiesFile == "" {
		companiesFile = "companies_list.md"
	}

	return &Config{
		DatabaseURL:           dbURL,
		RedisURL:              os.Getenv("REDIS_URL"),
		AgentEndpoint:         strings.TrimRight(endpoint, "/"),
		AgentAPIKey:           os.Getenv("AGENT_API_KEY"),
		AgentTimeout:          time.Duration(agentTimeout) * time.Second,
		CompaniesFile:         companiesFile,
		BatchSize:             batchSize,
		MaxConcurrentPerBatch: maxConcurrent,
		BatchDelay:            time.Duration(batchDelay) * time.Second,
		IntervalHours:         interval,
		ExcludeTerms:          splitTerms(os.Getenv("DISCOVERY_EXCLUDE_TERMS")),
	}, nil
}

// intEnv reads a positive integer env var with a default.
func intEnv(name string, def int) (int, error) {
	s := os.Getenv(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, s)
	}
	return v, nil
}

func splitTerms(s string) []string {
	if s == "" {
		return nil
	}
	var terms []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}
