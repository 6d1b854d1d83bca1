package config_test

import (
	"testing"
	"time"

	"jobscout/discovery-service/internal/config"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/jobscout")
	t.Setenv("AGENT_ENDPOINT", "http://localhost:9090")
	for _, name := range []string{
		"BATCH_SIZE", "MAX_CONCURRENT_PER_BATCH", "BATCH_DELAY_SECONDS",
		"AGENT_TIMEOUT_SECONDS", "DISCOVERY_INTERVAL_HOURS",
		"DISCOVERY_EXCLUDE_TERMS", "COMPANIES_FILE", "REDIS_URL",
	} {
		t.Setenv(name, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BatchSize != 2 || cfg.MaxConcurrentPerBatch != 2 {
		t.Errorf("batch defaults = %d/%d, want 2/2", cfg.BatchSize, cfg.MaxConcurrentPerBatch)
	}
	if cfg.BatchDelay != 2*time.Second {
		t.Errorf("BatchDelay = %v, want 2s", cfg.BatchDelay)
	}
	if cfg.AgentTimeout != 120*time.Second {
		t.Errorf("AgentTimeout = %v, want 120s", cfg.AgentTimeout)
	}
	if cfg.IntervalHours != 0 {
		t.Errorf("IntervalHours = %d, want 0 (run once)", cfg.IntervalHours)
	}
	if cfg.CompaniesFile != "companies_list.md" {
		t.Errorf("CompaniesFile = %q, want companies_list.md", cfg.CompaniesFile)
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("AGENT_ENDPOINT", "http://localhost:9090")

	if _, err := config.Load(); err == nil {
		t.Error("Load without DATABASE_URL should fail")
	}
}

func TestLoad_MissingAgentEndpoint(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/jobscout")
	t.Setenv("AGENT_ENDPOINT", "")

	if _, err := config.Load(); err == nil {
		t.Error("Load without AGENT_ENDPOINT should fail")
	}
}

func TestLoad_ConcurrencyClampedToBatchSize(t *testing.T) {
	setRequired(t)
	t.Setenv("BATCH_SIZE", "3")
	t.Setenv("MAX_CONCURRENT_PER_BATCH", "10")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxConcurrentPerBatch != 3 {
		t.Errorf("MaxConcurrentPerBatch = %d, want clamped to 3", cfg.MaxConcurrentPerBatch)
	}
}

func TestLoad_RejectsBadNumbers(t *testing.T) {
	cases := map[string]string{
		"BATCH_SIZE":               "zero",
		"MAX_CONCURRENT_PER_BATCH": "0",
		"BATCH_DELAY_SECONDS":      "-1",
		"DISCOVERY_INTERVAL_HOURS": "-2",
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(name, value)
			if _, err := config.Load(); err == nil {
				t.Errorf("Load with %s=%q should fail", name, value)
			}
		})
	}
}

func TestLoad_ExcludeTerms(t *testing.T) {
	setRequired(t)
	t.Setenv("DISCOVERY_EXCLUDE_TERMS", "sales, recruiter , ")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.ExcludeTerms) != 2 || cfg.ExcludeTerms[0] != "sales" || cfg.ExcludeTerms[1] != "recruiter" {
		t.Errorf("ExcludeTerms = %v, want [sales recruiter]", cfg.ExcludeTerms)
	}
}

func TestLoad_TrimsEndpointSlash(t *testing.T) {
	setRequired(t)
	t.Setenv("AGENT_ENDPOINT", "http://localhost:9090/")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AgentEndpoint != "http://localhost:9090" {
		t.Errorf("AgentEndpoint = %q, want trailing slash trimmed", cfg.AgentEndpoint)
	}
}
