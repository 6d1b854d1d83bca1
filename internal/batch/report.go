package batch

import (
	"log"
	"time"
)

// Summary aggregates batch outcomes for a whole run. It is pure data —
// derived values are computed on demand and nothing here touches the store.
type Summary struct {
	TotalCompanies  int
	TotalSuccessful int
	TotalFailed     int
	Batches         []Outcome
	Duration        time.Duration
}

// SuccessRate returns the percentage of successful companies, or 0 when
// nothing was counted.
func (s Summary) SuccessRate() float64 {
	total := s.TotalSuccessful + s.TotalFailed
	if total == 0 {
		return 0
	}
	return float64(s.TotalSuccessful) / float64(total) * 100
}

// AveragePerCompany returns the mean wall time spent per company, or 0 for
// an empty run.
func (s Summary) AveragePerCompany() time.Duration {
	if s.TotalCompanies == 0 {
		return 0
	}
	return s.Duration / time.Duration(s.TotalCompanies)
}

// Log prints the run summary. Called once at the end of every run, including
// cancelled ones — whatever completed is still reported.
func (s Summary) Log() {
	log.Printf("[report] all batches completed (%d)", len(s.Batches))
	log.Printf("[report] total successful: %d", s.TotalSuccessful)
	log.Printf("[report] total failed: %d", s.TotalFailed)
	log.Printf("[report] success rate: %.1f%%", s.SuccessRate())
	log.Printf("[report] total time: %.1fs", s.Duration.Seconds())
	log.Printf("[report] average per company: %.1fs", s.AveragePerCompany().Seconds())
}
