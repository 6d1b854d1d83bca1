package pipeline

import (
	"strings"

	"jobscout/discovery-service/internal/model"
)

// ExcludeListings returns the listings whose title matches no exclusion term
// (case-insensitive substring match). Order is preserved. With no terms the
// input is returned unchanged.
func ExcludeListings(listings []model.JobListing, terms []string) []model.JobListing {
	if len(terms) == 0 {
		return listings
	}

	kept := make([]model.JobListing, 0, len(listings))
	for _, l := range listings {
		if !containsTerm(l.JobTitle, terms) {
			kept = append(kept, l)
		}
	}
	return kept
}

func containsTerm(title string, terms []string) bool {
	lower := strings.ToLower(title)
	for _, t := range terms {
		if t == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(t)) {
			return true
		}
	}
	return false
}
