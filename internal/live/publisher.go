// Package live publishes pipeline status changes to Redis so external
// watchers can follow a run company by company.
package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"jobscout/discovery-service/internal/model"
)

// Channel carries one event per persisted status transition.
const Channel = "EVENT_COMPANY_STATUS"

// Publisher is a best-effort event emitter. A nil Publisher (or one built
// from a nil client) drops every event, so callers never have to branch on
// whether Redis is configured.
type Publisher struct {
	rdb *redis.Client
}

// NewPublisher wraps rdb; rdb may be nil.
func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

// StatusChanged publishes a transition event. Failures are logged and
// swallowed — observability must never stall the pipeline.
func (p *Publisher) StatusChanged(ctx context.Context, company model.Company, status string) {
	if p == nil || p.rdb == nil {
		return
	}

	event, _ := json.Marshal(map[string]string{
		"type":        Channel,
		"companyName": company.Name,
		"companyUrl":  company.URL,
		"status":      status,
		"at":          time.Now().UTC().Format(time.RFC3339),
	})
	if err := p.rdb.Publish(ctx, Channel, event).Err(); err != nil {
		slog.Warn("publish EVENT_COMPANY_STATUS failed", "company", company.Name, "err", err)
	}
}
