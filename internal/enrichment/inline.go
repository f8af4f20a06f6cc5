package enrichment

import (
	"context"
	"time"

	"github.com/Avi0202/hubspot-task/platform/logger"
)

const inlineTimeout = 2 * time.Minute

// InlineRunner runs enrichment on a detached goroutine inside the API
// process. It is the fallback scheduler when no Redis queue is configured;
// the goroutine carries its own timeout and is decoupled from the request
// context so the HTTP response never waits on it.
type InlineRunner struct {
	svc *Service
	log *logger.Logger
}

// NewInlineRunner creates the in-process scheduler.
func NewInlineRunner(svc *Service, log *logger.Logger) *InlineRunner {
	return &InlineRunner{svc: svc, log: log}
}

// ScheduleCompanyEnrichment detaches the enrichment run. It never returns an
// error once the goroutine is spawned; failures surface only in logs.
func (r *InlineRunner) ScheduleCompanyEnrichment(_ context.Context, companyID, companyName string) error {
	if r == nil || r.svc == nil || !r.svc.Enabled() {
		return nil
	}

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				r.log.Error("enrichment panicked", "company", companyName, "panic", rec)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), inlineTimeout)
		defer cancel()

		_ = r.svc.EnrichCompany(ctx, companyID, companyName)
	}()

	return nil
}
