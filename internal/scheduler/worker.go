package scheduler

import (
	"context"
	"fmt"

	"github.com/Avi0202/hubspot-task/internal/enrichment"
	"github.com/Avi0202/hubspot-task/platform/config"
	"github.com/Avi0202/hubspot-task/platform/logger"

	"github.com/hibiken/asynq"
)

// Worker consumes background jobs from the asynq queue.
type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	enricher *enrichment.Service
	log      *logger.Logger
}

// NewWorker creates the queue worker.
func NewWorker(cfg config.SchedulerConfig, enricher *enrichment.Service, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		enricher: enricher,
		log:      log,
	}

	mux.HandleFunc(TaskCompanyEnrich, w.handleCompanyEnrich)

	return w, nil
}

// handleCompanyEnrich runs one enrichment job. Failures are logged and the
// task is acked regardless: enrichment has no retry policy and its outcome
// is invisible to the request that scheduled it.
func (w *Worker) handleCompanyEnrich(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseCompanyEnrichPayload(task)
	if err != nil {
		w.log.Error("company enrich payload malformed", "error", err)
		return nil
	}

	if err := w.enricher.EnrichCompany(ctx, payload.CompanyID, payload.CompanyName); err != nil {
		w.log.Warn("company enrich job failed", "companyId", payload.CompanyID, "error", err.Error())
	}
	return nil
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
