package scheduler

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
)

type stubSchedulerConfig struct {
	redisURL string
	queue    string
}

func (c stubSchedulerConfig) GetRedisURL() string       { return c.redisURL }
func (c stubSchedulerConfig) GetRedisTLSInsecure() bool { return false }
func (c stubSchedulerConfig) GetAsynqQueueName() string { return c.queue }
func (c stubSchedulerConfig) GetAsynqConcurrency() int  { return 1 }

func TestNewClient_RequiresRedisURL(t *testing.T) {
	if _, err := NewClient(stubSchedulerConfig{}); err == nil {
		t.Fatalf("expected error without redis url")
	}
}

func TestScheduleCompanyEnrichment_Enqueues(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(stubSchedulerConfig{redisURL: "redis://" + mr.Addr(), queue: "enrichment"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = client.Close() }()

	if err := client.ScheduleCompanyEnrichment(context.Background(), "company-1", "Acme Transport"); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: mr.Addr()})
	defer func() { _ = inspector.Close() }()

	tasks, err := inspector.ListPendingTasks("enrichment")
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 pending task, got %d", len(tasks))
	}
	if tasks[0].Type != TaskCompanyEnrich {
		t.Fatalf("unexpected task type %q", tasks[0].Type)
	}

	payload, err := ParseCompanyEnrichPayload(asynq.NewTask(tasks[0].Type, tasks[0].Payload))
	if err != nil {
		t.Fatalf("parse payload: %v", err)
	}
	if payload.CompanyID != "company-1" || payload.CompanyName != "Acme Transport" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if tasks[0].MaxRetry != 0 {
		t.Fatalf("expected no retries, got %d", tasks[0].MaxRetry)
	}
}

func TestNilClientIsSafe(t *testing.T) {
	var client *Client
	if err := client.ScheduleCompanyEnrichment(context.Background(), "company-1", "Acme"); err != nil {
		t.Fatalf("nil client should be a no-op, got %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("nil client close should be a no-op, got %v", err)
	}
}
