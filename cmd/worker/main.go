package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Avi0202/hubspot-task/internal/agent"
	"github.com/Avi0202/hubspot-task/internal/enrichment"
	"github.com/Avi0202/hubspot-task/internal/hubspot"
	"github.com/Avi0202/hubspot-task/internal/scheduler"
	"github.com/Avi0202/hubspot-task/platform/config"
	"github.com/Avi0202/hubspot-task/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env, "queue", cfg.AsynqQueueName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	crmClient := hubspot.NewClient(cfg, log)
	resolver := hubspot.NewResolver(crmClient, log)
	agentClient := agent.NewClient(log)
	enricher := enrichment.NewService(agentClient, resolver, cfg, log)

	worker, err := scheduler.NewWorker(cfg, enricher, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	worker.Run(ctx)
}
