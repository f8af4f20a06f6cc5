package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Avi0202/hubspot-task/internal/agent"
	"github.com/Avi0202/hubspot-task/internal/distance"
	"github.com/Avi0202/hubspot-task/internal/email"
	"github.com/Avi0202/hubspot-task/internal/enrichment"
	apphttp "github.com/Avi0202/hubspot-task/internal/http"
	"github.com/Avi0202/hubspot-task/internal/http/router"
	"github.com/Avi0202/hubspot-task/internal/hubspot"
	"github.com/Avi0202/hubspot-task/internal/location"
	"github.com/Avi0202/hubspot-task/internal/quote"
	quoterepo "github.com/Avi0202/hubspot-task/internal/quote/repository"
	quotesvc "github.com/Avi0202/hubspot-task/internal/quote/service"
	"github.com/Avi0202/hubspot-task/internal/scheduler"
	"github.com/Avi0202/hubspot-task/internal/vehicle"
	"github.com/Avi0202/hubspot-task/platform/config"
	"github.com/Avi0202/hubspot-task/platform/db"
	"github.com/Avi0202/hubspot-task/platform/logger"
	"github.com/Avi0202/hubspot-task/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	var pool *pgxpool.Pool
	if cfg.IsDatabaseEnabled() {
		if err := db.RunMigrations(ctx, cfg, "migrations"); err != nil {
			log.Error("failed to run database migrations", "error", err)
			panic("failed to run database migrations: " + err.Error())
		}
		log.Info("database migrations complete")

		pool, err = db.NewPool(ctx, cfg)
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			panic("failed to connect to database: " + err.Error())
		}
		defer pool.Close()
		log.Info("database connection established")
	} else {
		log.Warn("DATABASE_URL not configured; route history served from samples")
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Collaborator Clients
	// ========================================================================

	crmClient := hubspot.NewClient(cfg, log)
	resolver := hubspot.NewResolver(crmClient, log)
	associations := hubspot.NewAssociations(crmClient, log)
	distanceClient := distance.NewClient(cfg, log)
	agentClient := agent.NewClient(log)
	sender := email.NewSender(cfg)

	enricher := enrichment.NewService(agentClient, resolver, cfg, log)
	enrichScheduler, closeScheduler := initEnrichmentScheduler(cfg, enricher, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	var routes quotesvc.RouteHistoryProvider
	if pool != nil {
		routes = quoterepo.NewRouteHistoryRepo(pool, log)
	} else {
		routes = quoterepo.NewStaticRouteHistory()
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	composer := quotesvc.NewEmailComposer(agentClient, cfg, log)
	quoteService := quotesvc.NewService(
		resolver,
		associations,
		distanceClient,
		quotesvc.NewPricingEngine(),
		routes,
		enrichScheduler,
		composer,
		sender,
		log,
	)

	modules := []apphttp.Module{
		quote.NewModule(quoteService, val, log),
		hubspot.NewModule(resolver, log),
		vehicle.NewModule(cfg, log),
		location.NewModule(cfg, log),
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	engine := router.New(cfg, log, modules)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initEnrichmentScheduler prefers the Redis-backed queue so enrichment
// survives process restarts; without Redis the run detaches in-process.
func initEnrichmentScheduler(cfg *config.Config, enricher *enrichment.Service, log *logger.Logger) (quotesvc.EnrichmentScheduler, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; company enrichment runs in-process")
		return enrichment.NewInlineRunner(enricher, log), nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize enrichment scheduler client", "error", err)
		return enrichment.NewInlineRunner(enricher, log), nil
	}

	return client, func() {
		_ = client.Close()
	}
}
