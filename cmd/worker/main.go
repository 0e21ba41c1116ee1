// The worker processes queued background tasks, currently provisioning
// backfills for leads whose conversion failed mid-pipeline.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"agency_portal_backend/internal/clients"
	"agency_portal_backend/internal/events"
	leadrepo "agency_portal_backend/internal/leads/repository"
	"agency_portal_backend/internal/projects"
	"agency_portal_backend/internal/provisioning"
	"agency_portal_backend/internal/scheduler"
	"agency_portal_backend/platform/cache"
	"agency_portal_backend/platform/config"
	"agency_portal_backend/platform/db"
	"agency_portal_backend/platform/logger"
	"agency_portal_backend/platform/tabular"
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

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	store := tabular.NewPostgresStore(pool)
	eventBus := events.NewInMemoryBus(log)

	// The worker retries provisioning only; a failure here re-queues via
	// asynq's own retry policy, so no backfill enqueuer is wired.
	leads := leadrepo.New(store, cache.NewMemoryCache(cfg.CacheTTL), log)
	clientsModule := clients.NewModule(store, log)
	projectsModule := projects.NewModule(store, log)
	pipeline := provisioning.New(
		clientsModule.Service(),
		projectsModule.Service(),
		leads,
		eventBus,
		nil,
		log,
	)

	worker, err := scheduler.NewWorker(cfg, pipeline, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	go func() {
		<-ctx.Done()
		log.Info("shutdown signal received, stopping worker")
		worker.Shutdown()
	}()

	if err := worker.Run(); err != nil {
		log.Error("worker error", "error", err)
		panic("worker error: " + err.Error())
	}
	log.Info("worker stopped")
}
