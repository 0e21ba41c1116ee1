// lead-rescore recomputes the score and priority of every stored lead with
// the current scoring configuration. Run it after changing score weights or
// mapping tables.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"agency_portal_backend/internal/events"
	"agency_portal_backend/internal/leads"
	"agency_portal_backend/platform/cache"
	"agency_portal_backend/platform/config"
	"agency_portal_backend/platform/db"
	"agency_portal_backend/platform/logger"
	"agency_portal_backend/platform/tabular"
	"agency_portal_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := tabular.NewPostgresStore(pool)
	eventBus := events.NewInMemoryBus(log)

	leadsModule, err := leads.NewModule(store, cache.NewMemoryCache(cfg.CacheTTL), eventBus, validator.New(), cfg, log)
	if err != nil {
		log.Error("failed to initialize leads module", "error", err)
		os.Exit(1)
	}

	updated, err := leadsModule.ManagementService().Rescore(ctx)
	if err != nil {
		log.Error("rescore failed", "error", err)
		os.Exit(1)
	}

	log.Info("rescore complete", "updated", updated)
}
