package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agency_portal_backend/internal/clients"
	"agency_portal_backend/internal/discovery"
	"agency_portal_backend/internal/email"
	"agency_portal_backend/internal/events"
	apphttp "agency_portal_backend/internal/http"
	"agency_portal_backend/internal/leads"
	"agency_portal_backend/internal/projects"
	"agency_portal_backend/internal/provisioning"
	"agency_portal_backend/internal/scheduler"
	platformcache "agency_portal_backend/platform/cache"
	"agency_portal_backend/platform/config"
	"agency_portal_backend/platform/db"
	"agency_portal_backend/platform/logger"
	"agency_portal_backend/platform/tabular"
	"agency_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	store := tabular.NewPostgresStore(pool)

	leadCache, closeCache := initCache(cfg, log)
	if closeCache != nil {
		defer closeCache()
	}

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	backfillClient, closeBackfill := initBackfill(cfg, log)
	if closeBackfill != nil {
		defer closeBackfill()
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	leadsModule, err := leads.NewModule(store, leadCache, eventBus, val, cfg, log)
	if err != nil {
		log.Error("failed to initialize leads module", "error", err)
		panic("failed to initialize leads module: " + err.Error())
	}
	discoveryModule := discovery.NewModule(store, eventBus, log)
	clientsModule := clients.NewModule(store, log)
	projectsModule := projects.NewModule(store, log)

	// Provisioning subscribes to lead status changes; it is not HTTP-facing.
	var backfill provisioning.BackfillEnqueuer
	if backfillClient != nil {
		backfill = backfillClient
	}
	pipeline := provisioning.New(
		clientsModule.Service(),
		projectsModule.Service(),
		leadsModule.Repository(),
		eventBus,
		backfill,
		log,
	)
	pipeline.Subscribe(eventBus)

	// Alert emails for hot leads and provisioning failures.
	email.NewNotifier(cfg, log).Subscribe(eventBus)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: pool,
		Modules: []apphttp.Module{
			leadsModule,
			discoveryModule,
			clientsModule,
			projectsModule,
		},
	}

	engine := apphttp.NewRouter(app)
	if err := apphttp.Serve(ctx, app, engine); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
	log.Info("server stopped")
}

// initCache prefers Redis so invalidation reaches every instance; without
// REDIS_URL each process falls back to its own in-memory cache.
func initCache(cfg config.CacheConfig, log *logger.Logger) (platformcache.Cache, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; using per-process lead cache")
		return platformcache.NewMemoryCache(cfg.GetCacheTTL()), nil
	}

	redisCache, err := platformcache.NewRedisCache(cfg.GetRedisURL(), "leads", cfg.GetCacheTTL())
	if err != nil {
		log.Error("failed to connect to redis cache, falling back to memory", "error", err)
		return platformcache.NewMemoryCache(cfg.GetCacheTTL()), nil
	}
	return redisCache, func() {
		_ = redisCache.Close()
	}
}

// initBackfill returns nil when no Redis is configured; the pipeline treats a
// nil enqueuer as "no retry path".
func initBackfill(cfg config.SchedulerConfig, log *logger.Logger) (*scheduler.Client, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; provisioning backfill disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize backfill client", "error", err)
		return nil, nil
	}
	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
