package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/lovenest/storefront/api/routes"
	"github.com/lovenest/storefront/internal/catalog"
	"github.com/lovenest/storefront/internal/checkout"
	"github.com/lovenest/storefront/internal/cron"
	"github.com/lovenest/storefront/internal/sessions"
	"github.com/lovenest/storefront/internal/snapshot"
	"github.com/lovenest/storefront/pkg/config"
	"github.com/lovenest/storefront/pkg/db"
	"github.com/lovenest/storefront/pkg/enums"
	"github.com/lovenest/storefront/pkg/env"
	"github.com/lovenest/storefront/pkg/logger"
	"github.com/lovenest/storefront/pkg/metrics"
	"github.com/lovenest/storefront/pkg/migrate"
	"github.com/lovenest/storefront/pkg/redis"
)

const (
	serviceName     = "api"
	shutdownTimeout = 15 * time.Second
)

func main() {
	logg := logger.New(logger.Options{ServiceName: serviceName})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server shut down gracefully")
}

// infra holds the optional connections a snapshot backend may sit on.
type infra struct {
	redis *redis.Client
	db    *db.Client
}

func (i infra) Close() error {
	var err error
	if i.redis != nil {
		err = multierr.Append(err, i.redis.Close())
	}
	if i.db != nil {
		err = multierr.Append(err, i.db.Close())
	}
	return err
}

func bootstrapInfra(ctx context.Context, cfg *config.Config, kind enums.SnapshotBackend, logg *logger.Logger) (infra, error) {
	var deps infra
	if kind == enums.SnapshotBackendRedis {
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return deps, fmt.Errorf("bootstrap redis: %w", err)
		}
		deps.redis = client
	}
	if kind == enums.SnapshotBackendDB {
		client, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return deps, multierr.Append(fmt.Errorf("bootstrap database: %w", err), deps.Close())
		}
		deps.db = client
		if err := migrate.MaybeRun(ctx, cfg, logg, client); err != nil {
			return deps, multierr.Append(fmt.Errorf("run migrations: %w", err), deps.Close())
		}
	}
	return deps, nil
}

func maintenanceLock(cfg *config.Config, deps infra) (cron.Lock, error) {
	if deps.redis == nil {
		return &cron.LocalLock{}, nil
	}
	lock, err := cron.NewRedisLock(deps.redis, deps.redis.LockKey("snapshot-maintenance", cfg.App.Env), 0)
	if err != nil {
		return nil, err
	}
	return lock, nil
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	kind, err := cfg.Snapshot.Kind()
	if err != nil {
		return err
	}

	deps, err := bootstrapInfra(ctx, cfg, kind, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, deps.Close())
	}()

	backend, err := snapshot.New(kind, snapshot.Deps{
		Redis: deps.redis,
		DB:    deps.db,
		Dir:   cfg.Snapshot.Dir,
		TTL:   cfg.Snapshot.TTL,
	})
	if err != nil {
		return fmt.Errorf("build snapshot backend: %w", err)
	}

	storeMetrics := metrics.NewStoreMetrics(prometheus.DefaultRegisterer)
	jobMetrics := metrics.NewJobMetrics(prometheus.DefaultRegisterer)
	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	manager := sessions.NewManager(sessions.Options{
		Backend:      backend,
		Logger:       logg.Component("sessions"),
		StoreMetrics: storeMetrics,
		JobMetrics:   jobMetrics,
		IdleTTL:      cfg.Session.IdleTTL,
		WriteTimeout: cfg.Snapshot.WriteTimeout,
	})
	defer func() {
		// Flushes every session's pending cart snapshot before infra closes.
		err = multierr.Append(err, manager.Close())
	}()

	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		Rules:   checkout.RulesFromConfig(cfg.Checkout),
		Metrics: storeMetrics,
		Logger:  logg.Component("checkout"),
	})
	if err != nil {
		return fmt.Errorf("build checkout service: %w", err)
	}

	lock, err := maintenanceLock(cfg, deps)
	if err != nil {
		return fmt.Errorf("build maintenance lock: %w", err)
	}
	jobs := cron.NewRegistry()
	if purger, ok := backend.(cron.Purger); ok {
		job, err := cron.NewSnapshotPurgeJob(purger, logg.Component("cron"))
		if err != nil {
			return err
		}
		jobs.Register(job)
	}
	maintenance, err := cron.NewService(cron.ServiceParams{
		Logger:   logg.Component("cron"),
		Registry: jobs,
		Lock:     lock,
		Metrics:  jobMetrics,
		Interval: cfg.Snapshot.PurgeInterval,
	})
	if err != nil {
		return fmt.Errorf("build maintenance scheduler: %w", err)
	}

	// Hosting platforms inject PORT; it wins over the configured port.
	addr := ":" + env.Get("PORT", cfg.App.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, prometheus.DefaultGatherer, httpMetrics, catalog.Default(), manager, checkoutService),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"env":              cfg.App.Env,
		"addr":             addr,
		"snapshot_backend": kind.String(),
	})
	logg.Info(ctx, "starting api server")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return manager.Run(gctx, cfg.Session.SweepInterval)
	})
	g.Go(func() error {
		return maintenance.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		logg.Info(ctx, "shutting down api server")
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
