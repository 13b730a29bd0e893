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

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/nodeglobe/internal/config"
	"github.com/kailas-cloud/nodeglobe/internal/db"
	dbRedis "github.com/kailas-cloud/nodeglobe/internal/db/redis"
	logpkg "github.com/kailas-cloud/nodeglobe/internal/logger"
	"github.com/kailas-cloud/nodeglobe/internal/metrics"
	counterrepo "github.com/kailas-cloud/nodeglobe/internal/repository/counter"
	"github.com/kailas-cloud/nodeglobe/internal/repository/dataset"
	snapshotrepo "github.com/kailas-cloud/nodeglobe/internal/repository/snapshot"
	chiTransport "github.com/kailas-cloud/nodeglobe/internal/transport/chi"
	cataloguc "github.com/kailas-cloud/nodeglobe/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/nodeglobe/internal/usecase/health"
	queryuc "github.com/kailas-cloud/nodeglobe/internal/usecase/query"
	"github.com/kailas-cloud/nodeglobe/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting nodeglobe API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("dataset", cfg.Dataset.Path),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Store is optional: without it the catalog has no snapshot fallback and stats no counter.
	var store db.Store
	if cfg.HasDatabase() {
		store = connectStore(ctx, cfg, logger)
		defer store.Close()
	}

	metrics.RegisterQueryMetrics()

	loader := dataset.New(cfg.Dataset.Path, logger).
		WithDebounce(time.Duration(cfg.Dataset.DebounceMs) * time.Millisecond)
	catalog := cataloguc.New(loader, logger)
	querySvc := queryuc.New(catalog, logger)

	// Pass nil interfaces (not typed nil pointers) when running without a store.
	var pinger healthuc.DBPinger
	var counter *counterrepo.Store
	if store != nil {
		snapshots := snapshotrepo.New(store, cfg.Storage.KeyPrefix, time.Duration(cfg.Snapshot.TTLSec)*time.Second)
		catalog.WithSnapshots(snapshots)
		counter = counterrepo.New(store, cfg.Storage.KeyPrefix, counterrepo.DefaultTTL)
		querySvc.WithCounter(counter)
		pinger = store
	}

	st, err := catalog.Load(ctx)
	if err != nil {
		// Serve anyway: /health reports the empty catalog and a later reload may fix it.
		logger.Error("Initial catalog load failed", zap.Error(err))
	} else {
		logger.Info("Catalog loaded",
			zap.Int("nodes", st.Nodes),
			zap.Int("countries", st.Countries),
			zap.String("source", string(st.Source)),
		)
	}

	healthSvc := healthuc.New(pinger, catalog)

	server := chiTransport.NewServer(querySvc, catalog, healthSvc, logger)
	if counter != nil {
		server.WithCounter(counter)
	}
	handler := chiTransport.NewRouter(server, chiTransport.RouterConfig{
		APIKeys:         cfg.Auth.APIKeys,
		QueryRatePerSec: cfg.Query.RatePerSec,
		QueryBurst:      cfg.Query.Burst,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.Dataset.Watch {
		g.Go(func() error {
			if err := catalog.Watch(gctx, loader); err != nil {
				return fmt.Errorf("dataset watch: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
	logger.Info("Server stopped gracefully")
}

// connectStore opens the configured Redis-protocol store and waits for it to answer.
// Redis and Valkey speak the same protocol for the commands used here, so both drivers
// share the rueidis store.
func connectStore(ctx context.Context, cfg config.Config, logger *zap.Logger) db.Store {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.Database.Addrs,
		Password:   cfg.Database.Password,
		Standalone: cfg.Database.Standalone,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
	return store
}
