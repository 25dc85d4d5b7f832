// Command server runs the activity-log HTTP service.
//
// Startup order: load .env and environment configuration, configure logging
// and tracing, open the selected storage backend, start the ingest worker
// pool, then serve HTTP until SIGINT/SIGTERM. Shutdown drains in-flight
// requests first and the ingest queue second, so accepted entries are
// committed before the process exits.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kimmyna/Tripspark-Log/internal/config"
	httpapi "github.com/kimmyna/Tripspark-Log/internal/http"
	"github.com/kimmyna/Tripspark-Log/internal/observability"
	"github.com/kimmyna/Tripspark-Log/internal/repo"
	"github.com/kimmyna/Tripspark-Log/internal/sysutil"
	"github.com/kimmyna/Tripspark-Log/internal/tasks"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Optional .env for local development; real deployments set env directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}

	store, backend, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StorageBackend).Msg("storage setup failed")
	}

	pool := tasks.NewPool(cfg.Ingest.Workers, cfg.Ingest.QueueSize,
		log.With().Str("component", "ingest-pool").Logger())

	r := gin.New()
	httpapi.RegisterRoutes(r, httpapi.Deps{
		Store:     store,
		Scheduler: pool,
		Version:   version,
		Backend:   backend,
	}, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("backend", backend).
			Str("version", version).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	// Stop accepting requests, let in-flight ones finish.
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	// Drain the ingest queue so every accepted entry is committed.
	pool.Close()

	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("otel shutdown")
	}

	log.Info().Msg("bye")
}

// openStore builds the storage backend selected by configuration and
// returns it with a short label for the status endpoint.
func openStore(cfg config.Config) (repo.Store, string, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return repo.NewMemoryStore(), config.BackendMemory, nil
	default:
		db, err := repo.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, "", err
		}
		if err := repo.AutoMigrate(db); err != nil {
			return nil, "", err
		}
		return repo.NewGormStore(db), config.BackendSQLite, nil
	}
}
