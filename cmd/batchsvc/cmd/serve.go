package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hydra-janus/batch-service/internal/api"
	"github.com/hydra-janus/batch-service/internal/config"
	"github.com/hydra-janus/batch-service/internal/metrics"
	"github.com/hydra-janus/batch-service/internal/storage"
	"github.com/hydra-janus/batch-service/internal/telemetry"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout   = 10 * time.Second
	dbCollectInterval = 15 * time.Second
)

var (
	// Server flags (override config/env)
	serverHost string
	serverPort int
)

func newServeCommand() *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the batch HTTP server",
		Long: `Start the HTTP server and begin accepting API requests.

The server will:
- Load configuration from --config and environment variables
- Open the configured store, applying migrations if DATABASE_AUTO_MIGRATE is set
- Serve the batch API plus /health, /metrics and /version
- Shut down gracefully on SIGINT/SIGTERM

Examples:
  # Postgres from the environment
  DATABASE_URL=postgres://localhost/batches batchsvc serve

  # Throwaway in-memory store on port 9090
  DATABASE_DRIVER=sqlite DATABASE_URL=:memory: batchsvc serve --port 9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			if serverHost != "" {
				cfg.Server.Host = serverHost
			}
			if serverPort != 0 {
				cfg.Server.Port = serverPort
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg, config.NewLogger(cfg))
		},
	}

	serve.Flags().StringVar(&serverHost, "host", "", "server host address (default: 0.0.0.0)")
	serve.Flags().IntVar(&serverPort, "port", 0, "server port (default: 8080)")
	return serve
}

// runServer blocks until ctx is cancelled or the listener fails.
func runServer(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	logger.Info().
		Str("version", Version).
		Str("driver", cfg.Database.Driver).
		Str("environment", cfg.Environment).
		Msg("starting batch service")

	metrics.Init(Version, GitCommit, BuildDate, cfg.Database.Driver)

	shutdownTracing, err := telemetry.InitTracing(ctx, cfg.Tracing, Version)
	if err != nil {
		return fmt.Errorf("tracing init failed: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error().Err(err).Msg("tracing shutdown error")
		}
	}()

	openCtx, openCancel := context.WithTimeout(ctx, 30*time.Second)
	repo, err := storage.Open(openCtx, cfg.Database)
	openCancel()
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error().Err(err).Msg("store close error")
		}
	}()

	server := &http.Server{
		Addr: cfg.Server.Addr(),
		Handler: api.NewRouter(ctx, api.RouterDeps{
			Config: cfg,
			Logger: logger,
			Repo:   repo,
			Build:  api.BuildInfo{Version: Version, GitCommit: GitCommit, BuildDate: BuildDate},
		}),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	g, gctx := errgroup.WithContext(ctx)

	collector := metrics.NewDBCollector(repo)
	g.Go(func() error {
		collector.Start(gctx, dbCollectInterval)
		return nil
	})

	g.Go(func() error {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down")
		collector.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
