package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"filedrop/contract"
	"filedrop/infrastructure/http/server"
	"filedrop/infrastructure/storage"
	"filedrop/internal"
	"filedrop/observability"
	"filedrop/runtime"
	"filedrop/runtime/workers"
	"filedrop/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/docker/go-units"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/afero"
)

// Exit codes reported to the service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const shutdownTimeout = 10 * time.Second

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "filedrop terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and blocks until a signal or a server failure.
// Returning instead of exiting lets deferred cleanup (badger close) run.
func run() (int, error) {
	// 1. Configuration & Logger
	config, err := internal.LoadConfig()
	if err != nil {
		return exitConfig, err
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Storage areas
	fs := afero.NewOsFs()
	for _, root := range []string{config.ChunkAreaRoot, config.ArtifactAreaRoot} {
		if err := fs.MkdirAll(root, 0o755); err != nil {
			return exitRuntime, fmt.Errorf("create storage area %s: %w", root, err)
		}
	}
	chunks := storage.NewChunkStore(fs, config.ChunkAreaRoot, logger)
	artifacts := storage.NewArtifactStore(fs, config.ArtifactAreaRoot, logger)

	// 3. Session tracker
	locks := runtime.NewLockTable(config.LockShards)
	var tracker contract.SessionTracker
	switch config.TrackerBackend {
	case internal.TrackerBadger:
		db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
		if err != nil {
			return exitRuntime, fmt.Errorf("database opening failed: %w", err)
		}
		defer func() {
			logger.Info("Closing BadgerDB...")
			_ = db.Close()
		}()

		badgerTracker := storage.NewBadgerSessionTracker(db, locks, logger, config.CompletedRetention)
		released, err := badgerTracker.ReleaseClaims(ctx)
		if err != nil {
			return exitRuntime, fmt.Errorf("recover interrupted assemblies: %w", err)
		}
		if released > 0 {
			logger.Warn("Released sessions interrupted during assembly", "count", released)
		}
		tracker = badgerTracker

		if logger.Enabled(ctx, slog.LevelDebug) {
			endpoint := "/inspect"
			url := fmt.Sprintf("http://localhost:%d%s", config.DebugInspectorPort, endpoint)
			logger.Info("Debug Badger inspector available", "url", url)
			database.StartDebugServer(db, config.DebugInspectorPort, endpoint, storage.SessionMapper)
		}
	default:
		tracker = services.NewMemorySessionTracker(locks, logger, config.CompletedRetention)
	}

	// 4. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewUploadMetrics(registry)
	if err != nil {
		return exitRuntime, err
	}

	// 5. Services
	assembler := services.NewAssembler(chunks, artifacts, logger)
	coordinator := services.NewUploadCoordinator(tracker, chunks, assembler, artifacts, metrics, logger)
	retrieval := services.NewRetrievalService(artifacts, metrics, logger, config.DownloadsEnabled)

	// 6. Background workers
	sup := workers.NewSupervisor(logger, config.RestartInterval)
	sup.Add(
		workers.NewStaleSessionSweeper(logger, tracker, chunks, metrics, config.SessionTTL, config.SweepInterval),
		workers.NewStorageMonitor(logger, metrics, config.StorageCheckInterval, config.StorageWarnPercent,
			workers.StorageArea{Name: "chunks", Path: config.ChunkAreaRoot},
			workers.StorageArea{Name: "artifacts", Path: config.ArtifactAreaRoot},
		),
	)
	supDone := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(supDone)
	}()

	// 7. HTTP server
	indexPage, err := server.RenderIndex(fs, server.PageConfig{
		CDN:             config.DropzoneCDN,
		Version:         config.DropzoneVersion,
		TransferTimeout: config.TransferTimeout,
		MaxFileSizeMB:   config.MaxFileSizeMB,
		ChunkSizeBytes:  config.ChunkSizeBytes,
		ParallelChunks:  config.ParallelChunks,
		ForceChunking:   config.ForceChunking,
		CustomPage:      config.IndexPage,
	})
	if err != nil {
		return exitConfig, err
	}

	if !logger.Enabled(ctx, slog.LevelDebug) {
		gin.SetMode(gin.ReleaseMode)
	}
	uploadServer := server.NewUploadServer(logger, coordinator, retrieval, indexPage, config.MaxFileSizeMB)
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	httpServer := &http.Server{
		Addr:              address,
		Handler:           server.NewRouter(uploadServer, registry, config.CorsOrigins()),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       config.TransferTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server",
			"address", address,
			"tracker", config.TrackerBackend,
			"chunk_size", units.HumanSize(float64(config.ChunkSizeBytes)),
			"max_file_size", units.HumanSize(float64(config.MaxFileSizeMB)*units.MB),
			"timeout_per_chunk", config.TransferTimeout,
			"chunk_area", config.ChunkAreaRoot,
			"artifact_area", config.ArtifactAreaRoot,
			"downloads_enabled", config.DownloadsEnabled)
		if err := httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 8. Wait for Stop or Error
	code := exitOK
	select {
	case <-ctx.Done():
		logger.Info("Shutting down gracefully...")
	case err = <-errChan:
		code = exitRuntime
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Error("HTTP server shutdown failed", "error", shutdownErr)
	}
	sup.Stop()
	<-supDone

	logger.Info("Program stopped cleanly")
	return code, err
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG).
			WithBypassLockGuard(true)
	} else {
		options = options.WithLoggingLevel(badger.INFO)
	}

	return options
}
