package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"olx-scraper/internal/api"
	"olx-scraper/internal/config"
	"olx-scraper/internal/monitoring"
	"olx-scraper/internal/scraper"
	"olx-scraper/internal/storage"
)

func main() {
	// Initialize structured logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("could not load config", zap.Error(err))
	}

	// Optional positional argument overrides the page budget. Malformed
	// input is ignored and the configured default stands.
	if len(os.Args) >= 2 {
		if n, err := strconv.Atoi(os.Args[1]); err == nil {
			cfg.MaxPages = n
		}
	}

	// An interrupt cancels the page loop between pages; whatever was
	// gathered up to that point is still saved.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := monitoring.NewMetrics()

	var seenCache *storage.SeenCache
	if cfg.RedisAddr != "" {
		seenCache = storage.NewSeenCache(cfg.RedisAddr, cfg.SeenTTL())
	}

	var pgStore *storage.PostgresStore
	if cfg.PostgresURL != "" {
		pgStore, err = storage.NewPostgresStore(ctx, cfg.PostgresURL)
		if err != nil {
			logger.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer pgStore.Close()
		if err := pgStore.EnsureSchema(ctx); err != nil {
			logger.Fatal("failed to ensure postgres schema", zap.Error(err))
		}
	}

	var server *api.Server
	if cfg.MetricsAddr != "" {
		server = api.NewServer(cfg, pgStore, seenCache, logger)
		go func() {
			if err := server.Start(); err != nil && err != http.ErrServerClosed {
				logger.Error("ops listener failed", zap.Error(err))
			}
		}()
		logger.Info("ops listener started", zap.String("addr", cfg.MetricsAddr))
	}

	s := scraper.New(cfg, seenCache, metrics, logger)
	rows, summary := s.Run(ctx)

	writer := storage.NewCSVWriter(cfg.OutputCSV, logger)
	if err := writer.Write(rows); err != nil {
		logger.Error("failed to save csv", zap.Error(err))
	}

	if pgStore != nil && len(rows) > 0 {
		// Sinks still run after an interrupt, so give them a fresh deadline.
		saveCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := pgStore.SaveListings(saveCtx, rows); err != nil {
			logger.Error("failed to save listings to postgres", zap.Error(err))
		}
		cancel()
	}

	if server != nil {
		server.SetSummary(summary)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("ops listener shutdown failed", zap.Error(err))
		}
		cancel()
	}

	logger.Info("done",
		zap.Int("pages_fetched", summary.PagesFetched),
		zap.Int("rows", summary.RowsKept),
		zap.String("stop_reason", summary.StopReason),
		zap.Duration("took", summary.Duration))
}
