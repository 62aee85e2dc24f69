package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dkrasnov/docvault/internal/config"
	"github.com/dkrasnov/docvault/internal/core/domain"
	"github.com/dkrasnov/docvault/internal/infrastructure/notify/nats"
	"github.com/dkrasnov/docvault/internal/infrastructure/repository/postgres"
	"github.com/dkrasnov/docvault/internal/observability/logging"
)

// The listener plays the role of a presentation-layer consumer: it re-queries
// the archive listing whenever the refresh signal fires, so dashboards fed by
// it always reflect the latest writes.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.NewJSONLogger("listener", cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		logger.Error("open postgres failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	repo := postgres.NewArchiveRepository(db)

	notifier, err := nats.New(cfg.NATSURL, cfg.NATSSubject)
	if err != nil {
		logger.Error("connect nats failed", "error", err)
		os.Exit(1)
	}
	defer notifier.Close()

	logger.Info("listener subscribed", "subject", cfg.NATSSubject)
	err = notifier.SubscribeArchiveChanged(ctx, func(handlerCtx context.Context) {
		queryCtx, cancel := context.WithTimeout(handlerCtx, 5*time.Second)
		defer cancel()

		records, err := repo.List(queryCtx, domain.ListFilter{})
		if err != nil {
			logger.Error("refresh listing failed", "error", err)
			return
		}
		logger.Info("archive refreshed", "records", len(records))
	})
	if err != nil {
		logger.Error("subscribe failed", "error", err)
		os.Exit(1)
	}
}
