package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dkrasnov/docvault/internal/config"
	"github.com/dkrasnov/docvault/internal/core/ports"
	"github.com/dkrasnov/docvault/internal/core/usecase"
	"github.com/dkrasnov/docvault/internal/infrastructure/extractor/remote"
	"github.com/dkrasnov/docvault/internal/infrastructure/llm/deepseek"
	"github.com/dkrasnov/docvault/internal/infrastructure/notify/nats"
	"github.com/dkrasnov/docvault/internal/infrastructure/repository/postgres"
	"github.com/dkrasnov/docvault/internal/infrastructure/resilience"
	"github.com/dkrasnov/docvault/internal/observability/metrics"
)

type App struct {
	Config config.Config

	Archiver ports.DocumentArchiver
	Reader   ports.ArchiveReader

	HTTPMetrics    *metrics.HTTPServerMetrics
	ArchiveMetrics *metrics.ArchiveMetrics

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewArchiveRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	notifier, err := nats.New(cfg.NATSURL, cfg.NATSSubject)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init change notifier: %w", err)
	}

	retryCfg := resilience.DefaultConfig()
	retryCfg.RetryMaxAttempts = cfg.ClassifierMaxAttempts
	executor := resilience.NewExecutor(retryCfg)

	client := deepseek.New(deepseek.Config{
		BaseURL:     cfg.DeepSeekBaseURL,
		APIKey:      cfg.DeepSeekAPIKey,
		Model:       cfg.DeepSeekModel,
		Temperature: cfg.ClassifierTemperature,
		Timeout:     time.Duration(cfg.ClassifierTimeoutSeconds) * time.Second,
	})
	classifier := deepseek.NewClassifier(client, executor)

	extractor := remote.NewExtractor(time.Duration(cfg.FetchTimeoutSeconds) * time.Second)

	archiveUC := usecase.NewArchiveDocumentUseCase(repo, extractor, classifier, notifier, logger)

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPServerMetrics(registry, "api")
	archiveMetrics := metrics.NewArchiveMetrics(registry, "api")

	return &App{
		Config: cfg,

		Archiver: archiveUC,
		Reader:   archiveUC,

		HTTPMetrics:    httpMetrics,
		ArchiveMetrics: archiveMetrics,

		closeFn: func() {
			notifier.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
