package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dkrasnov/docvault/internal/core/domain"
	"github.com/dkrasnov/docvault/internal/core/ports"
)

type ArchiveDocumentUseCase struct {
	repo       ports.ArchiveRepository
	extractor  ports.ContentExtractor
	classifier ports.DocumentClassifier
	notifier   ports.ChangeNotifier
	logger     *slog.Logger
}

func NewArchiveDocumentUseCase(
	repo ports.ArchiveRepository,
	extractor ports.ContentExtractor,
	classifier ports.DocumentClassifier,
	notifier ports.ChangeNotifier,
	logger *slog.Logger,
) *ArchiveDocumentUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArchiveDocumentUseCase{
		repo:       repo,
		extractor:  extractor,
		classifier: classifier,
		notifier:   notifier,
		logger:     logger,
	}
}

// Submit runs the ingestion pipeline for one artifact. Every stage failure is
// funneled into the fallback write, so the submission is archived with a
// failure-tier category rather than dropped. Only a failed write surfaces as
// an error, and in that case no record exists.
func (uc *ArchiveDocumentUseCase) Submit(ctx context.Context, url, imageBase64 string) (domain.ArchiveOutcome, error) {
	if strings.TrimSpace(url) == "" {
		return domain.ArchiveOutcome{}, domain.WrapError(domain.ErrInvalidInput, "submit artifact", errors.New("url is required"))
	}

	ref := domain.ArtifactRef{URL: url, ImageBase64: imageBase64}

	result, err := uc.classifyArtifact(ctx, ref)
	if err != nil {
		uc.logger.Warn("classification unavailable, archiving degraded record",
			"url", url,
			"error", err,
		)
		record, persistErr := uc.repo.Create(ctx, url, domain.FallbackSummary, domain.CategoryGeneral)
		if persistErr != nil {
			return domain.ArchiveOutcome{}, fmt.Errorf("fallback archive write: %w", persistErr)
		}
		uc.notifyChanged(ctx)
		return domain.ArchiveOutcome{Record: record, Degraded: true}, nil
	}

	record, err := uc.repo.Create(ctx, url, result.Summary, result.Category)
	if err != nil {
		return domain.ArchiveOutcome{}, fmt.Errorf("archive write: %w", err)
	}
	uc.notifyChanged(ctx)
	return domain.ArchiveOutcome{Record: record}, nil
}

func (uc *ArchiveDocumentUseCase) classifyArtifact(ctx context.Context, ref domain.ArtifactRef) (domain.ClassificationResult, error) {
	content, err := uc.extractor.Extract(ctx, ref)
	if err != nil {
		return domain.ClassificationResult{}, fmt.Errorf("extract content: %w", err)
	}

	result, err := uc.classifier.Classify(ctx, ref.URL, content)
	if err != nil {
		return domain.ClassificationResult{}, fmt.Errorf("classify document: %w", err)
	}
	return result, nil
}

// Delete removes one record. It has no pipeline involvement beyond the
// listing refresh.
func (uc *ArchiveDocumentUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete archive record: %w", err)
	}
	uc.notifyChanged(ctx)
	return nil
}

func (uc *ArchiveDocumentUseCase) List(ctx context.Context, filter domain.ListFilter) ([]domain.ArchiveRecord, error) {
	records, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list archive records: %w", err)
	}
	return records, nil
}

// notifyChanged is fire and forget: a missed refresh only delays the listing
// update, it never fails the run.
func (uc *ArchiveDocumentUseCase) notifyChanged(ctx context.Context) {
	if err := uc.notifier.NotifyArchiveChanged(ctx); err != nil {
		uc.logger.Warn("archive change notification failed", "error", err)
	}
}
