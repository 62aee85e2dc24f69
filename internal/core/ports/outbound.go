package ports

import (
	"context"

	"github.com/dkrasnov/docvault/internal/core/domain"
)

// ContentExtractor turns an artifact reference into analyzable content.
type ContentExtractor interface {
	Extract(ctx context.Context, ref domain.ArtifactRef) (domain.ExtractedContent, error)
}

// DocumentClassifier produces a normalized classification for extracted
// content. Implementations repair malformed responses internally; an error
// means the upstream call itself failed, never that parsing did.
type DocumentClassifier interface {
	Classify(ctx context.Context, url string, content domain.ExtractedContent) (domain.ClassificationResult, error)
}

// ArchiveRepository persists archive records. Create generates the record id.
type ArchiveRepository interface {
	Create(ctx context.Context, url, summary string, category domain.Category) (*domain.ArchiveRecord, error)
	List(ctx context.Context, filter domain.ListFilter) ([]domain.ArchiveRecord, error)
	Delete(ctx context.Context, id string) error
}

// ChangeNotifier signals the presentation layer that the archive listing changed.
type ChangeNotifier interface {
	NotifyArchiveChanged(ctx context.Context) error
}
