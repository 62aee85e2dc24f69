package ports

import (
	"context"

	"github.com/dkrasnov/docvault/internal/core/domain"
)

// DocumentArchiver is the inbound contract for artifact submission and removal.
// Submit always yields exactly one ArchiveRecord unless even the fallback
// write fails, which is the only case where it returns an error.
type DocumentArchiver interface {
	Submit(ctx context.Context, url, imageBase64 string) (domain.ArchiveOutcome, error)
	Delete(ctx context.Context, id string) error
}

// ArchiveReader is the inbound read model for the archive listing.
type ArchiveReader interface {
	List(ctx context.Context, filter domain.ListFilter) ([]domain.ArchiveRecord, error)
}
