package domain

import "time"

// Category labels an archived document. Classification output is restricted
// to the content taxonomy; the failure tier marks records written through the
// persistence fallback and is never produced by response normalization.
type Category string

const (
	CategoryReceipt Category = "Receipt"
	CategoryID      Category = "ID"
	CategoryWork    Category = "Work"

	// Failure tier, disjoint from the content taxonomy.
	CategoryGeneral Category = "General"
	CategoryError   Category = "Error"
)

// DefaultCategory is the catch-all taxonomy label substituted for any
// classifier output outside the closed set.
const DefaultCategory = CategoryWork

const (
	// DefaultSummary is used when the classifier response could not be parsed at all.
	DefaultSummary = "Document archived."
	// PlaceholderSummary replaces a missing summary in an otherwise parseable response.
	PlaceholderSummary = "Document archived successfully."
	// FallbackSummary is written on records created through the failure funnel.
	FallbackSummary = "AI analysis unavailable."
)

// Taxonomy is the closed set of categories the classifier may emit.
func Taxonomy() []Category {
	return []Category{CategoryReceipt, CategoryID, CategoryWork}
}

func (c Category) InTaxonomy() bool {
	switch c {
	case CategoryReceipt, CategoryID, CategoryWork:
		return true
	default:
		return false
	}
}

func (c Category) IsFailureTier() bool {
	return c == CategoryGeneral || c == CategoryError
}

// ArtifactRef identifies one submitted artifact. URL always points at the
// stored file or external resource. ImageBase64 is set only when the caller
// embedded a size-reduced image payload inline; this core never recompresses it.
type ArtifactRef struct {
	URL         string
	ImageBase64 string
}

type ContentKind string

const (
	ContentEmpty ContentKind = "empty"
	ContentText  ContentKind = "text"
	ContentImage ContentKind = "image"
)

// ExtractedContent is the tagged union produced by content extraction.
// Exactly one variant is populated per run; Kind selects the prompt strategy.
type ExtractedContent struct {
	Kind        ContentKind
	Text        string
	ImageBase64 string
}

func EmptyContent() ExtractedContent {
	return ExtractedContent{Kind: ContentEmpty}
}

func TextContent(text string) ExtractedContent {
	return ExtractedContent{Kind: ContentText, Text: text}
}

func ImageContent(payload string) ExtractedContent {
	return ExtractedContent{Kind: ContentImage, ImageBase64: payload}
}

// ClassificationResult is the normalized classifier output.
type ClassificationResult struct {
	Category Category `json:"category"`
	Summary  string   `json:"summary"`
}

// ArchiveRecord is the persisted outcome of one submission. A record is
// created exactly once by the persistence layer and never mutated afterwards;
// deletion is a separate operation outside the pipeline.
type ArchiveRecord struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Summary   string    `json:"summary"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// ArchiveOutcome reports how a submission ended: archived with a real
// classification, or archived with a degraded record via the failure funnel.
type ArchiveOutcome struct {
	Record   *ArchiveRecord `json:"record"`
	Degraded bool           `json:"degraded"`
}

// ListFilter narrows archive listings.
type ListFilter struct {
	Category Category
}
