package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/dkrasnov/docvault/internal/core/domain"
)

const (
	// MaxTextBytes bounds the extracted text embedded into a classifier
	// request, keeping the completion call under the upstream request-size
	// limits.
	MaxTextBytes = 3000

	maxFetchBytes = 20 << 20
)

// Extractor resolves an artifact reference into analyzable content by
// fetching document bytes over HTTPS and running best-effort text extraction.
type Extractor struct {
	httpClient *http.Client
}

func NewExtractor(fetchTimeout time.Duration) *Extractor {
	if fetchTimeout <= 0 {
		fetchTimeout = 10 * time.Second
	}
	return &Extractor{httpClient: &http.Client{Timeout: fetchTimeout}}
}

// Extract dispatches on the artifact shape, in order: document URLs win over
// an inline image payload, because extracted text is far more reliable signal
// than a vision pass over a document thumbnail; an inline payload wins over
// nothing; otherwise only the URL remains as a weak cue for the classifier.
func (e *Extractor) Extract(ctx context.Context, ref domain.ArtifactRef) (domain.ExtractedContent, error) {
	if hasDocumentExtension(ref.URL) {
		return e.extractDocumentText(ctx, ref.URL)
	}
	if ref.ImageBase64 != "" {
		return domain.ImageContent(ref.ImageBase64), nil
	}
	return domain.EmptyContent(), nil
}

func (e *Extractor) extractDocumentText(ctx context.Context, url string) (domain.ExtractedContent, error) {
	raw, err := e.fetch(ctx, url)
	if err != nil {
		return domain.ExtractedContent{}, domain.WrapError(domain.ErrExtraction, "fetch document", err)
	}

	text, err := pdfToText(raw)
	if err != nil {
		return domain.ExtractedContent{}, domain.WrapError(domain.ErrExtraction, "extract pdf text", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return domain.EmptyContent(), nil
	}
	return domain.TextContent(truncate(text, MaxTextBytes)), nil
}

func (e *Extractor) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create fetch request: %w", err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch artifact: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch artifact status: %s", resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, fmt.Errorf("read artifact body: %w", err)
	}
	return raw, nil
}

// pdfToText recovers from parser panics: the pdf library panics on some
// malformed cross-reference tables instead of returning an error.
func pdfToText(raw []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plainText, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plainText); err != nil {
		return "", fmt.Errorf("collect pdf text: %w", err)
	}
	return sb.String(), nil
}

func hasDocumentExtension(url string) bool {
	cleaned := url
	if idx := strings.IndexAny(cleaned, "?#"); idx >= 0 {
		cleaned = cleaned[:idx]
	}
	return strings.EqualFold(path.Ext(cleaned), ".pdf")
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}
