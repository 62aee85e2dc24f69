package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dkrasnov/docvault/internal/core/domain"
)

type archiverFake struct {
	outcome    domain.ArchiveOutcome
	submitErr  error
	deleteErr  error
	submitURL  string
	submitImg  string
	deletedID  string
	submitCall int
}

func (f *archiverFake) Submit(_ context.Context, url, imageBase64 string) (domain.ArchiveOutcome, error) {
	f.submitCall++
	f.submitURL = url
	f.submitImg = imageBase64
	if f.submitErr != nil {
		return domain.ArchiveOutcome{}, f.submitErr
	}
	return f.outcome, nil
}

func (f *archiverFake) Delete(_ context.Context, id string) error {
	f.deletedID = id
	return f.deleteErr
}

type readerFake struct {
	records []domain.ArchiveRecord
	filter  domain.ListFilter
	err     error
}

func (f *readerFake) List(_ context.Context, filter domain.ListFilter) ([]domain.ArchiveRecord, error) {
	f.filter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func newTestRouter(archiver *archiverFake, reader *readerFake) http.Handler {
	return NewRouter(archiver, reader, nil, nil).Handler()
}

func TestSubmitDocumentClassified(t *testing.T) {
	record := &domain.ArchiveRecord{
		ID:        "rec-1",
		URL:       "https://example.com/receipt.jpg",
		Summary:   "Grocery receipt for $42.17.",
		Category:  domain.CategoryReceipt,
		CreatedAt: time.Now().UTC(),
	}
	archiver := &archiverFake{outcome: domain.ArchiveOutcome{Record: record}}

	body := `{"url":"https://example.com/receipt.jpg","image_base64":"Zm9v"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/documents", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newTestRouter(archiver, &readerFake{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if archiver.submitURL != "https://example.com/receipt.jpg" || archiver.submitImg != "Zm9v" {
		t.Fatalf("archiver got url=%q image=%q", archiver.submitURL, archiver.submitImg)
	}

	var resp submitResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Archived || resp.Degraded {
		t.Fatalf("unexpected response flags: %+v", resp)
	}
	if resp.Record == nil || resp.Record.Category != domain.CategoryReceipt {
		t.Fatalf("unexpected record: %+v", resp.Record)
	}
	if got := rec.Header().Get("X-Request-Id"); got == "" {
		t.Fatal("expected X-Request-Id header to be set")
	}
}

func TestSubmitDocumentDegraded(t *testing.T) {
	record := &domain.ArchiveRecord{
		ID:       "rec-2",
		URL:      "https://example.com/doc.pdf",
		Summary:  domain.FallbackSummary,
		Category: domain.CategoryGeneral,
	}
	archiver := &archiverFake{outcome: domain.ArchiveOutcome{Record: record, Degraded: true}}

	req := httptest.NewRequest(http.MethodPost, "/v1/documents", strings.NewReader(`{"url":"https://example.com/doc.pdf"}`))
	rec := httptest.NewRecorder()
	newTestRouter(archiver, &readerFake{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	var resp submitResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Archived || !resp.Degraded {
		t.Fatalf("unexpected response flags: %+v", resp)
	}
}

func TestSubmitDocumentInvalidJSON(t *testing.T) {
	archiver := &archiverFake{}
	req := httptest.NewRequest(http.MethodPost, "/v1/documents", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	newTestRouter(archiver, &readerFake{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if archiver.submitCall != 0 {
		t.Fatalf("archiver called %d times, want 0", archiver.submitCall)
	}
}

func TestSubmitDocumentMissingURL(t *testing.T) {
	archiver := &archiverFake{}
	req := httptest.NewRequest(http.MethodPost, "/v1/documents", strings.NewReader(`{"url":"  "}`))
	rec := httptest.NewRecorder()
	newTestRouter(archiver, &readerFake{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if archiver.submitCall != 0 {
		t.Fatalf("archiver called %d times, want 0", archiver.submitCall)
	}
}

func TestSubmitDocumentPersistenceFailure(t *testing.T) {
	archiver := &archiverFake{
		submitErr: domain.WrapError(domain.ErrPersistence, "archive.submit", context.DeadlineExceeded),
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/documents", strings.NewReader(`{"url":"https://example.com/a"}`))
	rec := httptest.NewRecorder()
	newTestRouter(archiver, &readerFake{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	var resp submitResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Archived {
		t.Fatal("archived should be false when persistence fails")
	}
	if resp.Error == "" {
		t.Fatal("expected error message in response")
	}
}

func TestListDocumentsWithCategoryFilter(t *testing.T) {
	reader := &readerFake{records: []domain.ArchiveRecord{
		{ID: "rec-1", Category: domain.CategoryReceipt},
	}}
	req := httptest.NewRequest(http.MethodGet, "/v1/documents?category=Receipt", nil)
	rec := httptest.NewRecorder()
	newTestRouter(&archiverFake{}, reader).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if reader.filter.Category != domain.CategoryReceipt {
		t.Fatalf("filter category = %q, want %q", reader.filter.Category, domain.CategoryReceipt)
	}

	var resp struct {
		Records []domain.ArchiveRecord `json:"records"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Records) != 1 || resp.Records[0].ID != "rec-1" {
		t.Fatalf("unexpected records: %+v", resp.Records)
	}
}

func TestDeleteDocument(t *testing.T) {
	archiver := &archiverFake{}
	req := httptest.NewRequest(http.MethodDelete, "/v1/documents/rec-9", nil)
	rec := httptest.NewRecorder()
	newTestRouter(archiver, &readerFake{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if archiver.deletedID != "rec-9" {
		t.Fatalf("deleted id = %q, want %q", archiver.deletedID, "rec-9")
	}
}

func TestDeleteDocumentNotFound(t *testing.T) {
	archiver := &archiverFake{
		deleteErr: domain.WrapError(domain.ErrRecordNotFound, "postgres.delete", errors.New("no rows deleted")),
	}
	req := httptest.NewRequest(http.MethodDelete, "/v1/documents/missing", nil)
	rec := httptest.NewRecorder()
	newTestRouter(archiver, &readerFake{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPut, "/v1/documents"},
		{http.MethodPost, "/v1/documents/rec-1"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rec := httptest.NewRecorder()
		newTestRouter(&archiverFake{}, &readerFake{}).ServeHTTP(rec, req)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s %s: status = %d, want %d", tt.method, tt.path, rec.Code, http.StatusMethodNotAllowed)
		}
	}
}

func TestHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	newTestRouter(&archiverFake{}, &readerFake{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
