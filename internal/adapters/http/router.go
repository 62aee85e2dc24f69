package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dkrasnov/docvault/internal/core/domain"
	"github.com/dkrasnov/docvault/internal/core/ports"
	"github.com/dkrasnov/docvault/internal/observability/metrics"
)

type Router struct {
	archiver ports.DocumentArchiver
	reader   ports.ArchiveReader
	metrics  *metrics.ArchiveMetrics
	logger   *slog.Logger
}

func NewRouter(
	archiver ports.DocumentArchiver,
	reader ports.ArchiveReader,
	archiveMetrics *metrics.ArchiveMetrics,
	logger *slog.Logger,
) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		archiver: archiver,
		reader:   reader,
		metrics:  archiveMetrics,
		logger:   logger,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/documents", rt.documents)
	mux.HandleFunc("/v1/documents/", rt.deleteDocument)
	return requestIDMiddleware(accessLogMiddleware(rt.logger, mux))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) documents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.submitDocument(w, r)
	case http.MethodGet:
		rt.listDocuments(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

type submitRequest struct {
	URL         string `json:"url"`
	ImageBase64 string `json:"image_base64"`
}

type submitResponse struct {
	Archived bool                  `json:"archived"`
	Degraded bool                  `json:"degraded"`
	Record   *domain.ArchiveRecord `json:"record,omitempty"`
	Error    string                `json:"error,omitempty"`
}

func (rt *Router) submitDocument(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, submitResponse{Error: "invalid json"})
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		writeJSON(w, http.StatusBadRequest, submitResponse{Error: "url is required"})
		return
	}

	start := time.Now()
	outcome, err := rt.archiver.Submit(r.Context(), req.URL, req.ImageBase64)
	if err != nil {
		rt.metrics.ObserveSubmission(metrics.OutcomeFailed, time.Since(start))
		writeJSON(w, statusFromError(err), submitResponse{Error: err.Error()})
		return
	}

	label := metrics.OutcomeClassified
	if outcome.Degraded {
		label = metrics.OutcomeDegraded
	}
	rt.metrics.ObserveSubmission(label, time.Since(start))

	writeJSON(w, http.StatusCreated, submitResponse{
		Archived: true,
		Degraded: outcome.Degraded,
		Record:   outcome.Record,
	})
}

func (rt *Router) listDocuments(w http.ResponseWriter, r *http.Request) {
	filter := domain.ListFilter{Category: domain.Category(r.URL.Query().Get("category"))}

	records, err := rt.reader.List(r.Context(), filter)
	if err != nil {
		writeJSON(w, statusFromError(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": records})
}

func (rt *Router) deleteDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	if err := rt.archiver.Delete(r.Context(), id); err != nil {
		writeJSON(w, statusFromError(err), map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
