// Package chi is the HTTP surface. The search handler owns the fallback
// decision: an index failure surfaces here as domain.ErrIndexUnavailable and
// the request is re-served from a collection scan.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/supplyline-io/supplysearch/internal/domain"
	"github.com/supplyline-io/supplysearch/internal/domain/entity"
	"github.com/supplyline-io/supplysearch/internal/domain/search"
	"github.com/supplyline-io/supplysearch/internal/metrics"
	healthuc "github.com/supplyline-io/supplysearch/internal/usecase/health"
	rebuilduc "github.com/supplyline-io/supplysearch/internal/usecase/rebuild"
)

// Searcher serves queries from the token index.
type Searcher interface {
	Search(ctx context.Context, query string, opts search.Options) (search.Page, error)
}

// FallbackSearcher serves queries by scanning source collections.
type FallbackSearcher interface {
	Search(ctx context.Context, query string, opts search.Options) search.Page
}

// RecordWriter is the document write path.
type RecordWriter interface {
	Upsert(ctx context.Context, entityType, id string, fields entity.Fields) (bool, error)
	Delete(ctx context.Context, entityType, id string) error
}

// Rebuilder re-derives the index, optionally for a subset of entity types.
type Rebuilder interface {
	Run(ctx context.Context, entityTypes []string) rebuilduc.Report
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server implements the HTTP API.
type Server struct {
	search   Searcher
	fallback FallbackSearcher
	records  RecordWriter
	rebuild  Rebuilder
	health   HealthChecker
	logger   *zap.Logger
	limits   search.Limits
}

// NewServer creates an HTTP API server.
func NewServer(
	searcher Searcher,
	fallback FallbackSearcher,
	records RecordWriter,
	rebuild Rebuilder,
	health HealthChecker,
	logger *zap.Logger,
) *Server {
	return &Server{
		search:   searcher,
		fallback: fallback,
		records:  records,
		rebuild:  rebuild,
		health:   health,
		logger:   logger,
		limits:   search.Limits{Default: 20, Max: 50},
	}
}

// WithLimits configures the page size bounds echoed in responses. Must match
// the limits the search services were built with.
func (s *Server) WithLimits(defaultLimit, maxLimit int) *Server {
	if defaultLimit > 0 {
		s.limits.Default = defaultLimit
	}
	if maxLimit > 0 {
		s.limits.Max = maxLimit
	}
	return s
}

// Routes mounts every handler on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/api/v1/search", s.handleSearch)
	r.Post("/api/v1/search/reindex", s.handleReindex)
	r.Put("/api/v1/records/{entityType}/{id}", s.handleUpsertRecord)
	r.Delete("/api/v1/records/{entityType}/{id}", s.handleDeleteRecord)
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)
}

// handleSearch handles GET /api/v1/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(query) < search.MinQueryLength {
		writeError(w, http.StatusBadRequest, codeInvalidQuery,
			"query must be at least 2 characters")
		return
	}

	opts := search.Options{
		Types:  parseTypes(r.URL.Query().Get("types")),
		Limit:  parseIntParam(r.URL.Query().Get("limit")),
		Offset: parseIntParam(r.URL.Query().Get("offset")),
	}

	start := time.Now()
	mode := "index"
	page, err := s.search.Search(r.Context(), query, opts)
	if err != nil {
		if !errors.Is(err, domain.ErrIndexUnavailable) {
			metrics.SearchRequestsTotal.WithLabelValues(mode, "error").Inc()
			s.logger.Error("search failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}
		s.logger.Warn("index unavailable, serving from collection scan", zap.Error(err))
		mode = "fallback"
		page = s.fallback.Search(r.Context(), query, opts)
	}
	metrics.SearchRequestsTotal.WithLabelValues(mode, "ok").Inc()
	metrics.SearchDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, searchResponse{
		Success:    true,
		Data:       page.Results,
		Total:      page.Total,
		HasMore:    page.HasMore,
		Pagination: s.effectivePagination(opts),
	})
}

// handleReindex handles POST /api/v1/search/reindex. The body is optional:
// `{"entityTypes": [...]}` narrows the rebuild, no body rebuilds everything.
// The rebuild runs synchronously; partial failures are reported in the
// counters, not as an HTTP error.
func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	var body struct {
		EntityTypes []string `json:"entityTypes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	report := s.rebuild.Run(r.Context(), body.EntityTypes)
	writeJSON(w, http.StatusOK, dataResponse{Success: true, Data: report})
}

// handleUpsertRecord handles PUT /api/v1/records/{entityType}/{id}.
func (s *Server) handleUpsertRecord(w http.ResponseWriter, r *http.Request) {
	entityType := chi.URLParam(r, "entityType")
	id := chi.URLParam(r, "id")

	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(fields) == 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, "record fields are required")
		return
	}

	created, err := s.records.Upsert(r.Context(), entityType, id, entity.Fields(fields))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, dataResponse{Success: true})
}

// handleDeleteRecord handles DELETE /api/v1/records/{entityType}/{id}.
func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	entityType := chi.URLParam(r, "entityType")
	id := chi.URLParam(r, "id")

	if err := s.records.Delete(r.Context(), entityType, id); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dataResponse{Success: true})
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// handleMetrics handles GET /metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownEntityType):
		writeError(w, http.StatusBadRequest, codeUnknownEntityType, domain.ErrUnknownEntityType.Error())
	case errors.Is(err, domain.ErrDocumentNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, domain.ErrDocumentNotFound.Error())
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

// effectivePagination mirrors the clamping the search services apply so the
// envelope reflects the window actually served.
func (s *Server) effectivePagination(opts search.Options) pagination {
	limit := opts.Limit
	if limit <= 0 {
		limit = s.limits.Default
	}
	if limit > s.limits.Max {
		limit = s.limits.Max
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	return pagination{Limit: limit, Offset: offset}
}

func parseTypes(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func parseIntParam(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
