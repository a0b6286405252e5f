package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-openapi/spec"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/nameres/internal/domain"
	"github.com/kailas-cloud/nameres/internal/domain/lookup/request"
	"github.com/kailas-cloud/nameres/internal/logger"
	"github.com/kailas-cloud/nameres/internal/metrics"
	healthuc "github.com/kailas-cloud/nameres/internal/usecase/health"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the name resolution HTTP API.
type Server struct {
	lookup        LookupService
	synonyms      SynonymService
	status        StatusService
	health        HealthService
	openapi       *spec.Swagger
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	lookup LookupService,
	synonyms SynonymService,
	status StatusService,
	health HealthService,
	version string,
	logger *zap.Logger,
) *Server {
	s := &Server{
		lookup:   lookup,
		synonyms: synonyms,
		status:   status,
		health:   health,
		openapi:  OpenAPI(version),
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		upstreamHandler,
		sentinelHandler(domain.ErrMalformedResponse, http.StatusBadGateway, ErrorCodeUpstreamError),
	}
	return s
}

// Register mounts every route on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/", s.Root)
	r.Get("/docs", s.Docs)
	r.Get("/openapi.json", s.OpenAPIDocument)
	r.Get("/status", s.Status)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Get("/lookup", s.Lookup)
	r.Post("/lookup", s.Lookup)
	r.Post("/bulk-lookup", s.BulkLookup)

	r.Get("/synonyms", s.SynonymsGet)
	r.Post("/synonyms", s.SynonymsPost)
	r.Get("/reverse_lookup", s.ReverseLookupGet)
	r.Post("/reverse_lookup", s.ReverseLookupPost)
}

// Root handles GET / by redirecting to the Swagger UI.
func (s *Server) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/docs", http.StatusTemporaryRedirect)
}

// Docs handles GET /docs.
func (s *Server) Docs(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(swaggerUIPage))
}

// OpenAPIDocument handles GET /openapi.json.
func (s *Server) OpenAPIDocument(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.openapi)
}

// Lookup handles GET and POST /lookup. Both read their parameters from the query string.
func (s *Server) Lookup(w http.ResponseWriter, r *http.Request) {
	params, err := bindLookupParams(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	req, err := request.New(params.String, params.Options())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results, err := s.lookup.Lookup(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ToLookupResults(results))
}

// BulkLookup handles POST /bulk-lookup.
func (s *Server) BulkLookup(w http.ResponseWriter, r *http.Request) {
	var body BulkLookupRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if body.Strings == nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "strings is required")
		return
	}

	params, err := request.NewParams(body.Options())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	metrics.BulkLookupStrings.Observe(float64(len(body.Strings)))
	ctx := logger.With(r.Context(), zap.Int("bulk_size", len(body.Strings)))

	byText, err := s.lookup.BulkLookup(ctx, body.Strings, params)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := make(map[string][]LookupResult, len(byText))
	for text, results := range byText {
		resp[text] = ToLookupResults(results)
	}
	writeJSON(w, http.StatusOK, resp)
}

// SynonymsGet handles GET /synonyms.
func (s *Server) SynonymsGet(w http.ResponseWriter, r *http.Request) {
	curies, err := bindCURIEList(r.URL.Query(), "preferred_curies")
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	s.writeSynonyms(w, r, curies)
}

// SynonymsPost handles POST /synonyms.
func (s *Server) SynonymsPost(w http.ResponseWriter, r *http.Request) {
	var body SynonymsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	s.writeSynonyms(w, r, body.PreferredCuries)
}

// ReverseLookupGet handles the deprecated GET /reverse_lookup.
func (s *Server) ReverseLookupGet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Deprecation", "true")
	curies, err := bindCURIEList(r.URL.Query(), "curies")
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	s.writeSynonyms(w, r, curies)
}

// ReverseLookupPost handles the deprecated POST /reverse_lookup.
func (s *Server) ReverseLookupPost(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Deprecation", "true")
	var body ReverseLookupRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	s.writeSynonyms(w, r, body.Curies)
}

func (s *Server) writeSynonyms(w http.ResponseWriter, r *http.Request, curies []string) {
	docs, err := s.synonyms.Lookup(r.Context(), curies)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// Status handles GET /status.
func (s *Server) Status(w http.ResponseWriter, r *http.Request) {
	rep, err := s.status.Status(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StatusBody(rep))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidRequest,
		domain.ErrUpstream,
		domain.ErrMalformedResponse,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationHandler reports ErrInvalidRequest with its full text, which only describes caller input.
func validationHandler(w http.ResponseWriter, err error, _ string) bool {
	if !errors.Is(err, domain.ErrInvalidRequest) {
		return false
	}
	writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
	return true
}

// upstreamHandler handles UpstreamError, exposing the engine status but not its body.
func upstreamHandler(w http.ResponseWriter, err error, msg string) bool {
	var ue *domain.UpstreamError
	if !errors.As(err, &ue) {
		return false
	}
	writeJSON(w, http.StatusBadGateway, ErrorResponse{
		Code:           ErrorCodeUpstreamError,
		Message:        msg,
		UpstreamStatus: ue.Status,
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

const swaggerUIPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Name Resolver</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({url: "/openapi.json", dom_id: "#swagger-ui"});
  </script>
</body>
</html>
`
