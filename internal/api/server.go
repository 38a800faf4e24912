package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"godyn/app"
	"godyn/domain/spec"
	"godyn/domain/verify"
	"godyn/internal"
	"godyn/internal/config"
)

// Server exposes one verified specification read-only: the structural
// export, the compiled IR, the verification report and the canonical
// decomposition. Consumers (visualization, reporting, DSL layers) may
// wrap these documents but never alter the meaning of core fields.
type Server struct {
	router *chi.Mux
	cfg    *config.Config
	logger *internal.Logger
	spec   *spec.GDSSpec
	result *app.VerificationResult
}

// NewServer creates the export API over a sealed spec and its
// verification result.
func NewServer(cfg *config.Config, logger *internal.Logger, gds *spec.GDSSpec, result *app.VerificationResult) *Server {
	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
		spec:   gds,
		result: result,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/api/spec", s.handleSpec)
	s.router.Get("/api/ir", s.handleIR)
	s.router.Get("/api/report", s.handleReport)
	s.router.Get("/api/canonical", s.handleCanonical)
}

// Handler returns the router for serving or testing.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Listen serves the export API on the configured port.
func (s *Server) Listen() error {
	addr := ":" + s.cfg.Server.Port
	s.logger.Info("export API listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"spec":   string(s.spec.Name()),
		"sealed": s.spec.Sealed(),
	})
}

func (s *Server) handleSpec(w http.ResponseWriter, r *http.Request) {
	doc := s.spec.Export()
	if r.URL.Query().Get("format") == "yaml" {
		raw, err := doc.YAML()
		if err != nil {
			s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(raw)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleIR(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.result.IR)
}

// handleReport serves the aggregated findings. Signature-completeness
// findings on boundary-shaped blocks are dropped when configured: those
// blocks legitimately lack an input or output slot.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report := s.result.Report
	if s.cfg.Verify.FilterBoundary {
		report = report.Filter(func(f verify.Finding) bool {
			if f.CheckID != "signature_completeness" {
				return true
			}
			return !s.boundaryShaped(f.SourceElements)
		})
	}

	blocking := report.HasErrors()
	if s.cfg.Verify.Strict {
		blocking = blocking || report.Warnings > 0
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"report":   report,
		"blocking": blocking,
	})
}

// boundaryShaped reports whether every named block is a pure source or
// pure sink in the compiled IR.
func (s *Server) boundaryShaped(names []string) bool {
	for _, name := range names {
		b, ok := s.result.IR.BlockByName(name)
		if !ok {
			return false
		}
		source := len(b.ForwardIn) == 0 && len(b.BackwardIn) == 0
		sink := len(b.ForwardOut) == 0 && len(b.BackwardOut) == 0
		if !source && !sink {
			return false
		}
	}
	return len(names) > 0
}

func (s *Server) handleCanonical(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.result.Canonical)
}
