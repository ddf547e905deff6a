// Package server exposes the drafting pipeline over HTTP. The API is
// unauthenticated; it is meant to sit behind the form host, not on
// the public internet.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/formdraft/formdraft/logger"
	"github.com/formdraft/formdraft/pipeline"
	"github.com/formdraft/formdraft/prompt"
	"github.com/formdraft/formdraft/validate"
)

// Server routes HTTP requests to the drafting pipeline.
type Server struct {
	pipeline *pipeline.Pipeline
	registry *prompt.Registry
	router   *chi.Mux
}

// New builds a server over the given pipeline.
func New(p *pipeline.Pipeline) *Server {
	s := &Server{
		pipeline: p,
		registry: p.Templates(),
	}
	s.router = s.routes()
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/templates", s.handleListTemplates)
		r.Get("/templates/{templateID}", s.handleGetTemplate)
		r.Post("/templates/{templateID}/generate", s.handleGenerate)
	})

	return r
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		next.ServeHTTP(w, r)
		logger.Debugf("%s %s (%s)", r.Method, r.URL.Path, time.Since(started))
	})
}

// errorBody is the JSON shape of every non-2xx response.
type errorBody struct {
	Error  string                `json:"error"`
	Code   string                `json:"code"`
	Fields []validate.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string, fields []validate.FieldError) {
	writeJSON(w, status, errorBody{
		Error:  message,
		Code:   code,
		Fields: fields,
	})
}
