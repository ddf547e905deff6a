package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/formdraft/formdraft/pipeline"
	"github.com/formdraft/formdraft/prompt"
)

type slotView struct {
	Name     string   `json:"name"`
	Label    string   `json:"label,omitempty"`
	Kind     string   `json:"kind"`
	Required bool     `json:"required"`
	Choices  []string `json:"choices,omitempty"`
}

type templateView struct {
	ID     string     `json:"id"`
	Title  string     `json:"title,omitempty"`
	Output string     `json:"output"`
	Slots  []slotView `json:"slots"`
}

type generateRequest struct {
	Fields map[string]string `json:"fields"`
}

type generateResponse struct {
	RequestID  string `json:"request_id"`
	TemplateID string `json:"template_id"`
	Output     string `json:"output"`
	Draft      string `json:"draft"`
}

func viewFromTemplate(t *prompt.Template) templateView {
	view := templateView{
		ID:     t.ID,
		Title:  t.Title,
		Output: string(t.OutputMode),
		Slots:  make([]slotView, 0, len(t.Slots)),
	}
	for _, slot := range t.Slots {
		view.Slots = append(view.Slots, slotView{
			Name:     slot.Name,
			Label:    slot.Label,
			Kind:     string(slot.Kind),
			Required: slot.Required,
			Choices:  slot.Choices,
		})
	}
	return view
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates := s.registry.List()

	views := make([]templateView, 0, len(templates))
	for _, t := range templates {
		views = append(views, viewFromTemplate(t))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "templateID")

	template, err := s.registry.Get(templateID)
	if err != nil {
		if errors.Is(err, prompt.ErrUnknownTemplate) {
			writeError(w, http.StatusNotFound, "unknown_template", err.Error(), nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", err.Error(), nil)
		return
	}
	writeJSON(w, http.StatusOK, viewFromTemplate(template))
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "templateID")
	started := time.Now()

	if _, err := s.registry.Get(templateID); err != nil {
		if errors.Is(err, prompt.ErrUnknownTemplate) {
			observeGeneration(templateID, "unknown_template", started)
			writeError(w, http.StatusNotFound, "unknown_template", err.Error(), nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", err.Error(), nil)
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "request body must be a JSON object with a fields map", nil)
		return
	}

	result := s.pipeline.Submit(r.Context(), templateID, prompt.FieldValues(req.Fields))

	if result.Ok() {
		observeGeneration(templateID, "success", started)
		writeJSON(w, http.StatusOK, generateResponse{
			RequestID:  result.RequestID,
			TemplateID: result.TemplateID,
			Output:     string(result.OutputMode),
			Draft:      result.Text,
		})
		return
	}

	observeGeneration(templateID, string(result.Failure.Kind), started)
	writeError(w, statusForFailure(result.Failure.Kind), string(result.Failure.Kind),
		result.Failure.Message, result.Failure.Fields)
}

// statusForFailure maps pipeline failures onto response codes.
// Provider faults are gateway problems from the caller's point of
// view, so auth and invalid_request map to 502 rather than leaking
// upstream status codes.
func statusForFailure(kind pipeline.FailureKind) int {
	switch kind {
	case pipeline.FailureValidation:
		return http.StatusBadRequest
	case pipeline.FailureAuth, pipeline.FailureInvalidRequest:
		return http.StatusBadGateway
	case pipeline.FailureTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
