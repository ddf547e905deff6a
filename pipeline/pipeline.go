// Package pipeline drives a form submission from field values to a
// sanitized draft. Every submission passes through the same stages:
// validate the fields, render the template, call the generation
// provider, sanitize the output for the template's mode. The pipeline
// never panics and never returns a Go error; every outcome, success
// or failure, is a Result.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/formdraft/formdraft/llm"
	"github.com/formdraft/formdraft/logger"
	"github.com/formdraft/formdraft/prompt"
	"github.com/formdraft/formdraft/sanitize"
	"github.com/formdraft/formdraft/validate"
)

// FailureKind partitions submission failures for callers. Validation
// failures are the form host's to fix, auth and invalid_request are
// deployment faults, transient means try again later.
type FailureKind string

// Failure kinds
const (
	FailureValidation     FailureKind = "validation"
	FailureAuth           FailureKind = "auth"
	FailureInvalidRequest FailureKind = "invalid_request"
	FailureTransient      FailureKind = "transient"
)

// transientMessage is what callers see for transient upstream
// failures. The provider detail goes to the log, never to the user.
const transientMessage = "The drafting service is temporarily unavailable. Please try again."

// Failure describes why a submission produced no draft.
type Failure struct {
	Kind    FailureKind
	Message string
	// Fields holds the per-slot violations for validation failures,
	// in slot declaration order.
	Fields []validate.FieldError
}

// Result is the terminal outcome of a submission. Exactly one of
// Text or Failure is meaningful.
type Result struct {
	RequestID  string
	TemplateID string
	OutputMode prompt.OutputMode
	Text       string
	Failure    *Failure
}

// Ok reports whether the submission produced a draft.
func (r Result) Ok() bool {
	return r.Failure == nil
}

// Pipeline wires a template registry to a generation client. It holds
// no per-request state and is safe for concurrent use.
type Pipeline struct {
	registry  *prompt.Registry
	client    llm.Client
	sanitizer *sanitize.Sanitizer
}

// New creates a pipeline over the given registry and client.
func New(registry *prompt.Registry, client llm.Client) *Pipeline {
	return &Pipeline{
		registry:  registry,
		client:    client,
		sanitizer: sanitize.New(),
	}
}

// Submit runs one form submission through the pipeline. The provider
// is only called once the fields have validated; a failed validation
// costs nothing upstream.
func (p *Pipeline) Submit(ctx context.Context, templateID string, fields prompt.FieldValues) Result {
	requestID := uuid.NewString()
	result := Result{
		RequestID:  requestID,
		TemplateID: templateID,
	}

	template, err := p.registry.Get(templateID)
	if err != nil {
		logger.Infof("Request %s rejected: %s", requestID, err)
		result.Failure = &Failure{Kind: FailureInvalidRequest, Message: err.Error()}
		return result
	}
	result.OutputMode = template.OutputMode

	logger.Debugf("Request %s validating %d fields for template %s", requestID, len(fields), templateID)
	if validation := validate.Fields(template, fields); !validation.Valid() {
		logger.Infof("Request %s rejected: %d invalid fields", requestID, len(validation.Errors))
		result.Failure = &Failure{
			Kind:    FailureValidation,
			Message: "form input failed validation",
			Fields:  validation.Errors,
		}
		return result
	}

	logger.Debugf("Request %s rendering template %s", requestID, templateID)
	rendered, err := template.Render(fields)
	if err != nil {
		// The validator runs first, so a render failure means the
		// template and validator disagree about required slots.
		var missing *prompt.MissingSlotError
		if errors.As(err, &missing) {
			result.Failure = &Failure{
				Kind:    FailureValidation,
				Message: err.Error(),
				Fields:  []validate.FieldError{{Slot: missing.Slot, Reason: validate.ReasonMissing}},
			}
			return result
		}
		result.Failure = &Failure{Kind: FailureInvalidRequest, Message: err.Error()}
		return result
	}

	logger.Debugf("Request %s generating draft for template %s", requestID, templateID)
	text, err := p.client.Generate(ctx, rendered)
	if err != nil {
		result.Failure = p.generationFailure(requestID, err)
		return result
	}

	logger.Debugf("Request %s sanitizing %s output", requestID, template.OutputMode)
	result.Text = p.sanitizer.Output(text, template.OutputMode)

	logger.Infof("Request %s completed draft for template %s", requestID, templateID)
	return result
}

// Templates exposes the registry backing this pipeline.
func (p *Pipeline) Templates() *prompt.Registry {
	return p.registry
}

func (p *Pipeline) generationFailure(requestID string, err error) *Failure {
	classified := llm.Classify(err)

	switch classified.Kind {
	case llm.KindAuth:
		logger.Errorf("Request %s failed: provider rejected credential: %s", requestID, classified.Message)
		return &Failure{Kind: FailureAuth, Message: classified.Message}
	case llm.KindInvalidRequest:
		logger.Errorf("Request %s failed: provider rejected request: %s", requestID, classified.Message)
		return &Failure{Kind: FailureInvalidRequest, Message: classified.Message}
	default:
		logger.Errorf("Request %s failed upstream: %s", requestID, classified.Message)
		return &Failure{Kind: FailureTransient, Message: transientMessage}
	}
}

// String renders the failure for log lines and CLI output.
func (f *Failure) String() string {
	if f.Kind != FailureValidation || len(f.Fields) == 0 {
		return fmt.Sprintf("%s: %s", f.Kind, f.Message)
	}

	out := string(f.Kind) + ":"
	for _, fieldErr := range f.Fields {
		out += "\n  " + fieldErr.Message()
	}
	return out
}
