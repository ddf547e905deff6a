// Package validate checks submitted field values against a template's
// slot declarations before any prompt is rendered. It is pure: no
// logging, no I/O, usable on its own.
package validate

import (
	"fmt"
	"strings"

	"github.com/formdraft/formdraft/prompt"
)

// Reason classifies why a slot failed validation.
type Reason string

const (
	// ReasonMissing means a required slot was absent from the submission.
	ReasonMissing Reason = "missing"
	// ReasonEmpty means a required slot was present but blank or
	// whitespace-only.
	ReasonEmpty Reason = "empty"
)

// FieldError names one violating slot and why it failed.
type FieldError struct {
	Slot   string `json:"slot"`
	Reason Reason `json:"reason"`
}

// Message returns a targeted, user-facing description.
func (e FieldError) Message() string {
	label := e.Slot
	switch e.Reason {
	case ReasonMissing:
		return fmt.Sprintf("%s is required", label)
	case ReasonEmpty:
		return fmt.Sprintf("%s must not be blank", label)
	}
	return fmt.Sprintf("%s is invalid", label)
}

// Result is the outcome of validating one submission.
type Result struct {
	Errors []FieldError
}

// Valid reports whether the submission passed.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Fields validates the submission against the template's declarations.
// Every violating slot is reported, in declaration order. Multiline
// values are judged on full-content non-blankness, never on line count.
// Values for undeclared slots are ignored.
func Fields(t *prompt.Template, fields prompt.FieldValues) Result {
	var result Result

	for _, slot := range t.Slots {
		if !slot.Required {
			continue
		}

		value, present := fields[slot.Name]
		switch {
		case !present:
			result.Errors = append(result.Errors, FieldError{Slot: slot.Name, Reason: ReasonMissing})
		case strings.TrimSpace(value) == "":
			result.Errors = append(result.Errors, FieldError{Slot: slot.Name, Reason: ReasonEmpty})
		}
	}

	return result
}
