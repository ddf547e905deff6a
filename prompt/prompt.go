package prompt

import (
	"fmt"
	"regexp"
	"strings"
)

// SlotKind describes how the form host should collect a slot's value.
type SlotKind string

const (
	KindShortText     SlotKind = "short_text"
	KindMultilineText SlotKind = "multiline_text"
	KindEnumChoice    SlotKind = "enum_choice"
)

// OutputMode declares how generated text is meant to be displayed.
type OutputMode string

const (
	// OutputPlainText is displayed as-is, e.g. in a text area.
	OutputPlainText OutputMode = "plain_text"
	// OutputMarkup is rendered as HTML and must be sanitized first.
	OutputMarkup OutputMode = "markup"
)

// Slot is a named, typed insertion point in a template body.
type Slot struct {
	Name     string   `yaml:"name"`
	Label    string   `yaml:"label"`
	Kind     SlotKind `yaml:"kind"`
	Required bool     `yaml:"required"`
	// Choices lists the values the form host should offer for
	// enum_choice slots. Advisory for presentation; validation only
	// checks non-blankness.
	Choices []string `yaml:"choices,omitempty"`
}

// FieldValues maps slot names to the values collected by the form host.
type FieldValues map[string]string

// Template is a named prompt with typed slots. Bodies substitute each
// {slot_name} occurrence literally; there is no nested templating and
// substituted values are never re-scanned.
type Template struct {
	ID         string     `yaml:"id"`
	Title      string     `yaml:"title"`
	OutputMode OutputMode `yaml:"output"`
	Slots      []Slot     `yaml:"slots"`
	Body       string     `yaml:"body"`
}

// placeholderPattern matches {slot_name} occurrences in template bodies.
var placeholderPattern = regexp.MustCompile(`\{([a-z][a-z0-9_]*)\}`)

// MissingSlotError reports a required slot that was absent or blank at
// render time.
type MissingSlotError struct {
	Slot string
}

func (e *MissingSlotError) Error() string {
	return fmt.Sprintf("required slot %q has no value", e.Slot)
}

// Validate checks the structural invariants: unique slot names, every
// body placeholder declared, every required slot placed in the body,
// enum slots carrying choices. Called on registration so a template
// that loads is a template that renders.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("template has no id")
	}
	if strings.TrimSpace(t.Body) == "" {
		return fmt.Errorf("template %q has an empty body", t.ID)
	}

	switch t.OutputMode {
	case OutputPlainText, OutputMarkup:
	default:
		return fmt.Errorf("template %q has unknown output mode %q", t.ID, t.OutputMode)
	}

	seen := make(map[string]bool, len(t.Slots))
	for _, slot := range t.Slots {
		if slot.Name == "" {
			return fmt.Errorf("template %q declares a slot with no name", t.ID)
		}
		if seen[slot.Name] {
			return fmt.Errorf("template %q declares slot %q twice", t.ID, slot.Name)
		}
		seen[slot.Name] = true

		switch slot.Kind {
		case KindShortText, KindMultilineText:
		case KindEnumChoice:
			if len(slot.Choices) == 0 {
				return fmt.Errorf("template %q slot %q is enum_choice but declares no choices", t.ID, slot.Name)
			}
		default:
			return fmt.Errorf("template %q slot %q has unknown kind %q", t.ID, slot.Name, slot.Kind)
		}
	}

	placed := make(map[string]bool)
	for _, match := range placeholderPattern.FindAllStringSubmatch(t.Body, -1) {
		name := match[1]
		if !seen[name] {
			return fmt.Errorf("template %q body references undeclared slot %q", t.ID, name)
		}
		placed[name] = true
	}

	for _, slot := range t.Slots {
		if slot.Required && !placed[slot.Name] {
			return fmt.Errorf("template %q required slot %q never appears in the body", t.ID, slot.Name)
		}
	}

	return nil
}

// Slot returns the declared slot with the given name.
func (t *Template) Slot(name string) (Slot, bool) {
	for _, slot := range t.Slots {
		if slot.Name == name {
			return slot, true
		}
	}
	return Slot{}, false
}

// Render substitutes the trimmed field values into the body and returns
// the final prompt string. Required slots that are absent or blank fail
// with MissingSlotError; optional slots substitute as the empty string.
// Keys that match no declared slot are ignored. Substitution happens in
// a single pass, so values containing placeholder-shaped text are left
// alone.
func (t *Template) Render(fields FieldValues) (string, error) {
	pairs := make([]string, 0, len(t.Slots)*2)
	for _, slot := range t.Slots {
		value := strings.TrimSpace(fields[slot.Name])
		if slot.Required && value == "" {
			return "", &MissingSlotError{Slot: slot.Name}
		}
		pairs = append(pairs, "{"+slot.Name+"}", value)
	}

	return strings.NewReplacer(pairs...).Replace(t.Body), nil
}
