package validate

import (
	"testing"

	"github.com/formdraft/formdraft/prompt"
)

func testTemplate() *prompt.Template {
	return &prompt.Template{
		ID:         "email",
		OutputMode: prompt.OutputPlainText,
		Slots: []prompt.Slot{
			{Name: "recipient", Kind: prompt.KindShortText, Required: true},
			{Name: "purpose", Kind: prompt.KindShortText, Required: true},
			{Name: "tone", Kind: prompt.KindEnumChoice, Required: true, Choices: prompt.DefaultTones},
			{Name: "key_points", Kind: prompt.KindMultilineText, Required: true},
			{Name: "postscript", Kind: prompt.KindShortText, Required: false},
		},
		Body: "To {recipient}: {purpose} ({tone})\n{key_points}{postscript}",
	}
}

func completeFields() prompt.FieldValues {
	return prompt.FieldValues{
		"recipient":  "Dr. Garcia",
		"purpose":    "recommendation request",
		"tone":       "Formal",
		"key_points": "mentions coursework",
	}
}

func TestFieldsValidWhenAllRequiredNonBlank(t *testing.T) {
	result := Fields(testTemplate(), completeFields())

	if !result.Valid() {
		t.Errorf("Expected valid result, got %v", result.Errors)
	}
}

func TestFieldsReportsMissingSlot(t *testing.T) {
	fields := completeFields()
	delete(fields, "purpose")

	result := Fields(testTemplate(), fields)
	if result.Valid() {
		t.Fatal("Expected invalid result for missing slot")
	}

	if len(result.Errors) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(result.Errors))
	}
	if result.Errors[0].Slot != "purpose" {
		t.Errorf("Expected slot purpose, got %s", result.Errors[0].Slot)
	}
	if result.Errors[0].Reason != ReasonMissing {
		t.Errorf("Expected reason missing, got %s", result.Errors[0].Reason)
	}
}

func TestFieldsReportsEmptySlot(t *testing.T) {
	fields := completeFields()
	fields["key_points"] = "  \n \t "

	result := Fields(testTemplate(), fields)
	if result.Valid() {
		t.Fatal("Expected invalid result for blank slot")
	}

	if len(result.Errors) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(result.Errors))
	}
	if result.Errors[0].Slot != "key_points" {
		t.Errorf("Expected slot key_points, got %s", result.Errors[0].Slot)
	}
	if result.Errors[0].Reason != ReasonEmpty {
		t.Errorf("Expected reason empty, got %s", result.Errors[0].Reason)
	}
}

func TestFieldsReportsEveryViolationInSlotOrder(t *testing.T) {
	fields := prompt.FieldValues{
		"recipient": "Dr. Garcia",
		"tone":      "",
	}

	result := Fields(testTemplate(), fields)
	if result.Valid() {
		t.Fatal("Expected invalid result")
	}

	if len(result.Errors) != 3 {
		t.Fatalf("Expected 3 errors, got %d", len(result.Errors))
	}

	expected := []FieldError{
		{Slot: "purpose", Reason: ReasonMissing},
		{Slot: "tone", Reason: ReasonEmpty},
		{Slot: "key_points", Reason: ReasonMissing},
	}
	for i, want := range expected {
		if result.Errors[i] != want {
			t.Errorf("Expected error %d to be %+v, got %+v", i, want, result.Errors[i])
		}
	}
}

func TestFieldsIgnoresOptionalSlots(t *testing.T) {
	fields := completeFields()
	fields["postscript"] = "   "

	result := Fields(testTemplate(), fields)
	if !result.Valid() {
		t.Errorf("Expected blank optional slot to be allowed, got %v", result.Errors)
	}
}

func TestFieldsIgnoresUndeclaredKeys(t *testing.T) {
	fields := completeFields()
	fields["extra"] = "whatever"

	result := Fields(testTemplate(), fields)
	if !result.Valid() {
		t.Errorf("Expected undeclared keys to be ignored, got %v", result.Errors)
	}
}

func TestFieldsAcceptsAnyNonBlankEnumValue(t *testing.T) {
	// Enum membership is the form host's concern; any non-blank value
	// validates.
	fields := completeFields()
	fields["tone"] = "Sarcastic"

	result := Fields(testTemplate(), fields)
	if !result.Valid() {
		t.Errorf("Expected non-blank enum value to validate, got %v", result.Errors)
	}
}

func TestFieldsMultilineJudgedOnContentNotLines(t *testing.T) {
	fields := completeFields()
	fields["key_points"] = "single line is fine"

	result := Fields(testTemplate(), fields)
	if !result.Valid() {
		t.Errorf("Expected single-line multiline value to validate, got %v", result.Errors)
	}
}

func TestFieldErrorMessages(t *testing.T) {
	missing := FieldError{Slot: "purpose", Reason: ReasonMissing}
	if missing.Message() != "purpose is required" {
		t.Errorf("Expected targeted missing message, got %q", missing.Message())
	}

	empty := FieldError{Slot: "key_points", Reason: ReasonEmpty}
	if empty.Message() != "key_points must not be blank" {
		t.Errorf("Expected targeted empty message, got %q", empty.Message())
	}
}
