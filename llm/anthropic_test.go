package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func writeAnthropicMessage(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{
		"id": "msg_1",
		"type": "message",
		"role": "assistant",
		"model": "claude-3-7-sonnet-latest",
		"content": [{"type": "text", "text": %q}],
		"stop_reason": "end_turn",
		"usage": {"input_tokens": 10, "output_tokens": 25}
	}`, text)
}

func writeAnthropicError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"type": "error", "error": {"type": "api_error", "message": %q}}`, message)
}

func TestAnthropicGenerateReturnsContent(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		writeAnthropicMessage(w, "Dear Dr. Garcia,")
	}))
	defer server.Close()

	client, err := NewAnthropic("test-key", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	content, err := client.Generate(context.Background(), "Write a short email")
	if err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}
	if content != "Dear Dr. Garcia," {
		t.Errorf("Expected generated text to pass through unchanged, got %q", content)
	}
	if requests != 1 {
		t.Errorf("Expected exactly 1 request, got %d", requests)
	}
}

func TestAnthropicGenerateDoesNotRetryAuthFailure(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		writeAnthropicError(w, http.StatusUnauthorized, "invalid x-api-key")
	}))
	defer server.Close()

	client, err := NewAnthropic("test-key", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	_, err = client.Generate(context.Background(), "Write a short email")
	if err == nil {
		t.Fatal("Expected error for rejected credential")
	}

	var classified *Error
	if !errors.As(err, &classified) {
		t.Fatalf("Expected classified error, got %T", err)
	}
	if classified.Kind != KindAuth {
		t.Errorf("Expected auth failure, got %s", classified.Kind)
	}
	if requests != 1 {
		t.Errorf("Expected exactly 1 request for auth failure, got %d", requests)
	}
}

func TestAnthropicGenerateEmptyContentIsInvalidRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-3-7-sonnet-latest",
			"content": [],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 0}
		}`)
	}))
	defer server.Close()

	client, err := NewAnthropic("test-key", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	_, err = client.Generate(context.Background(), "Write a short email")

	var classified *Error
	if !errors.As(err, &classified) {
		t.Fatalf("Expected classified error, got %T", err)
	}
	if classified.Kind != KindInvalidRequest {
		t.Errorf("Expected invalid_request failure for empty content, got %s", classified.Kind)
	}
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	_, err := New("bard", "", "test-key")
	if err == nil {
		t.Fatal("Expected error for unknown provider")
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(ProviderOpenAI, "", ""); err == nil {
		t.Error("Expected error for empty OpenAI API key")
	}
	if _, err := New(ProviderAnthropic, "", ""); err == nil {
		t.Error("Expected error for empty Anthropic API key")
	}
}

func TestNewDefaultsModelPerProvider(t *testing.T) {
	client, err := New(ProviderOpenAI, "", "test-key")
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	model, ok := client.(*OpenAIModel)
	if !ok {
		t.Fatalf("Expected *OpenAIModel, got %T", client)
	}
	if model.modelName != defaultOpenAIModel {
		t.Errorf("Expected default model %q, got %q", defaultOpenAIModel, model.modelName)
	}
}
