package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/formdraft/formdraft/logger"
)

// Supported providers
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Provider defaults
const (
	defaultOpenAIModel    = "gpt-4.1"
	defaultAnthropicModel = "claude-3-7-sonnet-latest"
	defaultMaxTokens      = 4000
	defaultTimeout        = 30 * time.Second
)

// OptionType defines the type of option
type OptionType string

// Available option types
const (
	ModelNameOption    OptionType = "model"
	MaxTokensOption    OptionType = "max_tokens"
	TimeoutOption      OptionType = "timeout"
	RetryMaxOption     OptionType = "retry_max"
	BaseURLOption      OptionType = "base_url"
	SystemPromptOption OptionType = "system_prompt"
)

// Option represents a generic configuration option for any provider
type Option struct {
	Type  OptionType
	Value any
}

// WithModel creates an option to set the model name
func WithModel(model string) Option {
	return Option{
		Type:  ModelNameOption,
		Value: model,
	}
}

// WithMaxTokens creates an option to set the max tokens
func WithMaxTokens(maxTokens int) Option {
	return Option{
		Type:  MaxTokensOption,
		Value: maxTokens,
	}
}

// WithTimeout creates an option to bound each Generate call
func WithTimeout(timeout time.Duration) Option {
	return Option{
		Type:  TimeoutOption,
		Value: timeout,
	}
}

// WithRetryMax creates an option to set the number of additional
// attempts the transport makes on transient failures
func WithRetryMax(retryMax int) Option {
	return Option{
		Type:  RetryMaxOption,
		Value: retryMax,
	}
}

// WithBaseURL creates an option to override the provider endpoint,
// used by tests to point the client at a local server
func WithBaseURL(baseURL string) Option {
	return Option{
		Type:  BaseURLOption,
		Value: baseURL,
	}
}

// WithSystemPrompt creates an option to set a system prompt sent ahead
// of every rendered prompt, for deployments that steer the voice of
// all drafts
func WithSystemPrompt(systemPrompt string) Option {
	return Option{
		Type:  SystemPromptOption,
		Value: systemPrompt,
	}
}

// Client defines the interface for text generation. Every error
// returned by Generate is a classified *Error; no provider fault
// escapes unwrapped and none of the implementations panic.
type Client interface {
	// Generate sends the rendered prompt to the provider and returns
	// the generated text
	Generate(ctx context.Context, prompt string) (string, error)
}

// New creates a client for the named provider. The credential is
// injected here and is the only state the client retains between
// calls; an empty credential is a construction error so hosts fail at
// startup, not on first submit.
func New(provider, model, apiKey string, opts ...Option) (Client, error) {
	options := []Option{
		WithMaxTokens(defaultMaxTokens),
		WithTimeout(defaultTimeout),
	}
	if model != "" {
		options = append(options, WithModel(model))
	}
	options = append(options, opts...)

	var client Client
	var err error

	switch provider {
	case ProviderOpenAI:
		client, err = NewOpenAI(apiKey, options...)
	case ProviderAnthropic:
		client, err = NewAnthropic(apiKey, options...)
	default:
		err = fmt.Errorf("unsupported provider: %s", provider)
	}

	if err == nil {
		logger.Infof("Using generation provider %s", provider)
	}

	return client, err
}
