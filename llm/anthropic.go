package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/formdraft/formdraft/common"
	"github.com/formdraft/formdraft/logger"
)

// AnthropicModel implements the Client interface using Anthropic's API
type AnthropicModel struct {
	client       anthropic.Client
	modelName    string
	maxTokens    int
	apiTimeout   time.Duration
	systemPrompt string
}

// NewAnthropic creates a new Anthropic client
func NewAnthropic(apiKey string, opts ...Option) (*AnthropicModel, error) {
	if apiKey == "" {
		errMsg := "Anthropic API key cannot be empty"
		logger.Error(errMsg)
		return nil, errors.New(errMsg)
	}

	model := &AnthropicModel{
		modelName:  defaultAnthropicModel,
		maxTokens:  defaultMaxTokens,
		apiTimeout: defaultTimeout,
	}

	retryConfig := common.DefaultRetryConfig()
	baseURL := ""

	// Apply options
	for _, opt := range opts {
		switch opt.Type {
		case ModelNameOption:
			if modelName, ok := opt.Value.(string); ok {
				model.modelName = modelName
			}
		case MaxTokensOption:
			if maxTokens, ok := opt.Value.(int); ok {
				model.maxTokens = maxTokens
			}
		case TimeoutOption:
			if timeout, ok := opt.Value.(time.Duration); ok {
				model.apiTimeout = timeout
			}
		case RetryMaxOption:
			if retryMax, ok := opt.Value.(int); ok {
				retryConfig.RetryMax = retryMax
			}
		case BaseURLOption:
			if url, ok := opt.Value.(string); ok {
				baseURL = url
			}
		case SystemPromptOption:
			if systemPrompt, ok := opt.Value.(string); ok {
				model.systemPrompt = systemPrompt
			}
		}
	}

	// Route the SDK through the shared retrying transport and switch
	// off its built-in retries so attempt counting lives in one place.
	retryClient := common.NewRetryableClient(retryConfig)

	clientOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(retryClient.StandardClient()),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(baseURL))
	}

	model.client = anthropic.NewClient(clientOpts...)

	logger.Debugf("Anthropic client initialized with model: %s, max tokens: %d, timeout: %s",
		model.modelName, model.maxTokens, model.apiTimeout)

	return model, nil
}

// Generate sends the rendered prompt to Anthropic and returns the
// generated text
func (a *AnthropicModel) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.apiTimeout)
	defer cancel()

	logger.Debugf("Sending prompt to Anthropic model: %s", a.modelName)

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.modelName),
		MaxTokens: int64(a.maxTokens),
		Messages: []anthropic.MessageParam{
			{
				Role: anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{
					anthropic.NewTextBlock(prompt),
				},
			},
		},
	}
	if a.systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: a.systemPrompt},
		}
	}

	message, err := a.client.Messages.New(ctx, params)
	if err != nil {
		classified := Classify(err)
		logger.Errorf("Anthropic completion failed (%s): %s", classified.Kind, classified.Message)
		return "", classified
	}

	// Extract text content from the response
	var content strings.Builder
	for _, block := range message.Content {
		switch b := block.AsAny().(type) {
		case anthropic.TextBlock:
			content.WriteString(b.Text)
		}
	}

	if content.Len() == 0 {
		errMsg := "Anthropic response contained no text"
		logger.Error(errMsg)
		return "", &Error{Kind: KindInvalidRequest, Message: errMsg}
	}

	return content.String(), nil
}
