package llm

import (
	"context"
	"errors"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/formdraft/formdraft/common"
	"github.com/formdraft/formdraft/logger"
)

// OpenAIModel implements the Client interface using OpenAI's API
type OpenAIModel struct {
	client       *openai.Client
	modelName    string
	maxTokens    int
	apiTimeout   time.Duration
	systemPrompt string
}

// NewOpenAI creates a new OpenAI client
func NewOpenAI(apiKey string, opts ...Option) (*OpenAIModel, error) {
	if apiKey == "" {
		errMsg := "OpenAI API key cannot be empty"
		logger.Error(errMsg)
		return nil, errors.New(errMsg)
	}

	model := &OpenAIModel{
		modelName:  defaultOpenAIModel,
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

	// Create retryable HTTP client with exponential backoff using common configuration.
	// The SDK itself never retries, so attempt counting lives in one place.
	retryClient := common.NewRetryableClient(retryConfig)

	// Use the retryable client for OpenAI
	config := openai.DefaultConfig(apiKey)
	config.HTTPClient = retryClient.StandardClient()
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	model.client = openai.NewClientWithConfig(config)

	logger.Debugf("OpenAI client initialized with model: %s, max tokens: %d, timeout: %s",
		model.modelName, model.maxTokens, model.apiTimeout)

	return model, nil
}

// Generate sends the rendered prompt to OpenAI and returns the
// generated text
func (o *OpenAIModel) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.apiTimeout)
	defer cancel()

	logger.Debugf("Sending prompt to OpenAI model: %s", o.modelName)

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if o.systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: o.systemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.modelName,
		Messages:    messages,
		MaxTokens:   o.maxTokens,
		Temperature: 0.2, // Lower temperature for more deterministic results
	})
	if err != nil {
		classified := Classify(err)
		logger.Errorf("OpenAI completion failed (%s): %s", classified.Kind, classified.Message)
		return "", classified
	}

	if len(resp.Choices) == 0 {
		errMsg := "OpenAI response contained no choices"
		logger.Error(errMsg)
		return "", &Error{Kind: KindInvalidRequest, Message: errMsg}
	}

	return resp.Choices[0].Message.Content, nil
}
