package common

import (
	"context"
	"math/rand"
	"net/http"
	"time"

	"github.com/formdraft/formdraft/logger"
	"github.com/hashicorp/go-retryablehttp"
)

// retryJitter is the maximum random duration added to each backoff wait.
const retryJitter = 250 * time.Millisecond

// RetryConfig holds the configuration for HTTP retry logic
type RetryConfig struct {
	// Maximum number of additional attempts after the first request
	RetryMax int
	// Minimum time to wait between retries
	RetryWaitMin time.Duration
	// Maximum time to wait between retries (before jitter)
	RetryWaitMax time.Duration
	// Function to determine if a request should be retried
	CheckRetry retryablehttp.CheckRetry
}

// DefaultRetryConfig returns a RetryConfig matching the generation
// client's policy: up to 2 additional attempts, exponential backoff
// starting at 1s, doubling per attempt, capped at 4s.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		RetryMax:     2,
		RetryWaitMin: 1 * time.Second,
		RetryWaitMax: 4 * time.Second,
		CheckRetry:   RetryPolicy,
	}
}

// RetryPolicy retries network-level failures, rate limiting and server
// errors. Client errors (auth, malformed request) are never retried;
// their classification happens upstream in the llm package.
func RetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return true, nil
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return true, nil
	}

	return false, nil
}

// ExpBackoff doubles the wait per attempt starting from min, caps it at
// max and adds up to retryJitter of random spread so concurrent callers
// do not retry in lockstep.
func ExpBackoff(min, max time.Duration, attemptNum int, _ *http.Response) time.Duration {
	wait := min
	for i := 0; i < attemptNum && wait < max; i++ {
		wait *= 2
	}
	if wait > max {
		wait = max
	}
	return wait + time.Duration(rand.Int63n(int64(retryJitter)+1))
}

// NewRetryableClient creates a new HTTP client with retry capabilities
func NewRetryableClient(config RetryConfig) *retryablehttp.Client {
	retryClient := retryablehttp.NewClient()

	// Apply configuration
	retryClient.RetryMax = config.RetryMax
	retryClient.RetryWaitMin = config.RetryWaitMin
	retryClient.RetryWaitMax = config.RetryWaitMax
	retryClient.Backoff = ExpBackoff

	// Hand the final response back to the caller once retries are
	// exhausted so the provider SDK can classify it.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	logger.Debugf("Created retryable client with max retries: %d, min wait: %s, max wait: %s",
		config.RetryMax, config.RetryWaitMin, config.RetryWaitMax)

	// Only set CheckRetry if provided (non-nil)
	if config.CheckRetry != nil {
		retryClient.CheckRetry = config.CheckRetry
	}

	// Add logging for retries
	retryClient.Logger = &zapRetryLogger{}

	return retryClient
}

// zapRetryLogger adapts our zap logger to the interface required by retryablehttp
type zapRetryLogger struct{}

func (z *zapRetryLogger) Error(msg string, keysAndValues ...interface{}) {
	logger.Error(append([]interface{}{msg}, keysAndValues...)...)
}

func (z *zapRetryLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Info(append([]interface{}{msg}, keysAndValues...)...)
}

func (z *zapRetryLogger) Debug(msg string, keysAndValues ...interface{}) {
	logger.Debug(append([]interface{}{msg}, keysAndValues...)...)
}

func (z *zapRetryLogger) Warn(msg string, keysAndValues ...interface{}) {
	logger.Warn(append([]interface{}{msg}, keysAndValues...)...)
}
