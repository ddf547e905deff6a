package common

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestDefaultRetryConfig(t *testing.T) {
	config := DefaultRetryConfig()

	if config.RetryMax != 2 {
		t.Errorf("Expected RetryMax to be 2, got %d", config.RetryMax)
	}

	if config.RetryWaitMin != 1*time.Second {
		t.Errorf("Expected RetryWaitMin to be 1s, got %s", config.RetryWaitMin)
	}

	if config.RetryWaitMax != 4*time.Second {
		t.Errorf("Expected RetryWaitMax to be 4s, got %s", config.RetryWaitMax)
	}

	if config.CheckRetry == nil {
		t.Error("Expected CheckRetry to be set by default")
	}
}

func TestRetryPolicyServerErrors(t *testing.T) {
	ctx := context.Background()

	for _, status := range []int{http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusTooManyRequests} {
		retry, err := RetryPolicy(ctx, &http.Response{StatusCode: status}, nil)
		if err != nil {
			t.Errorf("Expected no error for status %d, got %v", status, err)
		}
		if !retry {
			t.Errorf("Expected status %d to be retried", status)
		}
	}
}

func TestRetryPolicyClientErrors(t *testing.T) {
	ctx := context.Background()

	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound, http.StatusUnprocessableEntity} {
		retry, err := RetryPolicy(ctx, &http.Response{StatusCode: status}, nil)
		if err != nil {
			t.Errorf("Expected no error for status %d, got %v", status, err)
		}
		if retry {
			t.Errorf("Expected status %d not to be retried", status)
		}
	}
}

func TestRetryPolicySuccess(t *testing.T) {
	retry, err := RetryPolicy(context.Background(), &http.Response{StatusCode: http.StatusOK}, nil)
	if err != nil {
		t.Errorf("Expected no error for status 200, got %v", err)
	}
	if retry {
		t.Error("Expected status 200 not to be retried")
	}
}

func TestRetryPolicyNetworkError(t *testing.T) {
	retry, err := RetryPolicy(context.Background(), nil, context.DeadlineExceeded)
	if err != nil {
		t.Errorf("Expected no error for network-level failure, got %v", err)
	}
	if !retry {
		t.Error("Expected network-level failure to be retried")
	}
}

func TestRetryPolicyCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	retry, err := RetryPolicy(ctx, &http.Response{StatusCode: http.StatusInternalServerError}, nil)
	if retry {
		t.Error("Expected no retry once the context is canceled")
	}
	if err == nil {
		t.Error("Expected the context error to be returned")
	}
}

func TestExpBackoffBounds(t *testing.T) {
	min := 1 * time.Second
	max := 4 * time.Second

	cases := []struct {
		attempt int
		low     time.Duration
		high    time.Duration
	}{
		{0, 1 * time.Second, 1*time.Second + retryJitter},
		{1, 2 * time.Second, 2*time.Second + retryJitter},
		{2, 4 * time.Second, 4*time.Second + retryJitter},
		{5, 4 * time.Second, 4*time.Second + retryJitter},
	}

	for _, c := range cases {
		for i := 0; i < 20; i++ {
			wait := ExpBackoff(min, max, c.attempt, nil)
			if wait < c.low || wait > c.high {
				t.Errorf("Expected attempt %d wait between %s and %s, got %s", c.attempt, c.low, c.high, wait)
			}
		}
	}
}

func TestNewRetryableClientAppliesConfig(t *testing.T) {
	config := DefaultRetryConfig()
	client := NewRetryableClient(config)

	if client.RetryMax != config.RetryMax {
		t.Errorf("Expected RetryMax %d, got %d", config.RetryMax, client.RetryMax)
	}

	if client.RetryWaitMin != config.RetryWaitMin {
		t.Errorf("Expected RetryWaitMin %s, got %s", config.RetryWaitMin, client.RetryWaitMin)
	}

	if client.RetryWaitMax != config.RetryWaitMax {
		t.Errorf("Expected RetryWaitMax %s, got %s", config.RetryWaitMax, client.RetryWaitMax)
	}

	if client.ErrorHandler == nil {
		t.Error("Expected ErrorHandler to pass the final response through")
	}
}
