package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	openai "github.com/sashabaranov/go-openai"
)

// ErrorKind partitions generation failures by how the caller should
// react: re-authenticate, fix the request, or try again later.
type ErrorKind string

// Failure kinds
const (
	KindAuth           ErrorKind = "auth"
	KindInvalidRequest ErrorKind = "invalid_request"
	KindTransient      ErrorKind = "transient"
)

// Error is the classified failure returned by every Client
// implementation. Auth and invalid_request failures have already been
// judged unrecoverable; transient failures have already been retried
// by the transport before they surface here.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Classify maps a raw provider or transport error onto the failure
// taxonomy. Unknown errors classify as transient so callers treat
// anything unrecognized as worth a later retry rather than a dead end.
func Classify(err error) *Error {
	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}

	var openaiErr *openai.APIError
	if errors.As(err, &openaiErr) {
		message := openaiErr.Message
		if message == "" {
			message = err.Error()
		}
		return &Error{Kind: kindForStatus(openaiErr.HTTPStatusCode), Message: message}
	}

	var openaiReqErr *openai.RequestError
	if errors.As(err, &openaiReqErr) {
		return &Error{Kind: kindForStatus(openaiReqErr.HTTPStatusCode), Message: err.Error()}
	}

	var anthropicErr *anthropic.Error
	if errors.As(err, &anthropicErr) {
		return &Error{Kind: kindForStatus(anthropicErr.StatusCode), Message: err.Error()}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Error{Kind: KindTransient, Message: err.Error()}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTransient, Message: err.Error()}
	}

	return &Error{Kind: KindTransient, Message: err.Error()}
}

func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindAuth
	case status == http.StatusTooManyRequests:
		return KindTransient
	case status >= http.StatusInternalServerError:
		return KindTransient
	case status >= http.StatusBadRequest:
		return KindInvalidRequest
	default:
		return KindTransient
	}
}
