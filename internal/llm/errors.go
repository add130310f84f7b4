package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrDisabled is returned when no provider is configured.
	ErrDisabled = errors.New("no LLM provider configured")

	// ErrTruncated reports a reply cut off by the token limit.
	ErrTruncated = errors.New("response truncated: max tokens exceeded")
)

// APIError is a failed call to a provider API.
type APIError struct {
	Provider   string
	StatusCode int // 0 when the request never got a response
	Err        error
}

func (e *APIError) Error() string {
	switch {
	case e.RateLimited():
		return fmt.Sprintf("%s: rate limited: %v", e.Provider, e.Err)
	case e.StatusCode == 0:
		return fmt.Sprintf("%s unavailable: %v", e.Provider, e.Err)
	default:
		return fmt.Sprintf("%s: HTTP %d: %v", e.Provider, e.StatusCode, e.Err)
	}
}

func (e *APIError) Unwrap() error { return e.Err }

// RateLimited reports a 429 response.
func (e *APIError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// ErrInvalidResponse indicates the model returned content that does not
// conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }
