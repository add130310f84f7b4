package repository

import (
	"errors"
	"fmt"
)

// ErrNoFeedback indicates the configured source cannot request predictions.
var ErrNoFeedback = errors.New("repository does not support feedback requests")

// StatusError indicates the prediction service answered with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("prediction request failed: %s", e.Status)
	}
	return fmt.Sprintf("prediction request failed: HTTP %d", e.StatusCode)
}

// UnavailableError indicates the prediction service could not be reached.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("prediction service unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// DecodeError indicates a 2xx prediction body that is not a prediction.
type DecodeError struct {
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode prediction: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
