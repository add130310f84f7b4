package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/terappia/terapp/internal/store"
)

// RecordingRequester is a decorator that records every feedback request in
// the history log.
type RecordingRequester struct {
	inner     FeedbackRequester
	eventRepo store.EventRepo
	apiURL    string
}

// WithRecorder wraps a FeedbackRequester with submission recording. The
// session id is taken from the request context (see WithSessionID).
func WithRecorder(f FeedbackRequester, repo store.EventRepo) FeedbackRequester {
	r := &RecordingRequester{inner: f, eventRepo: repo}
	if b, ok := f.(interface{ BaseURL() string }); ok {
		r.apiURL = b.BaseURL()
	}
	return r
}

func (r *RecordingRequester) RequestFeedback(ctx context.Context, responses Responses) (*Prediction, error) {
	start := time.Now()

	p, err := r.inner.RequestFeedback(ctx, responses)

	data := store.SubmissionData{
		SessionID: SessionIDFrom(ctx),
		APIURL:    r.apiURL,
		Responses: encodeResponses(responses),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if p != nil {
		data.StatusCode = p.StatusCode
		data.Prediction = string(p.Raw)
		data.DepressionRisk = p.DepressionRisk
		data.Probability = p.Confidence()
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		var se *StatusError
		if errors.As(err, &se) {
			data.StatusCode = se.StatusCode
		}
	}

	// Record the submission but don't fail the request if recording fails.
	if _, recErr := r.eventRepo.AppendSubmission(ctx, data); recErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record submission: %v\n", recErr)
	}

	return p, err
}

func encodeResponses(responses Responses) string {
	b, err := json.Marshal(responses)
	if err != nil {
		return "{}"
	}
	return string(b)
}
