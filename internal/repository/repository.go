// Package repository talks to the remote survey API: it fetches the
// question list and submits answers for a prediction.
package repository

import (
	"context"

	"github.com/terappia/terapp/internal/question"
)

// Responses maps question id to response value. It is the body of a
// prediction request.
type Responses map[string]any

// QuestionSource fetches the survey questions.
type QuestionSource interface {
	// GetQuestions returns the mapped question list. Any failure yields an
	// empty list.
	GetQuestions(ctx context.Context) []question.Question
}

// FeedbackRequester submits answers and returns the prediction.
type FeedbackRequester interface {
	RequestFeedback(ctx context.Context, responses Responses) (*Prediction, error)
}

// Repository is a question source that can also request feedback.
type Repository interface {
	QuestionSource
	FeedbackRequester
}

// FeedbackFrom returns the feedback capability of src, or nil and
// ErrNoFeedback when src only serves questions.
func FeedbackFrom(src QuestionSource) (FeedbackRequester, error) {
	if f, ok := src.(FeedbackRequester); ok {
		return f, nil
	}
	return nil, ErrNoFeedback
}

type contextKey string

const sessionKey contextKey = "survey_session"

// WithSessionID attaches a survey session id to the context for recording.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey, id)
}

// SessionIDFrom extracts the survey session id from the context.
func SessionIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(sessionKey).(string); ok {
		return v
	}
	return ""
}
