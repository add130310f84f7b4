package question

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the concrete question type.
type Kind string

const (
	KindAlternative Kind = "alternative"
	KindDate        Kind = "date"
	KindNumber      Kind = "number"
	KindSlider      Kind = "slider"
)

// Question is a single form field: identity, prompt text, and a response slot.
//
// Implementations are values. WithResponse never modifies the receiver; it
// returns a copy carrying the new response, so a Question can be shared
// between readers while the survey store produces updated copies.
type Question interface {
	ID() string
	Title() string
	Description() string
	Kind() Kind

	// Response returns the current response and whether one has been set.
	Response() (any, bool)

	// WithResponse validates v against the question's rule and returns a
	// copy with the normalized response set.
	WithResponse(v any) (Question, error)
}

// Base holds the identity fields shared by every question type.
type Base struct {
	id          string
	title       string
	description string
	response    any
	answered    bool
}

func newBase(id, title, description string) Base {
	return Base{id: id, title: title, description: description}
}

func (b Base) ID() string          { return b.id }
func (b Base) Title() string       { return b.title }
func (b Base) Description() string { return b.description }

func (b Base) Response() (any, bool) {
	return b.response, b.answered
}

func (b *Base) setResponse(v any) {
	b.response = v
	b.answered = true
}

// ResponseError reports a response value rejected by a question.
type ResponseError struct {
	QuestionID string
	Value      any
	Reason     string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("invalid response %v for question %q: %s", e.Value, e.QuestionID, e.Reason)
}

// Unwrap returns the innermost question behind any decorators.
func Unwrap(q Question) Question {
	for {
		u, ok := q.(interface{ Unwrap() Question })
		if !ok {
			return q
		}
		q = u.Unwrap()
	}
}

// toFloat coerces the numeric shapes a UI or JSON decoder may hand us.
func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}
