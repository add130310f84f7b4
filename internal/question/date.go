package question

import (
	"fmt"
	"strings"
	"time"
)

// DateProps are the construction inputs of a Date. Bounds are optional.
type DateProps struct {
	ID          string `validate:"required"`
	Title       string `validate:"required"`
	Description string
	Min         string `validate:"omitempty,datetime=2006-01-02"`
	Max         string `validate:"omitempty,datetime=2006-01-02"`
}

// Date is a calendar-date question with optional inclusive bounds.
type Date struct {
	Base
	min string
	max string
}

var _ Question = Date{}

// NewDate validates p and builds a Date.
func NewDate(p DateProps) (Date, error) {
	if err := validate.Struct(p); err != nil {
		return Date{}, fmt.Errorf("date question %q: %w", p.ID, err)
	}
	return Date{
		Base: newBase(p.ID, p.Title, p.Description),
		min:  p.Min,
		max:  p.Max,
	}, nil
}

func (d Date) Kind() Kind { return KindDate }

// Min returns the lower bound, or "" when unbounded.
func (d Date) Min() string { return d.min }

// Max returns the upper bound, or "" when unbounded.
func (d Date) Max() string { return d.max }

// WithResponse accepts a YYYY-MM-DD string or a time.Time and stores the
// normalized string form.
func (d Date) WithResponse(v any) (Question, error) {
	var t time.Time
	switch x := v.(type) {
	case time.Time:
		t = x
	case string:
		parsed, err := time.Parse(DateLayout, strings.TrimSpace(x))
		if err != nil {
			return nil, &ResponseError{QuestionID: d.id, Value: v, Reason: "expected a date as YYYY-MM-DD"}
		}
		t = parsed
	default:
		return nil, &ResponseError{QuestionID: d.id, Value: v, Reason: "expected a date"}
	}

	s := t.Format(DateLayout)
	// Same layout, so lexical order is chronological order.
	if d.min != "" && s < d.min {
		return nil, &ResponseError{QuestionID: d.id, Value: v, Reason: "before " + d.min}
	}
	if d.max != "" && s > d.max {
		return nil, &ResponseError{QuestionID: d.id, Value: v, Reason: "after " + d.max}
	}
	d.setResponse(s)
	return d, nil
}
