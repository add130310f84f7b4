package question

import (
	"fmt"
	"strconv"
)

// NumberProps are the construction inputs of a Number.
type NumberProps struct {
	ID          string `validate:"required"`
	Title       string `validate:"required"`
	Description string
	Placeholder string
	Min         float64
	Max         float64 `validate:"gtefield=Min"`
}

// Number is a free numeric input. A 0/0 range means unbounded.
type Number struct {
	Base
	min         float64
	max         float64
	placeholder string
}

var _ Question = Number{}

// NewNumber validates p and builds a Number.
func NewNumber(p NumberProps) (Number, error) {
	if err := validate.Struct(p); err != nil {
		return Number{}, fmt.Errorf("number question %q: %w", p.ID, err)
	}
	return Number{
		Base:        newBase(p.ID, p.Title, p.Description),
		min:         p.Min,
		max:         p.Max,
		placeholder: p.Placeholder,
	}, nil
}

func (n Number) Kind() Kind          { return KindNumber }
func (n Number) Min() float64        { return n.min }
func (n Number) Max() float64        { return n.max }
func (n Number) Placeholder() string { return n.placeholder }

// Bounded reports whether the question constrains its range.
func (n Number) Bounded() bool {
	return n.min != 0 || n.max != 0
}

func (n Number) WithResponse(v any) (Question, error) {
	f, err := toFloat(v)
	if err != nil {
		return nil, &ResponseError{QuestionID: n.id, Value: v, Reason: "expected a number"}
	}
	if n.Bounded() && (f < n.min || f > n.max) {
		return nil, &ResponseError{
			QuestionID: n.id,
			Value:      v,
			Reason:     "outside " + formatFloat(n.min) + ".." + formatFloat(n.max),
		}
	}
	n.setResponse(f)
	return n, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
