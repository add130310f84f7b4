package question

import (
	"fmt"
	"slices"
)

// AlternativeProps are the construction inputs of an Alternative.
type AlternativeProps struct {
	ID           string   `validate:"required"`
	Title        string   `validate:"required"`
	Description  string
	Alternatives []string `validate:"required,min=1,dive,required"`
	Labels       []string
}

// Alternative is a single-choice question over an ordered list of options.
type Alternative struct {
	Base
	alternatives []string
	labels       []string
}

var _ Question = Alternative{}

// NewAlternative validates p and builds an Alternative. Labels default to
// the alternatives themselves when omitted.
func NewAlternative(p AlternativeProps) (Alternative, error) {
	if p.Labels == nil {
		p.Labels = p.Alternatives
	}
	if err := validate.Struct(p); err != nil {
		return Alternative{}, fmt.Errorf("alternative question %q: %w", p.ID, err)
	}
	return Alternative{
		Base:         newBase(p.ID, p.Title, p.Description),
		alternatives: slices.Clone(p.Alternatives),
		labels:       slices.Clone(p.Labels),
	}, nil
}

func (a Alternative) Kind() Kind { return KindAlternative }

// Alternatives returns the option values in order.
func (a Alternative) Alternatives() []string { return slices.Clone(a.alternatives) }

// Labels returns the display labels, parallel to Alternatives.
func (a Alternative) Labels() []string { return slices.Clone(a.labels) }

// LabelFor returns the display label of an option value, or the value itself.
func (a Alternative) LabelFor(value string) string {
	if i := slices.Index(a.alternatives, value); i >= 0 {
		return a.labels[i]
	}
	return value
}

func (a Alternative) WithResponse(v any) (Question, error) {
	s, ok := v.(string)
	if !ok {
		return nil, &ResponseError{QuestionID: a.id, Value: v, Reason: "expected an option string"}
	}
	if !slices.Contains(a.alternatives, s) {
		return nil, &ResponseError{QuestionID: a.id, Value: v, Reason: "not one of the alternatives"}
	}
	a.setResponse(s)
	return a, nil
}
