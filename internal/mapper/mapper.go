// Package mapper turns loosely-typed question records received from the
// survey API into validated question values.
//
// Mapping is lossy by design: a record that cannot be turned into a
// question (unknown type, wrong shape, broken invariant) is dropped and
// the rest of the survey is still usable.
package mapper

import (
	"encoding/json"
	"fmt"

	"github.com/terappia/terapp/internal/question"
)

// RawQuestion is one `{type, data}` record as received from the network.
type RawQuestion struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// MapQuestions maps every record, preserving the order of the ones that
// survive.
func MapQuestions(raw []RawQuestion) []question.Question {
	out := make([]question.Question, 0, len(raw))
	for _, r := range raw {
		if q, ok := MapQuestion(r); ok {
			out = append(out, q)
		}
	}
	return out
}

// MapQuestion maps a single record. It reports false instead of failing
// when the record is not a usable question.
func MapQuestion(raw RawQuestion) (q question.Question, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			q, ok = nil, false
		}
	}()

	q, err := mapQuestion(raw)
	if err != nil {
		return nil, false
	}
	return q, true
}

// ParseQuestions decodes a response body holding a JSON array of records
// and maps it. Elements that are not records are skipped like malformed
// records; only a body that is not an array is an error.
func ParseQuestions(body []byte) ([]question.Question, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(body, &elems); err != nil {
		return nil, fmt.Errorf("decode question list: %w", err)
	}
	raw := make([]RawQuestion, 0, len(elems))
	for _, e := range elems {
		var r RawQuestion
		if err := json.Unmarshal(e, &r); err != nil {
			continue
		}
		raw = append(raw, r)
	}
	return MapQuestions(raw), nil
}

func mapQuestion(raw RawQuestion) (question.Question, error) {
	kind := question.Kind(raw.Type)
	schema, err := schemaFor(kind)
	if err != nil {
		return nil, err
	}
	if schema == nil {
		return nil, fmt.Errorf("unknown question type %q", raw.Type)
	}

	var doc any
	if err := json.Unmarshal(raw.Data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s data: %w", kind, err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate %s data: %w", kind, err)
	}

	var q question.Question
	switch kind {
	case question.KindAlternative:
		q, err = mapAlternative(raw.Data)
	case question.KindDate:
		q, err = mapDate(raw.Data)
	case question.KindNumber:
		q, err = mapNumber(raw.Data)
	case question.KindSlider:
		q, err = mapSlider(raw.Data)
	}
	if err != nil {
		return nil, err
	}
	return question.Decorate(q), nil
}

type alternativeData struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Alternatives []string `json:"alternatives"`
	Labels       []string `json:"labels"`
}

func mapAlternative(data json.RawMessage) (question.Question, error) {
	var d alternativeData
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	if d.Alternatives == nil {
		d.Alternatives = []string{}
	}
	if d.Labels == nil {
		d.Labels = d.Alternatives
	}
	return question.NewAlternative(question.AlternativeProps{
		ID:           d.ID,
		Title:        d.Title,
		Description:  d.Description,
		Alternatives: d.Alternatives,
		Labels:       d.Labels,
	})
}

type dateData struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Min         string `json:"min"`
	Max         string `json:"max"`
}

func mapDate(data json.RawMessage) (question.Question, error) {
	var d dateData
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return question.NewDate(question.DateProps{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Min:         d.Min,
		Max:         d.Max,
	})
}

type numberData struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Placeholder string  `json:"placeholder"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
}

func mapNumber(data json.RawMessage) (question.Question, error) {
	var d numberData
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return question.NewNumber(question.NumberProps{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Placeholder: d.Placeholder,
		Min:         d.Min,
		Max:         d.Max,
	})
}

type sliderData struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Min          float64  `json:"min"`
	Max          float64  `json:"max"`
	Step         float64  `json:"step"`
	DefaultValue float64  `json:"defaultValue"`
	Labels       []string `json:"labels"`
}

func mapSlider(data json.RawMessage) (question.Question, error) {
	var d sliderData
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return question.NewSlider(question.SliderProps{
		ID:           d.ID,
		Title:        d.Title,
		Description:  d.Description,
		Min:          d.Min,
		Max:          d.Max,
		Step:         d.Step,
		DefaultValue: d.DefaultValue,
		Labels:       d.Labels,
	})
}
