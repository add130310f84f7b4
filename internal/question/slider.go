package question

import (
	"fmt"
	"math"
	"slices"
)

// SliderProps are the construction inputs of a Slider.
type SliderProps struct {
	ID           string `validate:"required"`
	Title        string `validate:"required"`
	Description  string
	Min          float64
	Max          float64 `validate:"gtefield=Min"`
	Step         float64 `validate:"gt=0"`
	DefaultValue float64 `validate:"gtefield=Min,ltefield=Max"`
	Labels       []string
}

// Slider is a stepped numeric scale.
type Slider struct {
	Base
	min          float64
	max          float64
	step         float64
	defaultValue float64
	labels       []string
}

var _ Question = Slider{}

// NewSlider validates p and builds a Slider.
func NewSlider(p SliderProps) (Slider, error) {
	if err := validate.Struct(p); err != nil {
		return Slider{}, fmt.Errorf("slider question %q: %w", p.ID, err)
	}
	return Slider{
		Base:         newBase(p.ID, p.Title, p.Description),
		min:          p.Min,
		max:          p.Max,
		step:         p.Step,
		defaultValue: p.DefaultValue,
		labels:       slices.Clone(p.Labels),
	}, nil
}

func (s Slider) Kind() Kind            { return KindSlider }
func (s Slider) Min() float64          { return s.min }
func (s Slider) Max() float64          { return s.max }
func (s Slider) Step() float64         { return s.step }
func (s Slider) DefaultValue() float64 { return s.defaultValue }
func (s Slider) Labels() []string      { return slices.Clone(s.labels) }

// Ticks returns the number of selectable positions.
func (s Slider) Ticks() int {
	return int(math.Round((s.max-s.min)/s.step)) + 1
}

// Label returns the label of value when the slider has one label per tick.
func (s Slider) Label(value float64) string {
	if len(s.labels) != s.Ticks() {
		return ""
	}
	i := int(math.Round((value - s.min) / s.step))
	if i < 0 || i >= len(s.labels) {
		return ""
	}
	return s.labels[i]
}

// EndLabels returns the labels of both ends of the scale, if any.
func (s Slider) EndLabels() (lo, hi string) {
	if len(s.labels) == 0 {
		return "", ""
	}
	return s.labels[0], s.labels[len(s.labels)-1]
}

// Clamp snaps value to the nearest tick inside the range.
func (s Slider) Clamp(value float64) float64 {
	value = math.Max(s.min, math.Min(s.max, value))
	k := math.Round((value - s.min) / s.step)
	return math.Min(s.max, s.min+k*s.step)
}

func (s Slider) WithResponse(v any) (Question, error) {
	f, err := toFloat(v)
	if err != nil {
		return nil, &ResponseError{QuestionID: s.id, Value: v, Reason: "expected a number"}
	}
	if f < s.min || f > s.max {
		return nil, &ResponseError{
			QuestionID: s.id,
			Value:      v,
			Reason:     "outside " + formatFloat(s.min) + ".." + formatFloat(s.max),
		}
	}
	if !s.onStop(f) {
		return nil, &ResponseError{QuestionID: s.id, Value: v, Reason: "not on a step of " + formatFloat(s.step)}
	}
	s.setResponse(f)
	return s, nil
}

// onStop reports whether f is a selectable position: a step from min, max,
// or the default value.
func (s Slider) onStop(f float64) bool {
	const eps = 1e-9
	if math.Abs(f-s.max) < eps || math.Abs(f-s.defaultValue) < eps {
		return true
	}
	k := (f - s.min) / s.step
	return math.Abs(k-math.Round(k)) < eps
}
