package question

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moodQuestion(t *testing.T) Alternative {
	t.Helper()
	q, err := NewAlternative(AlternativeProps{
		ID:           "q1",
		Title:        "Mood?",
		Alternatives: []string{"good", "bad"},
	})
	require.NoError(t, err)
	return q
}

func TestNewAlternative_LabelsDefaultToAlternatives(t *testing.T) {
	q := moodQuestion(t)
	assert.Equal(t, []string{"good", "bad"}, q.Alternatives())
	assert.Equal(t, []string{"good", "bad"}, q.Labels())
	assert.Equal(t, KindAlternative, q.Kind())
}

func TestNewAlternative_Invariants(t *testing.T) {
	tests := []struct {
		name  string
		props AlternativeProps
	}{
		{"missing id", AlternativeProps{Title: "t", Alternatives: []string{"a"}}},
		{"missing title", AlternativeProps{ID: "q", Alternatives: []string{"a"}}},
		{"empty alternatives", AlternativeProps{ID: "q", Title: "t", Alternatives: []string{}}},
		{"label count mismatch", AlternativeProps{ID: "q", Title: "t", Alternatives: []string{"a", "b"}, Labels: []string{"A"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAlternative(tt.props)
			require.Error(t, err)
		})
	}
}

func TestAlternative_WithResponseDoesNotMutate(t *testing.T) {
	q := moodQuestion(t)

	updated, err := q.WithResponse("bad")
	require.NoError(t, err)

	v, ok := updated.Response()
	assert.True(t, ok)
	assert.Equal(t, "bad", v)

	_, ok = q.Response()
	assert.False(t, ok, "original question must stay unanswered")
}

func TestAlternative_RejectsUnknownOption(t *testing.T) {
	q := moodQuestion(t)
	_, err := q.WithResponse("meh")

	var re *ResponseError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "q1", re.QuestionID)
}

func TestNewDate_BoundsOrder(t *testing.T) {
	_, err := NewDate(DateProps{ID: "age", Title: "Birth date", Min: "2010-01-01", Max: "2000-01-01"})
	require.Error(t, err)

	_, err = NewDate(DateProps{ID: "age", Title: "Birth date", Max: "01/01/2000"})
	require.Error(t, err)

	q, err := NewDate(DateProps{ID: "age", Title: "Birth date", Max: "2010-12-31"})
	require.NoError(t, err)
	assert.Equal(t, "", q.Min())
}

func TestDate_WithResponse(t *testing.T) {
	q, err := NewDate(DateProps{ID: "age", Title: "Birth date", Min: "1950-01-01", Max: "2010-12-31"})
	require.NoError(t, err)

	updated, err := q.WithResponse("2001-05-17")
	require.NoError(t, err)
	v, _ := updated.Response()
	assert.Equal(t, "2001-05-17", v)

	updated, err = q.WithResponse(time.Date(1999, 2, 3, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	v, _ = updated.Response()
	assert.Equal(t, "1999-02-03", v)

	_, err = q.WithResponse("2020-01-01")
	assert.Error(t, err)
	_, err = q.WithResponse("yesterday")
	assert.Error(t, err)
}

func TestNumber_Bounds(t *testing.T) {
	_, err := NewNumber(NumberProps{ID: "cgpa", Title: "CGPA", Min: 10, Max: 0})
	require.Error(t, err)

	q, err := NewNumber(NumberProps{ID: "cgpa", Title: "CGPA", Min: 0, Max: 10})
	require.NoError(t, err)
	assert.True(t, q.Bounded())

	updated, err := q.WithResponse("7.5")
	require.NoError(t, err)
	v, _ := updated.Response()
	assert.Equal(t, 7.5, v)

	_, err = q.WithResponse(11)
	assert.Error(t, err)
	_, err = q.WithResponse("abc")
	assert.Error(t, err)
}

func TestNumber_UnboundedByDefault(t *testing.T) {
	q, err := NewNumber(NumberProps{ID: "hours", Title: "Hours"})
	require.NoError(t, err)
	assert.False(t, q.Bounded())

	_, err = q.WithResponse(1000)
	assert.NoError(t, err)
}

func TestNewSlider_Invariants(t *testing.T) {
	tests := []struct {
		name  string
		props SliderProps
	}{
		{"zero step", SliderProps{ID: "s", Title: "t", Min: 0, Max: 10, Step: 0, DefaultValue: 5}},
		{"default below min", SliderProps{ID: "s", Title: "t", Min: 1, Max: 10, Step: 1, DefaultValue: 0}},
		{"default above max", SliderProps{ID: "s", Title: "t", Min: 1, Max: 10, Step: 1, DefaultValue: 11}},
		{"min above max", SliderProps{ID: "s", Title: "t", Min: 10, Max: 1, Step: 1, DefaultValue: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSlider(tt.props)
			require.Error(t, err)
		})
	}
}

func TestSlider_WithResponse(t *testing.T) {
	q, err := NewSlider(SliderProps{ID: "q2", Title: "Stress", Min: 0, Max: 10, Step: 2, DefaultValue: 4})
	require.NoError(t, err)
	assert.Equal(t, 6, q.Ticks())

	updated, err := q.WithResponse(6)
	require.NoError(t, err)
	v, _ := updated.Response()
	assert.Equal(t, 6.0, v)

	_, err = q.WithResponse(5)
	assert.Error(t, err, "off-step value")
	_, err = q.WithResponse(12)
	assert.Error(t, err, "out of range")
}

func TestSlider_OffStepDefaultAndMaxAccepted(t *testing.T) {
	q, err := NewSlider(SliderProps{ID: "s", Title: "Stress", Min: 0, Max: 10, Step: 3, DefaultValue: 5})
	require.NoError(t, err)

	for _, v := range []any{q.DefaultValue(), 10.0, 9, "6"} {
		_, err := q.WithResponse(v)
		assert.NoError(t, err, "value %v", v)
	}
	_, err = q.WithResponse(7)
	assert.Error(t, err, "7 is neither a step, the default nor max")
}

func TestSlider_LabelsAndClamp(t *testing.T) {
	q, err := NewSlider(SliderProps{
		ID: "p", Title: "Pressure", Min: 1, Max: 3, Step: 1, DefaultValue: 2,
		Labels: []string{"low", "mid", "high"},
	})
	require.NoError(t, err)

	assert.Equal(t, "mid", q.Label(2))
	lo, hi := q.EndLabels()
	assert.Equal(t, "low", lo)
	assert.Equal(t, "high", hi)
	assert.Equal(t, 3.0, q.Clamp(9))
	assert.Equal(t, 1.0, q.Clamp(1.2))
}

func TestWithLayout_ForwardsToInner(t *testing.T) {
	d := Decorate(moodQuestion(t))

	assert.Equal(t, "q1", d.ID())
	assert.Equal(t, "Mood?", d.Title())
	assert.Equal(t, ControlChoice, d.Layout().Control)
	assert.True(t, d.Layout().Inline)

	updated, err := d.WithResponse("good")
	require.NoError(t, err)

	decorated, ok := updated.(WithLayout)
	require.True(t, ok, "decorator must survive an update")
	assert.Equal(t, d.Layout(), decorated.Layout())

	v, ok := decorated.Response()
	assert.True(t, ok)
	assert.Equal(t, "good", v)

	inner, ok := Unwrap(decorated).(Alternative)
	require.True(t, ok)
	v, _ = inner.Response()
	assert.Equal(t, "good", v)
}

func TestDecorate_Idempotent(t *testing.T) {
	d := Decorate(moodQuestion(t))
	again := Decorate(d)
	_, nested := again.Unwrap().(WithLayout)
	assert.False(t, nested)
}

func TestLayoutOf_Slider(t *testing.T) {
	q, err := NewSlider(SliderProps{ID: "q2", Title: "Stress", Min: 0, Max: 10, Step: 1, DefaultValue: 5})
	require.NoError(t, err)

	l := LayoutOf(q)
	assert.Equal(t, ControlSlider, l.Control)
	assert.Equal(t, 11, l.Ticks)
}

func TestFormatResponse(t *testing.T) {
	alt, err := NewAlternative(AlternativeProps{
		ID: "sleep", Title: "Sleep", Alternatives: []string{"lt5", "5-6"}, Labels: []string{"Less than 5h", "5-6h"},
	})
	require.NoError(t, err)

	assert.Equal(t, "", FormatResponse(alt))

	answered, err := Decorate(alt).WithResponse("lt5")
	require.NoError(t, err)
	assert.Equal(t, "Less than 5h", FormatResponse(answered))

	num, err := NewNumber(NumberProps{ID: "cgpa", Title: "CGPA", Max: 10})
	require.NoError(t, err)
	answered, err = num.WithResponse(8.25)
	require.NoError(t, err)
	assert.Equal(t, "8.25", FormatResponse(answered))
}
