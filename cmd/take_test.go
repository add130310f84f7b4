package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terappia/terapp/internal/question"
	"github.com/terappia/terapp/internal/survey"
)

func testSession(t *testing.T) *survey.Session {
	t.Helper()
	alt, err := question.NewAlternative(question.AlternativeProps{
		ID: "gender", Title: "Gender", Alternatives: []string{"Male", "Female"}, Labels: []string{"Masculino", "Feminino"},
	})
	require.NoError(t, err)
	num, err := question.NewNumber(question.NumberProps{ID: "cgpa", Title: "CGPA", Min: 0, Max: 10})
	require.NoError(t, err)
	sl, err := question.NewSlider(question.SliderProps{ID: "pressure", Title: "Pressure", Min: 1, Max: 5, Step: 1, DefaultValue: 3})
	require.NoError(t, err)

	s := survey.NewSession()
	s.Apply([]question.Question{question.Decorate(alt), question.Decorate(num), question.Decorate(sl)})
	return s
}

func TestPrompter_AnswersEveryQuestion(t *testing.T) {
	s := testSession(t)
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("2\n7.5\n\n"), &out)

	require.NoError(t, p.run(s))

	responses, err := s.Submission()
	require.NoError(t, err)
	assert.Equal(t, "Female", responses["gender"])
	assert.Equal(t, 7.5, responses["cgpa"])
	assert.Equal(t, 3.0, responses["pressure"], "empty line takes the slider default")

	assert.Contains(t, out.String(), "[1/3] Gender")
	assert.Contains(t, out.String(), "2) Feminino")
}

func TestPrompter_RepromptsOnRejectedAnswer(t *testing.T) {
	s := testSession(t)
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("Other\n\nMale\n11\nabc\n9\n5\n"), &out)

	require.NoError(t, p.run(s))

	responses, err := s.Submission()
	require.NoError(t, err)
	assert.Equal(t, "Male", responses["gender"], "options can be typed by value")
	assert.Equal(t, 9.0, responses["cgpa"])
	assert.Equal(t, 5.0, responses["pressure"])

	text := out.String()
	assert.Contains(t, text, "not one of the alternatives")
	assert.Contains(t, text, "An answer is required.")
	assert.Contains(t, text, "outside 0..10")
	assert.Contains(t, text, "expected a number")
}

func TestPrompter_InputClosed(t *testing.T) {
	s := testSession(t)
	p := newPrompter(strings.NewReader("1\n"), &bytes.Buffer{})

	err := p.run(s)
	require.ErrorIs(t, err, errInputClosed)
	assert.Equal(t, 1, s.Store.Answered())
}

func TestPrompter_OffStepSliderDefault(t *testing.T) {
	sl, err := question.NewSlider(question.SliderProps{ID: "s", Title: "Stress", Min: 0, Max: 10, Step: 3, DefaultValue: 5})
	require.NoError(t, err)
	s := survey.NewSession()
	s.Apply([]question.Question{question.Decorate(sl)})

	var out bytes.Buffer
	require.NoError(t, newPrompter(strings.NewReader("\n"), &out).run(s))

	responses, err := s.Submission()
	require.NoError(t, err)
	assert.Equal(t, 5.0, responses["s"])
	assert.NotContains(t, out.String(), "not on a step")
}
