package insight

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terappia/terapp/internal/llm"
	"github.com/terappia/terapp/internal/question"
	"github.com/terappia/terapp/internal/repository"
)

func validInsightJSON() json.RawMessage {
	return json.RawMessage(`{
		"summary": "Suas respostas indicam sinais de sobrecarga.",
		"highlights": ["Pressão acadêmica alta", "Menos de 5h de sono"],
		"suggestions": ["Converse com o serviço de apoio da universidade."]
	}`)
}

func testPrediction() *repository.Prediction {
	return &repository.Prediction{
		Prediction:     1,
		Probability:    []float64{0.2, 0.8},
		DepressionRisk: "Alto",
		FeatureFeedback: []repository.FeatureFeedback{
			{Feature: "academic_pressure", UserValue: 5.0, ImpactLevel: "high", Message: "Pressão muito alta"},
		},
	}
}

func testQuestions(t *testing.T) []question.Question {
	t.Helper()
	sleep, err := question.NewAlternative(question.AlternativeProps{
		ID: "sleep", Title: "Horas de sono", Alternatives: []string{"lt5", "7-8"}, Labels: []string{"Menos de 5h", "7-8h"},
	})
	require.NoError(t, err)
	answered, err := sleep.WithResponse("lt5")
	require.NoError(t, err)

	cgpa, err := question.NewNumber(question.NumberProps{ID: "cgpa", Title: "CGPA"})
	require.NoError(t, err)

	return []question.Question{answered, cgpa}
}

func TestNewInput_SkipsUnanswered(t *testing.T) {
	in := NewInput(testPrediction(), testQuestions(t))
	require.Len(t, in.Answers, 1)
	assert.Equal(t, Answer{Question: "Horas de sono", Answer: "Menos de 5h"}, in.Answers[0])
}

func TestService_Explain(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validInsightJSON()})
	svc := NewService(mock, DefaultConfig())

	got, err := svc.Explain(t.Context(), NewInput(testPrediction(), testQuestions(t)))
	require.NoError(t, err)

	assert.Equal(t, "Suas respostas indicam sinais de sobrecarga.", got.Summary)
	assert.Len(t, got.Highlights, 2)
	assert.Equal(t, Disclaimer, got.Disclaimer)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Equal(t, InsightSchema, req.Schema)
	assert.Equal(t, 600, req.MaxTokens)
	require.Len(t, req.Messages, 1)
	assert.Contains(t, req.Messages[0].Content, "Screening result: Alto")
	assert.Contains(t, req.Messages[0].Content, "Model confidence: 80%")
	assert.Contains(t, req.Messages[0].Content, "academic_pressure = 5 (impact: high): Pressão muito alta")
	assert.Contains(t, req.Messages[0].Content, "- Horas de sono: Menos de 5h")
	assert.Contains(t, req.Messages[0].Content, "Brazilian Portuguese")
}

func TestService_ExplainRejectsInvalidOutput(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"summary":"ok"}`)})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Explain(t.Context(), Input{Prediction: testPrediction()})
	require.Error(t, err)

	var invalid *llm.ErrInvalidResponse
	assert.True(t, errors.As(err, &invalid))
}

func TestService_ExplainProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.APIError{Provider: "mock", StatusCode: 429}})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Explain(t.Context(), Input{Prediction: testPrediction()})
	var apiErr *llm.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.RateLimited())
}

func TestService_Disabled(t *testing.T) {
	svc := NewService(nil, DefaultConfig())
	assert.False(t, svc.Enabled())

	_, err := svc.Explain(t.Context(), Input{Prediction: testPrediction()})
	assert.ErrorIs(t, err, llm.ErrDisabled)
}

func TestService_NoPrediction(t *testing.T) {
	mock := llm.NewMockProvider()
	_, err := NewService(mock, DefaultConfig()).Explain(t.Context(), Input{})
	require.Error(t, err)
	assert.Equal(t, 0, mock.CallCount())
}
