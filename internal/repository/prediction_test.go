package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrediction_KeepsRawBody(t *testing.T) {
	p, err := ParsePrediction([]byte(predictionBody))
	require.NoError(t, err)

	assert.Equal(t, 1, p.Prediction)
	assert.Equal(t, "Alto", p.DepressionRisk)
	assert.InDelta(t, 0.7, p.Confidence(), 1e-9)

	b, err := p.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, predictionBody, string(b))
}

func TestPrediction_Confidence_OutOfRange(t *testing.T) {
	p := &Prediction{Prediction: 2, Probability: []float64{0.4, 0.6}}
	assert.Equal(t, 0.0, p.Confidence())
}

func TestPrediction_RiskLabel(t *testing.T) {
	assert.Equal(t, "Alto", (&Prediction{DepressionRisk: "Alto"}).RiskLabel())
	assert.Equal(t, "Signs of depression risk", (&Prediction{Prediction: 1}).RiskLabel())
	assert.Equal(t, "No signs of depression risk", (&Prediction{}).RiskLabel())
}

func TestPrediction_TopFactors(t *testing.T) {
	p := &Prediction{FeatureFeedback: []FeatureFeedback{
		{Feature: "sleep", Importance: 0.1},
		{Feature: "pressure", Importance: 0.5},
		{Feature: "cgpa", Importance: 0.1},
		{Feature: "age", Importance: 0.3},
	}}

	got := p.TopFactors(3)
	require.Len(t, got, 3)
	assert.Equal(t, "pressure", got[0].Feature)
	assert.Equal(t, "age", got[1].Feature)
	assert.Equal(t, "sleep", got[2].Feature, "ties keep service order")

	assert.Len(t, p.TopFactors(0), 4)
	assert.Equal(t, "sleep", p.FeatureFeedback[0].Feature, "input is not reordered")
}

func TestFeatureFeedback_FormatValue(t *testing.T) {
	assert.Equal(t, "", FeatureFeedback{}.FormatValue())
	assert.Equal(t, "Male", FeatureFeedback{UserValue: "Male"}.FormatValue())
	assert.Equal(t, "8.5", FeatureFeedback{UserValue: 8.5}.FormatValue())
	assert.Equal(t, "3", FeatureFeedback{UserValue: 3.0}.FormatValue())
	assert.Equal(t, "true", FeatureFeedback{UserValue: true}.FormatValue())
}
