package repository

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Prediction is the result returned by the prediction service. Raw holds
// the body exactly as received; the typed fields are a read-only view of it.
type Prediction struct {
	Prediction      int               `json:"prediction"`
	Probability     []float64         `json:"probability"`
	DepressionRisk  string            `json:"depression_risk"`
	FeatureFeedback []FeatureFeedback `json:"feature_feedback"`

	Raw json.RawMessage `json:"-"`
	// StatusCode is the HTTP status the prediction arrived with.
	StatusCode int `json:"-"`
}

// FeatureFeedback explains how one answer weighed on the prediction.
type FeatureFeedback struct {
	Feature     string  `json:"feature"`
	UserValue   any     `json:"user_value"`
	Importance  float64 `json:"importance"`
	ImpactLevel string  `json:"impact_level"`
	Message     string  `json:"message"`
	Context     string  `json:"context"`
}

// ParsePrediction decodes body, keeping a copy of it in Raw.
func ParsePrediction(body []byte) (*Prediction, error) {
	var p Prediction
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, err
	}
	p.Raw = append(json.RawMessage(nil), body...)
	return &p, nil
}

// MarshalJSON returns the body as received.
func (p Prediction) MarshalJSON() ([]byte, error) {
	if len(p.Raw) > 0 {
		return p.Raw, nil
	}
	type plain Prediction
	return json.Marshal(plain(p))
}

// Confidence returns the probability of the predicted class, or 0 when the
// service did not report one.
func (p *Prediction) Confidence() float64 {
	if p.Prediction >= 0 && p.Prediction < len(p.Probability) {
		return p.Probability[p.Prediction]
	}
	return 0
}

// RiskLabel returns the risk text reported by the service, or a generic
// one derived from the predicted class.
func (p *Prediction) RiskLabel() string {
	if p.DepressionRisk != "" {
		return p.DepressionRisk
	}
	if p.Prediction == 1 {
		return "Signs of depression risk"
	}
	return "No signs of depression risk"
}

// TopFactors returns up to n features ordered by importance, highest first.
// Ties keep the service order. n <= 0 returns them all.
func (p *Prediction) TopFactors(n int) []FeatureFeedback {
	out := slices.Clone(p.FeatureFeedback)
	slices.SortStableFunc(out, func(a, b FeatureFeedback) int {
		return cmp.Compare(b.Importance, a.Importance)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// FormatValue renders a feature's user value for display.
func (f FeatureFeedback) FormatValue() string {
	switch v := f.UserValue.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.4f", v), "0"), ".")
	default:
		return fmt.Sprint(v)
	}
}
