package insight

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/terappia/terapp/internal/llm"
)

// Service generates insights with an LLM provider.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates an insight service. A nil provider yields a service
// whose Explain always returns llm.ErrDisabled.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Enabled reports whether a provider is configured.
func (s *Service) Enabled() bool {
	return s != nil && s.provider != nil
}

type insightOutput struct {
	Summary     string   `json:"summary"`
	Highlights  []string `json:"highlights"`
	Suggestions []string `json:"suggestions"`
}

// Explain asks the provider for a reading of input.
func (s *Service) Explain(ctx context.Context, input Input) (*Insight, error) {
	if !s.Enabled() {
		return nil, llm.ErrDisabled
	}
	if input.Prediction == nil {
		return nil, fmt.Errorf("insight: no prediction to explain")
	}

	ctx = llm.WithPurpose(ctx, "insight")

	req := llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(buildUserMessage(input, s.cfg)),
		Schema:      InsightSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("insight generation: %w", err)
	}

	var out insightOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse insight response: %w", err)
	}

	return &Insight{
		Summary:     out.Summary,
		Highlights:  out.Highlights,
		Suggestions: out.Suggestions,
		Disclaimer:  Disclaimer,
	}, nil
}
