package llm

import "testing"

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.5-flash", "gemini-2.5-flash"}, // Pass-through
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, geminiModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type":        "object",
		"description": "insight",
		"properties": map[string]any{
			"summary": map[string]any{"type": "string"},
			"score":   map[string]any{"type": "integer"},
			"level":   map[string]any{"type": "string", "enum": []any{"baixo", "alto"}},
			"tips": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []string{"summary", "tips"},
	}

	s := geminiSchema(def)

	if s.Type != "OBJECT" || s.Description != "insight" {
		t.Fatalf("root = %s %q", s.Type, s.Description)
	}
	if len(s.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(s.Properties))
	}
	if s.Properties["score"].Type != "INTEGER" {
		t.Fatalf("score type = %s", s.Properties["score"].Type)
	}
	if len(s.Properties["level"].Enum) != 2 {
		t.Fatalf("expected 2 enum values, got %d", len(s.Properties["level"].Enum))
	}
	if s.Properties["tips"].Items == nil || s.Properties["tips"].Items.Type != "STRING" {
		t.Fatalf("tips items = %+v", s.Properties["tips"].Items)
	}
	if len(s.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(s.Required))
	}
}
