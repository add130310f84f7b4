package insight

import "github.com/terappia/terapp/internal/llm"

// InsightSchema is the structured output requested from the provider.
var InsightSchema = &llm.Schema{
	Name:        "survey-insight",
	Description: "A supportive reading of a student mental health screening result",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "Two or three sentences describing the result in plain language",
			},
			"highlights": map[string]any{
				"type":        "array",
				"description": "Answers that weighed most on the result",
				"items":       map[string]any{"type": "string"},
				"maxItems":    5,
			},
			"suggestions": map[string]any{
				"type":        "array",
				"description": "Small, concrete self-care suggestions",
				"items":       map[string]any{"type": "string"},
				"maxItems":    5,
			},
		},
		"required":             []any{"summary", "highlights", "suggestions"},
		"additionalProperties": false,
	},
}
