package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func riskSchema() *Schema {
	return &Schema{
		Name:        "test-risk",
		Description: "A risk summary",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"summary": map[string]any{"type": "string"},
				"score":   map[string]any{"type": "integer", "minimum": 0},
				"level":   map[string]any{"type": "string", "enum": []any{"baixo", "moderado", "alto"}},
			},
			"required": []any{"summary", "score"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"summary":"ok","score":2,"level":"alto"}`, false},
		{"optional omitted", `{"summary":"ok","score":0}`, false},
		{"missing required", `{"summary":"ok"}`, true},
		{"wrong type", `{"summary":"ok","score":"two"}`, true},
		{"bad enum", `{"summary":"ok","score":1,"level":"extremo"}`, true},
		{"below minimum", `{"summary":"ok","score":-1}`, true},
		{"malformed", `{not json}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(riskSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var invErr *ErrInvalidResponse
				if !errors.As(err, &invErr) {
					t.Fatalf("expected ErrInvalidResponse, got: %T", err)
				}
				if string(invErr.Content) != tt.raw {
					t.Errorf("content = %s, want %s", invErr.Content, tt.raw)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchemaAcceptsAnything(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`"plain text"`)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestComplete_TruncatedStructuredReply(t *testing.T) {
	req := Request{Schema: riskSchema()}
	_, err := complete(req, json.RawMessage(`{"summary":"cut`), Usage{}, "m", StopMaxTokens)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got: %v", err)
	}

	resp, err := complete(Request{}, json.RawMessage(`"partial text"`), Usage{InputTokens: 3, OutputTokens: 4}, "m", StopMaxTokens)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.Total() != 7 {
		t.Errorf("total tokens = %d, want 7", resp.Usage.Total())
	}
}
