// Package llm is a thin provider-neutral layer over hosted language models.
// Callers describe a prompt and an optional JSON schema; every provider
// returns JSON that has already been validated against that schema.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured output from a prompt.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set, Content is JSON that conforms to it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name returns the provider name ("anthropic", "openai", ...).
	Name() string

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, asks for JSON output conforming to it. When nil,
	// Content is the raw text reply.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserMessage is shorthand for a single user turn.
func UserMessage(content string) []Message {
	return []Message{{Role: RoleUser, Content: content}}
}

// Schema names a JSON Schema the reply must satisfy.
type Schema struct {
	// Name identifies the schema; kebab-case, e.g. "survey-insight".
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the model output.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason StopReason
}

// StopReason is the normalized reason generation stopped.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns input plus output tokens.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}

// complete validates content against the request schema and assembles the
// Response every provider returns.
func complete(req Request, content json.RawMessage, usage Usage, model string, stop StopReason) (*Response, error) {
	if stop == StopMaxTokens && req.Schema != nil {
		return nil, &ErrInvalidResponse{Content: content, Err: ErrTruncated}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names are passed through as direct model IDs.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}

// textContent turns a provider's text reply into Response content: the
// JSON itself for structured requests, a JSON string otherwise.
func textContent(req Request, text string) json.RawMessage {
	if req.Schema != nil {
		return json.RawMessage(text)
	}
	b, _ := json.Marshal(text)
	return b
}
