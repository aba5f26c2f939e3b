package model

import (
	"context"
	"fmt"
)

// Request captures the normalized input to a text generation call.
type Request struct {
	// Instructions is an optional system prompt applied to the call.
	Instructions string `json:"instructions,omitempty"`
	// Prompt is the user prompt to complete.
	Prompt string `json:"prompt"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the final completion returned by a provider.
type Response struct {
	Text         string      `json:"text"`
	FinishReason string      `json:"finish_reason,omitempty"` // "stop", "length", etc.
	Usage        *TokenUsage `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface required to drive generation from a
// workflow step. The engine treats it as an opaque asynchronous function: a
// call either returns a value or fails, and retry/skip policy is applied by
// the Step wrapper, never by the provider adapter.
type Model interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
type MockModel struct {
	info      Info
	responses map[string]string
	failures  map[string]int
}

// NewMockModel constructs a MockModel with the given identity.
func NewMockModel(name, provider string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: provider},
		responses: make(map[string]string),
		failures:  make(map[string]int),
	}
}

// AddResponse registers a deterministic canned completion for an input prompt.
func (m *MockModel) AddResponse(prompt, response string) { m.responses[prompt] = response }

// FailTimes makes the next n Generate calls for the prompt return an error
// before the canned response is served, to exercise retry policies.
func (m *MockModel) FailTimes(prompt string, n int) { m.failures[prompt] = n }

// Generate implements Model with canned responses.
func (m *MockModel) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if remaining := m.failures[req.Prompt]; remaining > 0 {
		m.failures[req.Prompt] = remaining - 1
		return nil, fmt.Errorf("mock failure for prompt %q (%d remaining)", req.Prompt, remaining-1)
	}

	text := m.responses[req.Prompt]
	if text == "" {
		text = fmt.Sprintf("Mock response to: %s", req.Prompt)
	}

	return &Response{Text: text, FinishReason: "stop"}, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
