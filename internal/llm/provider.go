// Package llm is a thin, provider-neutral layer over hosted language
// models. Every call asks for JSON, optionally constrained by a schema that
// is checked locally before the response is returned.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one structured completion per call.
type Provider interface {
	// Generate sends req and returns the model output. With req.Schema set
	// the Content is JSON that has passed schema validation.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model the provider was configured with.
	ModelID() string
}

// Request is a single-turn or short multi-turn prompt.
type Request struct {
	System      string
	Messages    []Message
	Schema      *Schema
	MaxTokens   int
	Temperature float64 // 0 leaves the provider default
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema the response must satisfy. Name doubles as
// the cache key for the compiled schema, so it must be unique per shape.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the normalised provider output.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string // "end" or "max_tokens"
}

// Usage is the token count of one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// UserPrompt builds the common request shape: a system prompt and one user
// message.
func UserPrompt(system, user string, schema *Schema, maxTokens int) Request {
	return Request{
		System:    system,
		Messages:  []Message{{Role: RoleUser, Content: user}},
		Schema:    schema,
		MaxTokens: maxTokens,
	}
}

// finish validates content against the request schema and assembles the
// Response shared by every SDK-backed provider.
func finish(req Request, content json.RawMessage, usage Usage, model, stop string) (*Response, error) {
	if stop == "max_tokens" && req.Schema != nil {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{
		Content:    content,
		Usage:      usage,
		Model:      model,
		StopReason: stop,
	}, nil
}

// resolveModel maps a short alias to a provider model ID. Unknown names
// pass through so full IDs work too.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
