package llm

import (
	"context"
	"encoding/json"
)

// Provider abstracts a structured-output LLM endpoint. Implementations must
// honor ctx cancellation and return typed errors: *IncompleteError when the
// model stopped before producing a full response, *ProviderError for
// transport and API failures.
type Provider interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}

// Message is a single prompt message.
type Message struct {
	Role    string
	Content string
}

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Request describes one structured-output call.
type Request struct {
	Model           string
	Messages        []Message
	SchemaName      string
	Schema          json.RawMessage
	MaxOutputTokens int
}

// Response carries the model's raw JSON output plus usage accounting.
type Response struct {
	Content json.RawMessage
	Model   string
	Usage   Usage
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Config selects and configures a provider implementation.
type Config struct {
	Provider       string
	Model          string
	APIKey         string
	BaseURL        string
	TimeoutSeconds int
}
