package llm

import (
	"fmt"
	"strings"
)

// New builds a provider from configuration. The responses backend is the
// default; "chat" selects the chat completions backend.
func New(cfg Config) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "responses", "openai":
		return NewResponsesClient(cfg)
	case "chat":
		return NewChatProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: responses, chat)", cfg.Provider)
	}
}
