package llm

import "fmt"

// Incomplete-response reasons reported by providers.
const (
	ReasonMaxOutputTokens = "max_output_tokens"
	ReasonContentFilter   = "content_filter"
)

// IncompleteError means the model stopped before emitting a complete
// response. Reason tags why; only ReasonMaxOutputTokens is retryable.
type IncompleteError struct {
	Reason string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("llm response incomplete: %s", e.Reason)
}

// ProviderError wraps transport or API failures from the LLM backend.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("llm provider %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
