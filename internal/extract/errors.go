package extract

import "fmt"

// ExtractionError reports an unrecoverable binary-to-text failure. The
// handler maps it to a 4xx response because no fallback analysis is
// possible without usable text.
type ExtractionError struct {
	Format string
	Reason string
}

func (e *ExtractionError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("extraction failed: %s", e.Reason)
	}
	return fmt.Sprintf("extraction failed format=%s: %s", e.Format, e.Reason)
}

// ValidationError reports text that extracted but is too short or too
// degenerate to analyze (e.g. a scanned PDF with no text layer).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("document text validation failed: %s", e.Reason)
}
