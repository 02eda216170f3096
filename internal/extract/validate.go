package extract

import "strings"

const (
	minTextLength    = 30
	minWordCount     = 10
	minDistinctRunes = 10
)

// ValidateText rejects cleaned text too short or too degenerate to analyze.
// The distinct-character rule filters repeated-byte garbage that survives
// the readable-run scans.
func ValidateText(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return &ValidationError{Reason: "no readable text found; the document may be scanned or image-based"}
	}
	if len(trimmed) < minTextLength {
		return &ValidationError{Reason: "extracted text is too short to analyze"}
	}
	if len(strings.Fields(trimmed)) < minWordCount {
		return &ValidationError{Reason: "extracted text contains too few words"}
	}
	distinct := map[rune]struct{}{}
	for _, r := range trimmed {
		if r == ' ' || r == '\n' || r == '\t' {
			continue
		}
		distinct[r] = struct{}{}
	}
	if len(distinct) < minDistinctRunes {
		return &ValidationError{Reason: "extracted text lacks enough character variety to be real content"}
	}
	return nil
}
