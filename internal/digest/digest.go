package digest

import (
	"fmt"
	"strings"

	"contract-backend/internal/ingestions"
	"contract-backend/internal/report"
)

// maxSummaryLength caps the digest text so it stays a cheap prompt seed
// rather than a second copy of the document.
const maxSummaryLength = 4000

// Build derives a compact clause digest from extractions. Identical input
// always yields an identical digest; entries are emitted in slice order.
func Build(extractions []report.ClauseExtraction) ingestions.ClauseDigest {
	counts := map[string]int{}
	var b strings.Builder
	full := false
	for _, ex := range extractions {
		category := ex.Category
		if category == "" {
			category = "general"
		}
		counts[category]++
		if full {
			continue
		}

		line := fmt.Sprintf("%s | %s | %s | %s\n", ex.ClauseID, category, ex.Title, excerptOf(ex))
		if b.Len()+len(line) > maxSummaryLength {
			full = true
			continue
		}
		b.WriteString(line)
	}
	return ingestions.ClauseDigest{
		Summary:        strings.TrimRight(b.String(), "\n"),
		Total:          len(extractions),
		CategoryCounts: counts,
	}
}

func excerptOf(ex report.ClauseExtraction) string {
	text := ex.NormalizedText
	if text == "" {
		text = ex.OriginalText
	}
	text = strings.Join(strings.Fields(text), " ")
	if len(text) > 160 {
		text = text[:160]
	}
	return text
}

// Weak-clause-set thresholds.
const (
	minAIShare        = 0.25
	shortExcerptChars = 40
	maxShortShare     = 0.5
	minTitleDiversity = 0.5
)

// IsWeakClauseSet reports whether stored extractions are too weak to trust
// as a prompt seed, in which case a fresh heuristic pass is preferred.
// Weak means AI-sourced clauses are rare, excerpts are mostly stubs, or
// titles barely vary relative to clause count.
func IsWeakClauseSet(extractions []report.ClauseExtraction) bool {
	n := len(extractions)
	if n == 0 {
		return true
	}

	aiCount := 0
	shortCount := 0
	titles := map[string]bool{}
	for _, ex := range extractions {
		if ex.Metadata["source"] == "ai" {
			aiCount++
		}
		if len(excerptOf(ex)) < shortExcerptChars {
			shortCount++
		}
		titles[strings.ToLower(strings.TrimSpace(ex.Title))] = true
	}

	if float64(aiCount)/float64(n) < minAIShare {
		return true
	}
	if float64(shortCount)/float64(n) > maxShortShare {
		return true
	}
	if n >= 4 && float64(len(titles))/float64(n) < minTitleDiversity {
		return true
	}
	return false
}
