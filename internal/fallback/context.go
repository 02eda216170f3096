package fallback

import "contract-backend/internal/report"

// Review types accepted across the analysis pipeline.
const (
	ReviewCompliance  = "compliance"
	ReviewRisk        = "risk"
	ReviewPerspective = "perspective"
	ReviewSummary     = "summary"
)

// Context is the ephemeral input record for one fallback run. It is
// constructed per request and never persisted.
type Context struct {
	ReviewType      string
	ContractContent string
	ContractType    string
	Classification  *report.Classification
	DocumentFormat  string
	FileName        string
	FallbackReason  string
	Perspective     string
}

// NormalizeReviewType snaps unknown review types onto the summary path so
// the generator always has a section builder to run.
func NormalizeReviewType(raw string) string {
	switch raw {
	case ReviewCompliance, ReviewRisk, ReviewPerspective, ReviewSummary:
		return raw
	default:
		return ReviewSummary
	}
}
