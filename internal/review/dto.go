package review

import (
	"time"

	"contract-backend/internal/report"
)

// AnalyzeResponse is the wire shape returned to analysis callers. Legacy
// fields mirror the structured report for older clients.
type AnalyzeResponse struct {
	ReviewID     string    `json:"review_id"`
	ModelUsed    string    `json:"model_used"`
	FallbackUsed bool      `json:"fallback_used"`
	GeneratedAt  time.Time `json:"generated_at"`
	Score        float64   `json:"score"`
	Confidence   float64   `json:"confidence"`

	FallbackReason   string                 `json:"fallback_reason,omitempty"`
	StructuredReport *report.AnalysisReport `json:"structured_report"`

	Summary         string   `json:"summary"`
	KeyPoints       []string `json:"key_points"`
	Recommendations []string `json:"recommendations"`
	ActionItems     []string `json:"action_items"`
}

func toAnalyzeResponse(rev Review, rep *report.AnalysisReport) AnalyzeResponse {
	resp := AnalyzeResponse{
		ReviewID:         rev.ID,
		ModelUsed:        rep.Metadata.Model,
		FallbackUsed:     rep.Metadata.FallbackUsed,
		FallbackReason:   rep.Metadata.FallbackReason,
		GeneratedAt:      rep.GeneratedAt,
		Score:            rep.GeneralInformation.ComplianceScore,
		Confidence:       rep.Metadata.Confidence,
		StructuredReport: rep,
		Summary:          rep.ContractSummary.Purpose,
		KeyPoints:        []string{},
		Recommendations:  []string{},
		ActionItems:      []string{},
	}
	for _, f := range rep.ClauseFindings {
		resp.KeyPoints = append(resp.KeyPoints, f.Title+": "+f.Summary)
	}
	for _, iss := range rep.IssuesToAddress {
		if iss.Recommendation != "" {
			resp.Recommendations = append(resp.Recommendations, iss.Recommendation)
		}
	}
	for _, item := range rep.ActionItems {
		resp.ActionItems = append(resp.ActionItems, item.Title)
	}
	return resp
}
