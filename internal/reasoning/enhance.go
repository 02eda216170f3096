package reasoning

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"

	"contract-backend/internal/report"
)

// enhancements holds the optional v3 sections produced by stage 2.
type enhancements struct {
	PlaybookInsights   []report.PlaybookInsight   `json:"playbookInsights"`
	ClauseExtractions  []report.ClauseExtraction  `json:"clauseExtractions"`
	SimilarityAnalysis []report.SimilarityFinding `json:"similarityAnalysis"`
	DeviationInsights  []report.DeviationInsight  `json:"deviationInsights"`
	ActionItems        []report.ActionItem        `json:"actionItems"`
	DraftMetadata      *report.DraftMetadata      `json:"draftMetadata"`
}

func parseEnhancements(raw json.RawMessage) (*enhancements, error) {
	text := string(raw)
	if !json.Valid(raw) {
		repaired, err := jsonrepair.RepairJSON(text)
		if err != nil {
			return nil, fmt.Errorf("enhancement output unrepairable: %w", err)
		}
		text = repaired
	}
	var enh enhancements
	if err := json.Unmarshal([]byte(text), &enh); err != nil {
		return nil, fmt.Errorf("enhancement output parse: %w", err)
	}
	coerceEnhancements(&enh)
	return &enh, nil
}

func coerceEnhancements(enh *enhancements) {
	for i := range enh.PlaybookInsights {
		enh.PlaybookInsights[i].Severity = report.CoerceSeverity(enh.PlaybookInsights[i].Severity)
		if enh.PlaybookInsights[i].ID == "" {
			enh.PlaybookInsights[i].ID = fmt.Sprintf("insight-%d", i+1)
		}
	}
	for i := range enh.ClauseExtractions {
		if enh.ClauseExtractions[i].ID == "" {
			enh.ClauseExtractions[i].ID = fmt.Sprintf("extraction-%d", i+1)
		}
		if enh.ClauseExtractions[i].ClauseID == "" {
			enh.ClauseExtractions[i].ClauseID = fmt.Sprintf("clause-%d", i+1)
		}
		if enh.ClauseExtractions[i].References == nil {
			enh.ClauseExtractions[i].References = []string{}
		}
	}
	for i := range enh.DeviationInsights {
		enh.DeviationInsights[i].Severity = report.CoerceSeverity(enh.DeviationInsights[i].Severity)
		if enh.DeviationInsights[i].ID == "" {
			enh.DeviationInsights[i].ID = fmt.Sprintf("deviation-%d", i+1)
		}
	}
	for i := range enh.ActionItems {
		enh.ActionItems[i].Priority = report.CoerceSeverity(enh.ActionItems[i].Priority)
		if enh.ActionItems[i].ID == "" {
			enh.ActionItems[i].ID = fmt.Sprintf("action-%d", i+1)
		}
	}
}

// synthesizeEnhancements derives enhancement sections from the core report
// alone. Lossy, but always available.
func synthesizeEnhancements(core *report.AnalysisReport) *enhancements {
	enh := &enhancements{
		PlaybookInsights:   []report.PlaybookInsight{},
		ClauseExtractions:  []report.ClauseExtraction{},
		SimilarityAnalysis: []report.SimilarityFinding{},
		DeviationInsights:  []report.DeviationInsight{},
		ActionItems:        []report.ActionItem{},
	}
	for i, iss := range core.IssuesToAddress {
		enh.PlaybookInsights = append(enh.PlaybookInsights, report.PlaybookInsight{
			ID:       fmt.Sprintf("insight-%d", i+1),
			Title:    iss.Title,
			Detail:   iss.Rationale,
			Severity: iss.Severity,
			ClauseID: iss.ClauseReference.ClauseID,
		})
		if iss.Severity == report.SeverityCritical || iss.Severity == report.SeverityHigh {
			enh.DeviationInsights = append(enh.DeviationInsights, report.DeviationInsight{
				ID:              fmt.Sprintf("deviation-%d", len(enh.DeviationInsights)+1),
				ClauseID:        iss.ClauseReference.ClauseID,
				Severity:        iss.Severity,
				Description:     iss.Title,
				SuggestedAction: iss.Recommendation,
			})
		}
		enh.ActionItems = append(enh.ActionItems, report.ActionItem{
			ID:       fmt.Sprintf("action-%d", len(enh.ActionItems)+1),
			Title:    iss.Recommendation,
			Priority: iss.Severity,
		})
	}
	for i, f := range core.ClauseFindings {
		enh.ClauseExtractions = append(enh.ClauseExtractions, report.ClauseExtraction{
			ID:             fmt.Sprintf("extraction-%d", i+1),
			ClauseID:       f.ClauseID,
			Title:          f.Title,
			Category:       "general",
			OriginalText:   f.Excerpt,
			NormalizedText: f.Summary,
			Importance:     f.RiskLevel,
			References:     []string{},
		})
	}
	for _, edit := range core.ProposedEdits {
		title := edit.Intent
		if title == "" {
			title = "Apply proposed edit " + edit.ID
		}
		enh.ActionItems = append(enh.ActionItems, report.ActionItem{
			ID:       fmt.Sprintf("action-%d", len(enh.ActionItems)+1),
			Title:    title,
			Priority: report.SeverityMedium,
		})
	}
	return enh
}

func mergeEnhancements(core *report.AnalysisReport, enh *enhancements) {
	if enh == nil {
		return
	}
	core.PlaybookInsights = ensureSlice(enh.PlaybookInsights)
	core.ClauseExtractions = ensureSlice(enh.ClauseExtractions)
	core.SimilarityAnalysis = ensureSlice(enh.SimilarityAnalysis)
	core.DeviationInsights = ensureSlice(enh.DeviationInsights)
	core.ActionItems = ensureSlice(enh.ActionItems)
	core.DraftMetadata = enh.DraftMetadata
}

func ensureSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
