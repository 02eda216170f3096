package fallback

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"contract-backend/internal/report"
	"contract-backend/internal/shared/telemetry"
)

var partiesRe = regexp.MustCompile(`(?i)between\s+([A-Z][\w .,&'-]{1,60}?)\s+(?:and|&)\s+([A-Z][\w .,&'-]{1,60}?)(?:[,.(]|\s+\(|$)`)

// Generate produces a deterministic analysis report from document content
// alone. It never returns an error: any internal panic is trapped and the
// affected section falls back to its safest default.
func Generate(fctx Context) *report.AnalysisReport {
	r := safeBuild(fctx)
	if raw, err := json.Marshal(r); err == nil {
		if validated, err := report.ValidateAnalysisReport(raw); err == nil {
			return validated
		} else {
			telemetry.Error("fallback report failed validation", map[string]any{
				"error": err.Error(),
			})
		}
	}
	return r
}

func safeBuild(fctx Context) (r *report.AnalysisReport) {
	defer func() {
		if rec := recover(); rec != nil {
			telemetry.Error("fallback generation panicked", map[string]any{
				"panic":       fmt.Sprint(rec),
				"review_type": fctx.ReviewType,
			})
			r = minimalReport(fctx)
		}
	}()
	return build(fctx)
}

func build(fctx Context) *report.AnalysisReport {
	policy := DefaultPolicy()
	reviewType := NormalizeReviewType(fctx.ReviewType)
	wordCount := len(strings.Fields(fctx.ContractContent))
	score := policy.score(reviewType, wordCount)
	confidence := policy.confidence(wordCount)

	extractions, findings := buildClauseData(fctx.ContractContent)

	r := emptyReport()
	r.GeneratedAt = time.Now().UTC()
	r.GeneralInformation = report.GeneralInformation{
		ComplianceScore:     score,
		SelectedPerspective: fctx.Perspective,
		ReviewTimeSeconds:   estimateReviewSeconds(wordCount),
		TimeSavingsMinutes:  estimateSavingsMinutes(wordCount),
		ReportExpiry:        time.Now().UTC().Add(30 * 24 * time.Hour),
	}
	r.ContractSummary = report.ContractSummary{
		ContractName: contractName(fctx),
		FileName:     fctx.FileName,
		Parties:      guessParties(fctx.ContractContent),
		Purpose:      firstSentences(fctx.ContractContent, 2),
	}
	r.ClauseFindings = findings
	r.ClauseExtractions = extractions

	switch reviewType {
	case ReviewRisk:
		issues, deviations := buildRiskSections(findings)
		r.IssuesToAddress = append(r.IssuesToAddress, issues...)
		r.DeviationInsights = append(r.DeviationInsights, deviations...)
	case ReviewCompliance:
		criteria, gaps := buildComplianceSections(fctx.ContractContent)
		r.CriteriaMet = append(r.CriteriaMet, criteria...)
		r.IssuesToAddress = append(r.IssuesToAddress, gaps...)
	case ReviewPerspective:
		r.PlaybookInsights = append(r.PlaybookInsights, buildPerspectiveSections(score)...)
	default:
		items, terms := buildSummarySections(fctx.ContractContent)
		r.ActionItems = append(r.ActionItems, items...)
		r.CriteriaMet = append(r.CriteriaMet, terms...)
	}

	classification := report.Classification{
		ContractType: fctx.ContractType,
		Confidence:   confidence,
	}
	if fctx.Classification != nil {
		classification = *fctx.Classification
	}
	if classification.ContractType == "" {
		classification.ContractType = "general"
	}
	r.Metadata = report.Metadata{
		Model:          policy.FallbackModel,
		ModelCategory:  report.ModelCategoryDefault,
		PlaybookKey:    classification.ContractType,
		Classification: classification,
		Confidence:     confidence,
		CritiqueNotes:  []string{},
		FallbackUsed:   true,
		FallbackReason: fallbackReason(fctx),
	}
	return r
}

// minimalReport is the last line of defense: a valid report with no
// content-derived sections at all.
func minimalReport(fctx Context) *report.AnalysisReport {
	policy := DefaultPolicy()
	r := emptyReport()
	r.GeneratedAt = time.Now().UTC()
	r.GeneralInformation.ComplianceScore = policy.score(NormalizeReviewType(fctx.ReviewType), 0)
	r.ContractSummary = report.ContractSummary{
		ContractName: contractName(fctx),
		FileName:     fctx.FileName,
		Parties:      []string{"Party A", "Party B"},
	}
	r.Metadata = report.Metadata{
		Model:          policy.FallbackModel,
		ModelCategory:  report.ModelCategoryDefault,
		PlaybookKey:    "general",
		Classification: report.Classification{ContractType: "general", Confidence: policy.ConfidenceMin},
		Confidence:     policy.ConfidenceMin,
		CritiqueNotes:  []string{},
		FallbackUsed:   true,
		FallbackReason: fallbackReason(fctx),
	}
	return r
}

func emptyReport() *report.AnalysisReport {
	return &report.AnalysisReport{
		Version:            report.VersionV3,
		IssuesToAddress:    []report.Issue{},
		CriteriaMet:        []report.Criterion{},
		ClauseFindings:     []report.ClauseFinding{},
		ProposedEdits:      []report.ProposedEdit{},
		PlaybookInsights:   []report.PlaybookInsight{},
		ClauseExtractions:  []report.ClauseExtraction{},
		SimilarityAnalysis: []report.SimilarityFinding{},
		DeviationInsights:  []report.DeviationInsight{},
		ActionItems:        []report.ActionItem{},
	}
}

func contractName(fctx Context) string {
	if fctx.FileName != "" {
		name := fctx.FileName
		if idx := strings.LastIndex(name, "."); idx > 0 {
			name = name[:idx]
		}
		return name
	}
	if fctx.ContractType != "" && fctx.ContractType != "general" {
		return typeDisplayName(fctx.ContractType) + " Agreement"
	}
	return "Contract"
}

func typeDisplayName(contractType string) string {
	parts := strings.Split(contractType, "_")
	for i, p := range parts {
		if len(p) <= 4 {
			parts[i] = strings.ToUpper(p)
		} else {
			parts[i] = titleCase(p)
		}
	}
	return strings.Join(parts, " ")
}

func guessParties(content string) []string {
	window := content
	if len(window) > 2000 {
		window = window[:2000]
	}
	if m := partiesRe.FindStringSubmatch(window); m != nil {
		a := strings.TrimSpace(m[1])
		b := strings.TrimSpace(m[2])
		if a != "" && b != "" {
			return []string{a, b}
		}
	}
	return []string{"Party A", "Party B"}
}

func fallbackReason(fctx Context) string {
	if fctx.FallbackReason != "" {
		return fctx.FallbackReason
	}
	return "deterministic fallback requested"
}

func estimateReviewSeconds(wordCount int) int {
	s := wordCount / 50
	if s < 5 {
		s = 5
	}
	return s
}

func estimateSavingsMinutes(wordCount int) int {
	m := wordCount / 200
	if m < 10 {
		m = 10
	}
	return m
}
