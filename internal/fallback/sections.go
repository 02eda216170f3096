package fallback

import (
	"fmt"
	"strings"

	"contract-backend/internal/report"
)

// Review-type-specific section builders. They reuse the keyword-family
// approach of clause classification: content triggers templates, nothing
// is invented beyond what the text contains.

func buildRiskSections(findings []report.ClauseFinding) ([]report.Issue, []report.DeviationInsight) {
	var issues []report.Issue
	var deviations []report.DeviationInsight
	for _, f := range findings {
		if f.RiskLevel != report.SeverityCritical && f.RiskLevel != report.SeverityHigh {
			continue
		}
		idx := len(issues) + 1
		issues = append(issues, report.Issue{
			ID:       fmt.Sprintf("issue-%d", idx),
			Title:    fmt.Sprintf("Elevated risk in %s", f.Title),
			Severity: f.RiskLevel,
			Category: "risk",
			Tags:     []string{"heuristic"},
			ClauseReference: report.ClauseReference{
				ClauseID:     f.ClauseID,
				LocationHint: f.Title,
				Excerpt:      f.Excerpt,
			},
			LegalBasis:     []string{},
			Recommendation: f.Recommendation,
			Rationale:      cascadeRationale(f),
		})
		deviations = append(deviations, report.DeviationInsight{
			ID:              fmt.Sprintf("deviation-%d", idx),
			ClauseID:        f.ClauseID,
			Severity:        f.RiskLevel,
			Description:     fmt.Sprintf("%s deviates from a balanced baseline position", f.Title),
			SuggestedAction: f.Recommendation,
		})
	}
	return issues, deviations
}

// cascadeRationale spells out knock-on effects for risk findings.
func cascadeRationale(f report.ClauseFinding) string {
	base := fmt.Sprintf("The %s clause carries %s risk.", strings.ToLower(f.Title), f.RiskLevel)
	switch f.RiskLevel {
	case report.SeverityCritical:
		return base + " Left unaddressed it can cascade into uncapped financial exposure and disputes over indemnification scope."
	default:
		return base + " It can compound with related obligations elsewhere in the agreement."
	}
}

var complianceAreas = []struct {
	title    string
	keywords []string
}{
	{"Data protection", []string{"personal data", "gdpr", "data protection", "privacy"}},
	{"Confidentiality", []string{"confidential", "non-disclosure"}},
	{"Liability allocation", []string{"liability", "indemnif"}},
	{"Termination mechanics", []string{"terminat", "notice"}},
	{"Governing law", []string{"governing law", "jurisdiction", "governed by"}},
}

func buildComplianceSections(content string) ([]report.Criterion, []report.Issue) {
	lowered := strings.ToLower(content)
	var criteria []report.Criterion
	var issues []report.Issue
	for i, area := range complianceAreas {
		hits := 0
		for _, kw := range area.keywords {
			if strings.Contains(lowered, kw) {
				hits++
			}
		}
		met := hits > 0
		pct := hits * 100 / len(area.keywords)
		criteria = append(criteria, report.Criterion{
			ID:          fmt.Sprintf("criterion-%d", i+1),
			Title:       area.title,
			Description: fmt.Sprintf("Keyword coverage for %s", strings.ToLower(area.title)),
			Met:         met,
			Evidence:    fmt.Sprintf("Matched %d of %d indicator terms (%d%%)", hits, len(area.keywords), pct),
		})
		if !met {
			issues = append(issues, report.Issue{
				ID:       fmt.Sprintf("gap-%d", i+1),
				Title:    fmt.Sprintf("No %s language found", strings.ToLower(area.title)),
				Severity: report.SeverityMedium,
				Category: "compliance",
				Tags:     []string{"gap"},
				ClauseReference: report.ClauseReference{
					LocationHint: area.title,
				},
				LegalBasis:     []string{},
				Recommendation: fmt.Sprintf("Add explicit %s provisions.", strings.ToLower(area.title)),
				Rationale:      "The document contains none of the indicator terms for this compliance area.",
			})
		}
	}
	return criteria, issues
}

var stakeholders = []struct {
	key        string
	concern    string
	advantage  string
	scoreDelta float64
}{
	{"buyer", "exposure to one-sided obligations and hidden cost escalators", "clear deliverables make acceptance disputes less likely", -2},
	{"seller", "payment certainty and scope creep without change control", "limitation language reduces downside on delivery failures", 0},
	{"legal", "enforceability of remedies and completeness of boilerplate", "standard structure simplifies review and amendment", 1},
	{"individual", "personal data handling and unilateral term changes", "termination rights provide a practical exit", -1},
}

func buildPerspectiveSections(score float64) []report.PlaybookInsight {
	insights := make([]report.PlaybookInsight, 0, len(stakeholders))
	for i, s := range stakeholders {
		insights = append(insights, report.PlaybookInsight{
			ID:       fmt.Sprintf("perspective-%d", i+1),
			Title:    fmt.Sprintf("%s perspective (score %.0f)", titleCase(s.key), score+s.scoreDelta),
			Detail:   fmt.Sprintf("Primary concern: %s. Advantage: %s.", s.concern, s.advantage),
			Severity: report.SeverityInfo,
		})
	}
	return insights
}

var commercialTermKeywords = []struct {
	title    string
	keywords []string
}{
	{"Payment terms", []string{"payment", "fee", "invoice"}},
	{"Term and renewal", []string{"term of", "renew", "duration"}},
	{"Service scope", []string{"services", "deliverables", "scope"}},
	{"Exclusivity", []string{"exclusive", "exclusivity"}},
}

func buildSummarySections(content string) ([]report.ActionItem, []report.Criterion) {
	lowered := strings.ToLower(content)
	var items []report.ActionItem
	var terms []report.Criterion
	for i, term := range commercialTermKeywords {
		found := false
		for _, kw := range term.keywords {
			if strings.Contains(lowered, kw) {
				found = true
				break
			}
		}
		terms = append(terms, report.Criterion{
			ID:          fmt.Sprintf("term-%d", i+1),
			Title:       term.title,
			Description: "Commercial term presence check",
			Met:         found,
			Evidence:    presenceEvidence(found),
		})
		if !found {
			items = append(items, report.ActionItem{
				ID:       fmt.Sprintf("action-%d", len(items)+1),
				Title:    fmt.Sprintf("Confirm %s before signature", strings.ToLower(term.title)),
				Priority: report.SeverityMedium,
			})
		}
	}
	return items, terms
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func presenceEvidence(found bool) string {
	if found {
		return "Indicator terms present in the document"
	}
	return "No indicator terms found"
}
