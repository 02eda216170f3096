package playbook

import (
	"fmt"
	"strings"

	"contract-backend/internal/report"
)

// CritiquePolicy holds the tunables of the coverage critique. The values
// are policy, not behavior: callers may override them.
type CritiquePolicy struct {
	// WarnBelow adds a summary note when coverage lands under this score.
	WarnBelow float64
}

// DefaultCritiquePolicy mirrors the tuning the critique shipped with.
func DefaultCritiquePolicy() CritiquePolicy {
	return CritiquePolicy{WarnBelow: 0.6}
}

// Critique runs the rule-based audit of a validated report against the
// playbook. It never blocks a response: the outcome is a coverage score
// and human-readable notes appended by the caller to metadata.
func Critique(pb Playbook, r *report.AnalysisReport, policy CritiquePolicy) (report.PlaybookCoverage, []string) {
	corpus := strings.ToLower(reportText(r))
	var notes []string
	met := 0
	total := len(pb.CriticalClauses) + len(pb.AnchorChecks)

	for _, clause := range pb.CriticalClauses {
		if !hasAnyKeyword(corpus, clause.Keywords) {
			notes = append(notes, fmt.Sprintf("Critical clause %q not addressed in the report", clause.Name))
			continue
		}
		if missing := missingKeywords(corpus, clause.MustInclude); len(missing) > 0 {
			notes = append(notes, fmt.Sprintf("Critical clause %q missing required language: %s", clause.Name, strings.Join(missing, ", ")))
			continue
		}
		met++
	}

	for _, check := range pb.AnchorChecks {
		if hasAnyKeyword(corpus, check.Keywords) {
			met++
		} else {
			notes = append(notes, fmt.Sprintf("Anchor check %q found no evidence", check.Name))
		}
	}

	coverage := report.PlaybookCoverage{MetChecks: met, TotalChecks: total}
	if total > 0 {
		coverage.Score = float64(met) / float64(total)
	}
	if coverage.Score < policy.WarnBelow && total > 0 {
		notes = append(notes, fmt.Sprintf("Playbook coverage for %s is low (%.0f%%)", pb.Title, coverage.Score*100))
	}
	return coverage, notes
}

// reportText concatenates every free-text field the critique searches for
// keyword evidence.
func reportText(r *report.AnalysisReport) string {
	var b strings.Builder
	for _, f := range r.ClauseFindings {
		b.WriteString(f.Title)
		b.WriteString("\n")
		b.WriteString(f.Summary)
		b.WriteString("\n")
		b.WriteString(f.Excerpt)
		b.WriteString("\n")
		b.WriteString(f.Recommendation)
		b.WriteString("\n")
	}
	for _, issue := range r.IssuesToAddress {
		b.WriteString(issue.Title)
		b.WriteString("\n")
		b.WriteString(issue.Recommendation)
		b.WriteString("\n")
		b.WriteString(issue.Rationale)
		b.WriteString("\n")
		b.WriteString(issue.ClauseReference.Excerpt)
		b.WriteString("\n")
	}
	for _, insight := range r.PlaybookInsights {
		b.WriteString(insight.Title)
		b.WriteString("\n")
		b.WriteString(insight.Detail)
		b.WriteString("\n")
	}
	for _, ex := range r.ClauseExtractions {
		b.WriteString(ex.Title)
		b.WriteString("\n")
		b.WriteString(ex.NormalizedText)
		b.WriteString("\n")
	}
	for _, c := range r.CriteriaMet {
		b.WriteString(c.Title)
		b.WriteString("\n")
		b.WriteString(c.Evidence)
		b.WriteString("\n")
	}
	return b.String()
}

func hasAnyKeyword(corpus string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(corpus, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func missingKeywords(corpus string, required []string) []string {
	var missing []string
	for _, kw := range required {
		if !strings.Contains(corpus, strings.ToLower(kw)) {
			missing = append(missing, kw)
		}
	}
	return missing
}
