package fallback

import (
	"fmt"
	"regexp"
	"strings"

	"contract-backend/internal/report"
)

// Clause segmentation is heading-driven: numbered section markers or
// ALL-CAPS runs open a new clause; everything until the next heading is
// the clause body. Bodies under 40 characters are noise and skipped.

const minClauseBody = 40

var (
	sectionHeadingRe = regexp.MustCompile(`(?i)^\s*(section|article|clause)\s+\d+`)
	numberHeadingRe  = regexp.MustCompile(`^\s*\d+(\.\d+)*[.)]?\s+\S`)
	capsHeadingRe    = regexp.MustCompile(`^[A-Z][A-Z &/-]{3,}$`)
)

type segment struct {
	title string
	body  string
}

func segmentClauses(content string) []segment {
	lines := strings.Split(content, "\n")
	var segments []segment
	current := segment{title: "Preamble"}
	var body strings.Builder

	flush := func() {
		current.body = strings.TrimSpace(body.String())
		if len(current.body) >= minClauseBody {
			segments = append(segments, current)
		}
		body.Reset()
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			body.WriteString("\n")
			continue
		}
		if isHeading(trimmed) {
			flush()
			current = segment{title: headingTitle(trimmed)}
			continue
		}
		body.WriteString(line)
		body.WriteString("\n")
	}
	flush()
	return segments
}

func isHeading(line string) bool {
	if len(line) > 120 {
		return false
	}
	return sectionHeadingRe.MatchString(line) ||
		numberHeadingRe.MatchString(line) ||
		capsHeadingRe.MatchString(line)
}

func headingTitle(line string) string {
	title := strings.TrimSpace(line)
	if len(title) > 80 {
		title = title[:80]
	}
	return title
}

// Keyword families drive clause importance and the templated
// recommendations.
type keywordFamily struct {
	name           string
	importance     string
	keywords       []string
	recommendation string
}

var keywordFamilies = []keywordFamily{
	{
		name:           "liability",
		importance:     report.SeverityCritical,
		keywords:       []string{"liability", "indemnif", "hold harmless"},
		recommendation: "Review liability allocation carefully; confirm caps, exclusions and indemnity triggers match your risk appetite.",
	},
	{
		name:           "payment",
		importance:     report.SeverityHigh,
		keywords:       []string{"payment", "fee", "invoice", "compensation"},
		recommendation: "Verify payment amounts, due dates and late-payment consequences.",
	},
	{
		name:           "termination",
		importance:     report.SeverityHigh,
		keywords:       []string{"terminat", "expiry", "expiration"},
		recommendation: "Check termination triggers, notice periods and post-termination obligations.",
	},
	{
		name:           "confidentiality",
		importance:     report.SeverityHigh,
		keywords:       []string{"confidential", "non-disclosure", "proprietary"},
		recommendation: "Confirm the confidentiality scope, duration and permitted disclosures.",
	},
	{
		name:           "service_levels",
		importance:     report.SeverityHigh,
		keywords:       []string{"service level", "sla", "uptime", "availability"},
		recommendation: "Make service levels measurable and tie them to remedies.",
	},
}

func classifySegment(body string) (family string, importance string, recommendation string) {
	lowered := strings.ToLower(body)
	for _, fam := range keywordFamilies {
		for _, kw := range fam.keywords {
			if strings.Contains(lowered, kw) {
				return fam.name, fam.importance, fam.recommendation
			}
		}
	}
	return "general", report.SeverityMedium, "Review this clause for consistency with the rest of the agreement."
}

// buildClauseData derives extractions and findings from segmented text.
func buildClauseData(content string) ([]report.ClauseExtraction, []report.ClauseFinding) {
	segments := segmentClauses(content)
	extractions := make([]report.ClauseExtraction, 0, len(segments))
	findings := make([]report.ClauseFinding, 0, len(segments))
	for i, seg := range segments {
		family, importance, recommendation := classifySegment(seg.body)
		clauseID := fmt.Sprintf("clause-%d", i+1)
		excerpt := seg.body
		if len(excerpt) > 280 {
			excerpt = excerpt[:280]
		}
		extractions = append(extractions, report.ClauseExtraction{
			ID:             fmt.Sprintf("extraction-%d", i+1),
			ClauseID:       clauseID,
			Title:          seg.title,
			Category:       family,
			OriginalText:   seg.body,
			NormalizedText: strings.Join(strings.Fields(seg.body), " "),
			Importance:     importance,
			Location:       report.ClauseLocation{Paragraph: i + 1, Section: seg.title},
			References:     []string{},
		})
		findings = append(findings, report.ClauseFinding{
			ClauseID:       clauseID,
			Title:          seg.title,
			Summary:        firstSentences(seg.body, 1),
			Excerpt:        excerpt,
			RiskLevel:      importance,
			Recommendation: recommendation,
		})
	}
	return extractions, findings
}

var sentenceSplitRe = regexp.MustCompile(`(?s)(.*?[.!?])(?:\s+|$)`)

// firstSentences returns up to n leading sentences, or a prefix of the
// text when no sentence boundary exists.
func firstSentences(text string, n int) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}
	matches := sentenceSplitRe.FindAllStringSubmatch(trimmed, n)
	if len(matches) == 0 {
		if len(trimmed) > 200 {
			return trimmed[:200]
		}
		return trimmed
	}
	var parts []string
	for _, m := range matches {
		parts = append(parts, strings.TrimSpace(m[1]))
	}
	return strings.Join(parts, " ")
}
