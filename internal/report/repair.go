package report

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
)

// The repair pass operates on a loosely-typed map before strict
// deserialization. Structured-output models reliably omit
// optional-but-required-by-shape fields under token pressure; repairing
// locally avoids a second round-trip.

// RepairRawReport turns raw model output into a payload that has a chance
// of passing ValidateAnalysisReport: it repairs malformed JSON, defaults
// missing arrays, rounds integer-valued fields, synthesizes clause ids and
// backfills clause references.
func RepairRawReport(raw []byte) (json.RawMessage, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return nil, &SchemaValidationError{Reason: "empty model output"}
	}
	if !json.Valid([]byte(text)) {
		repaired, err := jsonrepair.RepairJSON(text)
		if err != nil {
			return nil, &SchemaValidationError{Reason: fmt.Sprintf("unrepairable JSON: %v", err)}
		}
		text = repaired
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		return nil, &SchemaValidationError{Reason: fmt.Sprintf("not a JSON object: %v", err)}
	}

	RepairReportMap(m)

	out, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RepairReportMap applies structural defaults to a decoded report map.
func RepairReportMap(m map[string]any) {
	if _, ok := m["version"].(string); !ok {
		m["version"] = VersionV3
	}
	for _, key := range []string{
		"issuesToAddress", "criteriaMet", "clauseFindings", "proposedEdits",
		"playbookInsights", "clauseExtractions", "similarityAnalysis",
		"deviationInsights", "actionItems",
	} {
		if _, ok := m[key].([]any); !ok {
			m[key] = []any{}
		}
	}

	roundIntFields(m)
	synthesizeClauseIDs(m)
	backfillClauseReferences(m)
}

// roundIntFields rounds numeric fields the schema types as integers so a
// model emitting 42.0 or 42.7 does not hard-fail strict decoding.
func roundIntFields(m map[string]any) {
	if gi, ok := m["generalInformation"].(map[string]any); ok {
		for _, key := range []string{"reviewTimeSeconds", "timeSavingsMinutes"} {
			if v, ok := gi[key].(float64); ok {
				gi[key] = math.Round(v)
			}
		}
	}
	if md, ok := m["metadata"].(map[string]any); ok {
		if tu, ok := md["tokenUsage"].(map[string]any); ok {
			for _, key := range []string{"inputTokens", "outputTokens", "totalTokens"} {
				if v, ok := tu[key].(float64); ok {
					tu[key] = math.Round(v)
				}
			}
		}
	}
}

// synthesizeClauseIDs assigns deterministic ids to findings and
// extractions lacking one. Ids are stable cross-reference keys, so the
// synthesized values are positional rather than random.
func synthesizeClauseIDs(m map[string]any) {
	assign := func(items []any, idKey, prefix string) {
		for i, raw := range items {
			entry, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			if id, ok := entry[idKey].(string); !ok || strings.TrimSpace(id) == "" {
				entry[idKey] = fmt.Sprintf("%s-%d", prefix, i+1)
			}
		}
	}
	if findings, ok := m["clauseFindings"].([]any); ok {
		assign(findings, "clauseId", "clause")
	}
	if extractions, ok := m["clauseExtractions"].([]any); ok {
		assign(extractions, "clauseId", "clause")
		assign(extractions, "id", "extraction")
	}
	if issues, ok := m["issuesToAddress"].([]any); ok {
		assign(issues, "id", "issue")
	}
	if edits, ok := m["proposedEdits"].([]any); ok {
		assign(edits, "id", "edit")
	}
	if criteria, ok := m["criteriaMet"].([]any); ok {
		assign(criteria, "id", "criterion")
	}
}

// backfillClauseReferences fills missing locationHint/excerpt on issue
// clause references from sibling fields on the same issue.
func backfillClauseReferences(m map[string]any) {
	issues, ok := m["issuesToAddress"].([]any)
	if !ok {
		return
	}
	for _, raw := range issues {
		issue, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		ref, ok := issue["clauseReference"].(map[string]any)
		if !ok {
			ref = map[string]any{}
			issue["clauseReference"] = ref
		}
		if hint, ok := ref["locationHint"].(string); !ok || strings.TrimSpace(hint) == "" {
			if title, ok := issue["title"].(string); ok && title != "" {
				ref["locationHint"] = title
			}
		}
		if excerpt, ok := ref["excerpt"].(string); !ok || strings.TrimSpace(excerpt) == "" {
			if rationale, ok := issue["rationale"].(string); ok && rationale != "" {
				ref["excerpt"] = truncate(rationale, 240)
			}
		}
	}
}

// BindEditsToExtractions binds each proposed edit without a valid clause
// id to the clause extraction whose text shares the most keyword overlap
// with the edit's anchor text. Edits that match nothing get a generated
// id so they remain addressable.
func BindEditsToExtractions(r *AnalysisReport) {
	known := map[string]bool{}
	for _, ex := range r.ClauseExtractions {
		known[ex.ClauseID] = true
	}
	for i := range r.ProposedEdits {
		edit := &r.ProposedEdits[i]
		if edit.ClauseID != "" && known[edit.ClauseID] {
			continue
		}
		bestID := ""
		bestScore := 0
		for _, ex := range r.ClauseExtractions {
			score := keywordOverlap(edit.AnchorText, ex.Title+" "+ex.OriginalText)
			if score > bestScore {
				bestScore = score
				bestID = ex.ClauseID
			}
		}
		if bestScore > 0 {
			edit.ClauseID = bestID
		} else if edit.ClauseID == "" {
			edit.ClauseID = fmt.Sprintf("unbound-%d", i+1)
		}
	}
}

// keywordOverlap counts distinct anchor tokens (3+ chars) present in the
// candidate text.
func keywordOverlap(anchor, candidate string) int {
	cand := strings.ToLower(candidate)
	seen := map[string]bool{}
	score := 0
	for _, tok := range strings.Fields(strings.ToLower(anchor)) {
		tok = strings.Trim(tok, `.,;:"'()`)
		if len(tok) < 3 || seen[tok] {
			continue
		}
		seen[tok] = true
		if strings.Contains(cand, tok) {
			score++
		}
	}
	return score
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
