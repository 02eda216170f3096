package report

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func validV2Payload() string {
	return `{
		"version": "v2",
		"generatedAt": "2026-01-10T12:00:00Z",
		"generalInformation": {
			"complianceScore": 82,
			"selectedPerspective": "disclosing-party",
			"reviewTimeSeconds": 40,
			"timeSavingsMinutes": 90,
			"reportExpiry": "2026-02-10T12:00:00Z"
		},
		"contractSummary": {
			"contractName": "Mutual NDA",
			"fileName": "nda.pdf",
			"parties": ["Acme Corp", "Beta LLC"],
			"governingLaw": "Sweden"
		},
		"issuesToAddress": [
			{
				"id": "issue-1",
				"title": "Unbounded liability",
				"severity": "high",
				"category": "liability",
				"tags": ["risk"],
				"clauseReference": {"clauseId": "clause-3", "locationHint": "Section 7"},
				"legalBasis": [],
				"recommendation": "Add a liability cap.",
				"rationale": "No cap is present."
			}
		],
		"criteriaMet": [],
		"clauseFindings": [
			{"clauseId": "clause-3", "title": "Liability", "summary": "s", "excerpt": "e", "riskLevel": "high", "recommendation": "r"}
		],
		"proposedEdits": [],
		"metadata": {
			"model": "gpt-5-mini",
			"modelCategory": "default",
			"playbookKey": "nda",
			"classification": {"contractType": "nda", "confidence": 0.8},
			"tokenUsage": {"inputTokens": 1000, "outputTokens": 500, "totalTokens": 1500},
			"critiqueNotes": []
		}
	}`
}

func TestValidateAnalysisReport_V2RoundTripsToV3(t *testing.T) {
	r, err := ValidateAnalysisReport(json.RawMessage(validV2Payload()))
	if err != nil {
		t.Fatalf("validate v2: %v", err)
	}
	if r.Version != VersionV3 {
		t.Fatalf("version = %q, want v3 after upgrade", r.Version)
	}
	if r.ContractSummary.ContractName != "Mutual NDA" {
		t.Fatalf("v2 field changed: %q", r.ContractSummary.ContractName)
	}
	if len(r.IssuesToAddress) != 1 || r.IssuesToAddress[0].ID != "issue-1" {
		t.Fatalf("issues not carried over: %+v", r.IssuesToAddress)
	}
	for name, length := range map[string]int{
		"playbookInsights":   len(r.PlaybookInsights),
		"clauseExtractions":  len(r.ClauseExtractions),
		"similarityAnalysis": len(r.SimilarityAnalysis),
		"deviationInsights":  len(r.DeviationInsights),
		"actionItems":        len(r.ActionItems),
	} {
		if length != 0 {
			t.Errorf("%s should be empty after upgrade, has %d entries", name, length)
		}
	}
	if r.DraftMetadata != nil {
		t.Error("draftMetadata should be unset after upgrade")
	}

	// The upgraded report re-validates as v3.
	reencoded, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal upgraded report: %v", err)
	}
	again, err := ValidateAnalysisReport(reencoded)
	if err != nil {
		t.Fatalf("revalidate upgraded report: %v", err)
	}
	if again.Version != VersionV3 {
		t.Fatalf("revalidated version = %q", again.Version)
	}
}

func TestValidateAnalysisReport_HardErrors(t *testing.T) {
	cases := map[string]string{
		"missing version": `{"generatedAt":"2026-01-10T12:00:00Z"}`,
		"unknown version": `{"version":"v9"}`,
		"no parties": strings.Replace(validV2Payload(),
			`"parties": ["Acme Corp", "Beta LLC"],`, `"parties": [],`, 1),
		"no contract name": strings.Replace(validV2Payload(),
			`"contractName": "Mutual NDA",`, `"contractName": "",`, 1),
		"wrong type": strings.Replace(validV2Payload(),
			`"complianceScore": 82,`, `"complianceScore": "eighty",`, 1),
	}
	for name, payload := range cases {
		_, err := ValidateAnalysisReport(json.RawMessage(payload))
		var schemaErr *SchemaValidationError
		if !errors.As(err, &schemaErr) {
			t.Errorf("%s: expected SchemaValidationError, got %v", name, err)
		}
	}
}

func TestValidateAnalysisReport_CoercesEnums(t *testing.T) {
	payload := strings.Replace(validV2Payload(), `"severity": "high",`, `"severity": "catastrophic",`, 1)
	payload = strings.Replace(payload, `"modelCategory": "default",`, `"modelCategory": "mega",`, 1)
	payload = strings.Replace(payload, `"complianceScore": 82,`, `"complianceScore": 140,`, 1)

	r, err := ValidateAnalysisReport(json.RawMessage(payload))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got := r.IssuesToAddress[0].Severity; got != SeverityMedium {
		t.Errorf("severity = %q, want coerced medium", got)
	}
	if got := r.Metadata.ModelCategory; got != ModelCategoryDefault {
		t.Errorf("modelCategory = %q, want coerced default", got)
	}
	if got := r.GeneralInformation.ComplianceScore; got != 100 {
		t.Errorf("complianceScore = %v, want clamped 100", got)
	}
}

func TestRepairRawReport_DefaultsAndIDs(t *testing.T) {
	raw := []byte(`{
		"version": "v3",
		"generatedAt": "2026-01-10T12:00:00Z",
		"contractSummary": {"contractName": "NDA", "parties": ["A", "B"]},
		"issuesToAddress": [{"title": "Missing cap", "rationale": "No liability cap exists in section seven."}],
		"clauseFindings": [{"title": "Liability"}],
		"metadata": {"model": "m"}
	}`)
	repaired, err := RepairRawReport(raw)
	if err != nil {
		t.Fatalf("repair: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(repaired, &m); err != nil {
		t.Fatalf("unmarshal repaired: %v", err)
	}
	issue := m["issuesToAddress"].([]any)[0].(map[string]any)
	if issue["id"] != "issue-1" {
		t.Errorf("issue id = %v, want synthesized issue-1", issue["id"])
	}
	ref := issue["clauseReference"].(map[string]any)
	if ref["locationHint"] != "Missing cap" {
		t.Errorf("locationHint = %v, want backfilled from title", ref["locationHint"])
	}
	if ref["excerpt"] != "No liability cap exists in section seven." {
		t.Errorf("excerpt = %v, want backfilled from rationale", ref["excerpt"])
	}
	finding := m["clauseFindings"].([]any)[0].(map[string]any)
	if finding["clauseId"] != "clause-1" {
		t.Errorf("clauseId = %v, want synthesized clause-1", finding["clauseId"])
	}
	if _, ok := m["proposedEdits"].([]any); !ok {
		t.Error("proposedEdits not defaulted to empty array")
	}
}

func TestRepairRawReport_MalformedJSON(t *testing.T) {
	// Trailing comma plus unquoted key: typical truncated model output.
	raw := []byte(`{"version": "v3", "contractSummary": {"contractName": "NDA", "parties": ["A",]}}`)
	repaired, err := RepairRawReport(raw)
	if err != nil {
		t.Fatalf("repair malformed: %v", err)
	}
	if !json.Valid(repaired) {
		t.Fatal("repaired output is not valid JSON")
	}
}

func TestBindEditsToExtractions_KeywordOverlap(t *testing.T) {
	r := &AnalysisReport{
		ClauseExtractions: []ClauseExtraction{
			{ID: "extraction-1", ClauseID: "clause-7", Title: "Limitation of Liability", OriginalText: "Liability shall be subject to a cap of fees paid."},
			{ID: "extraction-2", ClauseID: "clause-9", Title: "Governing Law", OriginalText: "This agreement is governed by the laws of Sweden."},
		},
		ProposedEdits: []ProposedEdit{
			{ID: "edit-1", AnchorText: "liability cap should be reduced"},
		},
	}
	BindEditsToExtractions(r)
	if got := r.ProposedEdits[0].ClauseID; got != "clause-7" {
		t.Fatalf("edit bound to %q, want clause-7", got)
	}
}

func TestBindEditsToExtractions_NoMatchGetsGeneratedID(t *testing.T) {
	r := &AnalysisReport{
		ClauseExtractions: []ClauseExtraction{
			{ClauseID: "clause-1", Title: "Payment", OriginalText: "Fees are due monthly."},
		},
		ProposedEdits: []ProposedEdit{
			{ID: "edit-1", AnchorText: "zzz qqq xxx"},
		},
	}
	BindEditsToExtractions(r)
	if got := r.ProposedEdits[0].ClauseID; got == "" || got == "clause-1" {
		t.Fatalf("unmatched edit clauseId = %q, want generated id", got)
	}
}

func TestConvertV2ReportToV3_DoesNotMutateInput(t *testing.T) {
	src := &AnalysisReport{
		Version:     VersionV2,
		GeneratedAt: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC),
	}
	out := ConvertV2ReportToV3(src)
	if src.Version != VersionV2 {
		t.Fatalf("input mutated: version = %q", src.Version)
	}
	if out.Version != VersionV3 {
		t.Fatalf("output version = %q", out.Version)
	}
}
