package report

import (
	"encoding/json"
	"fmt"
)

// SchemaValidationError reports a payload that does not conform to the
// v2-or-v3 report union. Enum violations are coerced, never reported;
// this error covers version/required-shape problems only.
type SchemaValidationError struct {
	Field  string
	Reason string
}

func (e *SchemaValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("report schema: %s", e.Reason)
	}
	return fmt.Sprintf("report schema: %s: %s", e.Field, e.Reason)
}

// ValidateAnalysisReport parses an arbitrary JSON payload against the
// report union. It is the single gate every report-producing path passes
// through before a report reaches a caller. The returned report is always
// upgraded to v3.
func ValidateAnalysisReport(raw json.RawMessage) (*AnalysisReport, error) {
	if len(raw) == 0 {
		return nil, &SchemaValidationError{Reason: "empty payload"}
	}

	var versionProbe struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(raw, &versionProbe); err != nil {
		return nil, &SchemaValidationError{Reason: fmt.Sprintf("not a JSON object: %v", err)}
	}

	switch versionProbe.Version {
	case VersionV3:
		var parsed AnalysisReport
		if err := json.Unmarshal(raw, &parsed); err != nil {
			return nil, &SchemaValidationError{Reason: fmt.Sprintf("v3 shape mismatch: %v", err)}
		}
		if err := validateShape(&parsed); err != nil {
			return nil, err
		}
		coerceEnums(&parsed)
		ensureCollections(&parsed)
		return &parsed, nil
	case VersionV2:
		var parsed AnalysisReport
		if err := json.Unmarshal(raw, &parsed); err != nil {
			return nil, &SchemaValidationError{Reason: fmt.Sprintf("v2 shape mismatch: %v", err)}
		}
		if err := validateShape(&parsed); err != nil {
			return nil, err
		}
		coerceEnums(&parsed)
		upgraded := ConvertV2ReportToV3(&parsed)
		return upgraded, nil
	case "":
		return nil, &SchemaValidationError{Field: "version", Reason: "missing discriminant"}
	default:
		return nil, &SchemaValidationError{Field: "version", Reason: fmt.Sprintf("unknown version %q", versionProbe.Version)}
	}
}

func validateShape(r *AnalysisReport) error {
	if r.GeneratedAt.IsZero() {
		return &SchemaValidationError{Field: "generatedAt", Reason: "required"}
	}
	if r.ContractSummary.ContractName == "" {
		return &SchemaValidationError{Field: "contractSummary.contractName", Reason: "required"}
	}
	if len(r.ContractSummary.Parties) == 0 {
		return &SchemaValidationError{Field: "contractSummary.parties", Reason: "at least one party is required"}
	}
	if r.Metadata.Model == "" {
		return &SchemaValidationError{Field: "metadata.model", Reason: "required"}
	}
	for i, issue := range r.IssuesToAddress {
		if issue.ID == "" {
			return &SchemaValidationError{Field: fmt.Sprintf("issuesToAddress[%d].id", i), Reason: "required"}
		}
		if issue.Title == "" {
			return &SchemaValidationError{Field: fmt.Sprintf("issuesToAddress[%d].title", i), Reason: "required"}
		}
	}
	for i, finding := range r.ClauseFindings {
		if finding.ClauseID == "" {
			return &SchemaValidationError{Field: fmt.Sprintf("clauseFindings[%d].clauseId", i), Reason: "required"}
		}
	}
	return nil
}

// coerceEnums clamps numeric invariants and snaps enum fields onto their
// closed sets. Unknown enum values become documented defaults rather than
// errors.
func coerceEnums(r *AnalysisReport) {
	r.GeneralInformation.ComplianceScore = clampScore(r.GeneralInformation.ComplianceScore)
	if r.GeneralInformation.ReviewTimeSeconds < 0 {
		r.GeneralInformation.ReviewTimeSeconds = 0
	}
	if r.GeneralInformation.TimeSavingsMinutes < 0 {
		r.GeneralInformation.TimeSavingsMinutes = 0
	}
	for i := range r.IssuesToAddress {
		r.IssuesToAddress[i].Severity = CoerceSeverity(r.IssuesToAddress[i].Severity)
	}
	for i := range r.ClauseFindings {
		r.ClauseFindings[i].RiskLevel = CoerceSeverity(r.ClauseFindings[i].RiskLevel)
	}
	for i := range r.ClauseExtractions {
		r.ClauseExtractions[i].Importance = CoerceSeverity(r.ClauseExtractions[i].Importance)
	}
	for i := range r.PlaybookInsights {
		r.PlaybookInsights[i].Severity = CoerceSeverity(r.PlaybookInsights[i].Severity)
	}
	for i := range r.DeviationInsights {
		r.DeviationInsights[i].Severity = CoerceSeverity(r.DeviationInsights[i].Severity)
	}
	r.Metadata.ModelCategory = CoerceModelCategory(r.Metadata.ModelCategory)
	if r.Metadata.Classification.Confidence < 0 {
		r.Metadata.Classification.Confidence = 0
	}
	if r.Metadata.Classification.Confidence > 1 {
		r.Metadata.Classification.Confidence = 1
	}
	// Report-level confidence defaults to the classifier's when the
	// producer did not set one.
	if r.Metadata.Confidence <= 0 {
		r.Metadata.Confidence = r.Metadata.Classification.Confidence
	}
	if r.Metadata.Confidence > 1 {
		r.Metadata.Confidence = 1
	}
}

// ensureCollections replaces nil slices with empty ones so serialized
// reports never contain null arrays.
func ensureCollections(r *AnalysisReport) {
	if r.IssuesToAddress == nil {
		r.IssuesToAddress = []Issue{}
	}
	if r.CriteriaMet == nil {
		r.CriteriaMet = []Criterion{}
	}
	if r.ClauseFindings == nil {
		r.ClauseFindings = []ClauseFinding{}
	}
	if r.ProposedEdits == nil {
		r.ProposedEdits = []ProposedEdit{}
	}
	if r.Metadata.CritiqueNotes == nil {
		r.Metadata.CritiqueNotes = []string{}
	}
	if r.PlaybookInsights == nil {
		r.PlaybookInsights = []PlaybookInsight{}
	}
	if r.ClauseExtractions == nil {
		r.ClauseExtractions = []ClauseExtraction{}
	}
	if r.SimilarityAnalysis == nil {
		r.SimilarityAnalysis = []SimilarityFinding{}
	}
	if r.DeviationInsights == nil {
		r.DeviationInsights = []DeviationInsight{}
	}
	if r.ActionItems == nil {
		r.ActionItems = []ActionItem{}
	}
	for i := range r.IssuesToAddress {
		if r.IssuesToAddress[i].Tags == nil {
			r.IssuesToAddress[i].Tags = []string{}
		}
		if r.IssuesToAddress[i].LegalBasis == nil {
			r.IssuesToAddress[i].LegalBasis = []string{}
		}
	}
	for i := range r.ClauseExtractions {
		if r.ClauseExtractions[i].References == nil {
			r.ClauseExtractions[i].References = []string{}
		}
	}
}

// CoerceSeverity snaps a severity-like value onto the closed set. Unknown
// values become medium.
func CoerceSeverity(raw string) string {
	switch raw {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo:
		return raw
	default:
		return SeverityMedium
	}
}

// CoerceModelCategory snaps a model category onto the closed set. Unknown
// values become default.
func CoerceModelCategory(raw string) string {
	switch raw {
	case ModelCategoryDefault, ModelCategoryPremium, ModelCategoryIntensive:
		return raw
	default:
		return ModelCategoryDefault
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
