package report

import "time"

// Schema versions. Version is the union discriminant; internal code works
// on the v3 shape exclusively and v2 payloads are upgraded at the boundary.
const (
	VersionV2 = "v2"
	VersionV3 = "v3"
)

// Issue severities (closed set).
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
	SeverityInfo     = "info"
)

// Model categories (closed set).
const (
	ModelCategoryDefault   = "default"
	ModelCategoryPremium   = "premium"
	ModelCategoryIntensive = "intensive"
)

// AnalysisReport is the canonical v3 analysis output. A v2 payload is the
// same shape without the v3-only collections.
type AnalysisReport struct {
	Version            string             `json:"version"`
	GeneratedAt        time.Time          `json:"generatedAt"`
	GeneralInformation GeneralInformation `json:"generalInformation"`
	ContractSummary    ContractSummary    `json:"contractSummary"`
	IssuesToAddress    []Issue            `json:"issuesToAddress"`
	CriteriaMet        []Criterion        `json:"criteriaMet"`
	ClauseFindings     []ClauseFinding    `json:"clauseFindings"`
	ProposedEdits      []ProposedEdit     `json:"proposedEdits"`
	Metadata           Metadata           `json:"metadata"`

	// v3-only sections. Empty (not nil) after upgrade from v2.
	PlaybookInsights   []PlaybookInsight   `json:"playbookInsights"`
	ClauseExtractions  []ClauseExtraction  `json:"clauseExtractions"`
	SimilarityAnalysis []SimilarityFinding `json:"similarityAnalysis"`
	DeviationInsights  []DeviationInsight  `json:"deviationInsights"`
	ActionItems        []ActionItem        `json:"actionItems"`
	DraftMetadata      *DraftMetadata      `json:"draftMetadata,omitempty"`
}

type GeneralInformation struct {
	ComplianceScore     float64   `json:"complianceScore"`
	SelectedPerspective string    `json:"selectedPerspective"`
	ReviewTimeSeconds   int       `json:"reviewTimeSeconds"`
	TimeSavingsMinutes  int       `json:"timeSavingsMinutes"`
	ReportExpiry        time.Time `json:"reportExpiry"`
}

type ContractSummary struct {
	ContractName       string   `json:"contractName"`
	FileName           string   `json:"fileName,omitempty"`
	Parties            []string `json:"parties"`
	AgreementDirection string   `json:"agreementDirection,omitempty"`
	Purpose            string   `json:"purpose,omitempty"`
	Period             string   `json:"period,omitempty"`
	GoverningLaw       string   `json:"governingLaw,omitempty"`
	Jurisdiction       string   `json:"jurisdiction,omitempty"`
}

type Issue struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Severity        string          `json:"severity"`
	Category        string          `json:"category"`
	Tags            []string        `json:"tags"`
	ClauseReference ClauseReference `json:"clauseReference"`
	LegalBasis      []string        `json:"legalBasis"`
	Recommendation  string          `json:"recommendation"`
	Rationale       string          `json:"rationale"`
}

type ClauseReference struct {
	ClauseID     string `json:"clauseId,omitempty"`
	LocationHint string `json:"locationHint,omitempty"`
	Excerpt      string `json:"excerpt,omitempty"`
}

type Criterion struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Met         bool   `json:"met"`
	Evidence    string `json:"evidence"`
}

type ClauseFinding struct {
	ClauseID       string `json:"clauseId"`
	Title          string `json:"title"`
	Summary        string `json:"summary"`
	Excerpt        string `json:"excerpt"`
	RiskLevel      string `json:"riskLevel"`
	Recommendation string `json:"recommendation"`
}

type ProposedEdit struct {
	ID             string      `json:"id"`
	ClauseID       string      `json:"clauseId"`
	AnchorText     string      `json:"anchorText"`
	ProposedText   string      `json:"proposedText"`
	Intent         string      `json:"intent"`
	Rationale      string      `json:"rationale"`
	PreviousText   string      `json:"previousText"`
	UpdatedText    string      `json:"updatedText"`
	PreviewHTML    PreviewHTML `json:"previewHtml"`
	ApplyByDefault bool        `json:"applyByDefault"`
}

type PreviewHTML struct {
	Previous string `json:"previous"`
	Updated  string `json:"updated"`
	Diff     string `json:"diff"`
}

type Metadata struct {
	Model            string            `json:"model"`
	ModelCategory    string            `json:"modelCategory"`
	PlaybookKey      string            `json:"playbookKey"`
	Classification   Classification    `json:"classification"`
	Confidence       float64           `json:"confidence"`
	TokenUsage       TokenUsage        `json:"tokenUsage"`
	CritiqueNotes    []string          `json:"critiqueNotes"`
	PlaybookCoverage *PlaybookCoverage `json:"playbookCoverage,omitempty"`
	FallbackUsed     bool              `json:"fallback_used"`
	FallbackReason   string            `json:"fallback_reason,omitempty"`
}

type Classification struct {
	ContractType string  `json:"contractType"`
	Confidence   float64 `json:"confidence"`
}

type TokenUsage struct {
	InputTokens  int `json:"inputTokens"`
	OutputTokens int `json:"outputTokens"`
	TotalTokens  int `json:"totalTokens"`
}

type PlaybookCoverage struct {
	Score       float64 `json:"score"`
	MetChecks   int     `json:"metChecks"`
	TotalChecks int     `json:"totalChecks"`
}

type PlaybookInsight struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Detail   string `json:"detail"`
	Severity string `json:"severity"`
	ClauseID string `json:"clauseId,omitempty"`
}

type ClauseExtraction struct {
	ID             string            `json:"id"`
	ClauseID       string            `json:"clauseId"`
	Title          string            `json:"title"`
	Category       string            `json:"category"`
	OriginalText   string            `json:"originalText"`
	NormalizedText string            `json:"normalizedText"`
	Importance     string            `json:"importance"`
	Location       ClauseLocation    `json:"location"`
	References     []string          `json:"references"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

type ClauseLocation struct {
	Page         int    `json:"page,omitempty"`
	Paragraph    int    `json:"paragraph,omitempty"`
	Section      string `json:"section,omitempty"`
	ClauseNumber string `json:"clauseNumber,omitempty"`
}

type SimilarityFinding struct {
	ClauseID          string  `json:"clauseId"`
	StandardReference string  `json:"standardReference"`
	SimilarityScore   float64 `json:"similarityScore"`
	Notes             string  `json:"notes,omitempty"`
}

type DeviationInsight struct {
	ID              string `json:"id"`
	ClauseID        string `json:"clauseId,omitempty"`
	Severity        string `json:"severity"`
	Description     string `json:"description"`
	SuggestedAction string `json:"suggestedAction"`
}

type ActionItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Priority string `json:"priority"`
	Owner    string `json:"owner,omitempty"`
	DueHint  string `json:"dueHint,omitempty"`
}

type DraftMetadata struct {
	DraftedBy        string `json:"draftedBy,omitempty"`
	BaselineTemplate string `json:"baselineTemplate,omitempty"`
	Revision         int    `json:"revision,omitempty"`
}
