package ingestions

import (
	"time"

	"contract-backend/internal/report"
)

// Ingestion is a persisted extraction of one uploaded document.
type Ingestion struct {
	ID             string
	ExtractedText  string
	WordCount      int
	FileName       string
	DocumentFormat string
	Metadata       Metadata
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Metadata carries analysis-derived data cached on the ingestion record.
// Writers must only touch the analysisSeed and clauseExtractions keys.
type Metadata struct {
	AnalysisSeed      *AnalysisSeed             `json:"analysisSeed,omitempty"`
	ClauseExtractions []report.ClauseExtraction `json:"clauseExtractions,omitempty"`
}

// AnalysisSeed caches prompt-seeding material keyed by a content hash of
// the extracted text. A changed hash simply bypasses the seed.
type AnalysisSeed struct {
	ContentHash   string        `json:"contentHash"`
	ClauseDigest  *ClauseDigest `json:"clauseDigest,omitempty"`
	AnchorSummary string        `json:"anchorSummary,omitempty"`
}

// ClauseDigest is a compact textual summary of extracted clauses.
type ClauseDigest struct {
	Summary        string         `json:"summary"`
	Total          int            `json:"total"`
	CategoryCounts map[string]int `json:"categoryCounts"`
}
