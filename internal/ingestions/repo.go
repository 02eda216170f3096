package ingestions

import (
	"context"
	"errors"

	"contract-backend/internal/report"
)

// ErrNotFound is returned when an ingestion record does not exist.
var ErrNotFound = errors.New("ingestion not found")

// Repo defines persistence operations for ingestion records.
type Repo interface {
	Create(ctx context.Context, ing Ingestion) error
	Get(ctx context.Context, id string) (Ingestion, error)
	UpdateAnalysisSeed(ctx context.Context, id string, seed AnalysisSeed, extractions []report.ClauseExtraction) error
}
