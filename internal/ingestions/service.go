package ingestions

import (
	"context"
	"time"

	"github.com/google/uuid"

	"contract-backend/internal/extract"
	"contract-backend/internal/shared/metrics"
	"contract-backend/internal/shared/util"
)

// Service contains business logic for ingestion records.
type Service struct {
	Repo Repo
}

// Ingest extracts text from the content payload and persists the record.
func (s *Service) Ingest(ctx context.Context, content, fileName string) (Ingestion, error) {
	if fileName != "" {
		sanitized, err := util.SanitizeFileName(fileName)
		if err != nil {
			return Ingestion{}, &extract.ValidationError{Reason: "invalid file name"}
		}
		fileName = sanitized
	}

	result, err := extract.FromContent(ctx, content)
	if err != nil {
		return Ingestion{}, err
	}

	ing := Ingestion{
		ID:             uuid.NewString(),
		ExtractedText:  result.Text,
		WordCount:      result.WordCount,
		FileName:       fileName,
		DocumentFormat: result.Format,
		Metadata: Metadata{
			AnalysisSeed: &AnalysisSeed{
				ContentHash: util.HashContent(result.Text),
			},
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, ing); err != nil {
		return Ingestion{}, err
	}
	metrics.IncIngestion()
	return ing, nil
}

// Get loads an ingestion record by id.
func (s *Service) Get(ctx context.Context, id string) (Ingestion, error) {
	return s.Repo.Get(ctx, id)
}
