package ingestions

import (
	"context"
	"sync"
	"time"

	"contract-backend/internal/report"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Ingestion
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Ingestion),
	}
}

// Create stores a new ingestion record.
func (r *MemoryRepo) Create(ctx context.Context, ing Ingestion) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[ing.ID] = ing
	return nil
}

// Get returns an ingestion record by id.
func (r *MemoryRepo) Get(ctx context.Context, id string) (Ingestion, error) {
	if err := ctx.Err(); err != nil {
		return Ingestion{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ing, ok := r.data[id]
	if !ok {
		return Ingestion{}, ErrNotFound
	}
	return ing, nil
}

// UpdateAnalysisSeed replaces only the analysis-derived metadata keys.
func (r *MemoryRepo) UpdateAnalysisSeed(ctx context.Context, id string, seed AnalysisSeed, extractions []report.ClauseExtraction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ing, ok := r.data[id]
	if !ok {
		return ErrNotFound
	}
	ing.Metadata.AnalysisSeed = &seed
	if extractions != nil {
		ing.Metadata.ClauseExtractions = extractions
	}
	ing.UpdatedAt = time.Now().UTC()
	r.data[id] = ing
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
