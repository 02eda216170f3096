package review

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Review
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Review),
	}
}

// Create stores a new review.
func (r *MemoryRepo) Create(ctx context.Context, rev Review) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[rev.ID] = rev
	return nil
}

// GetByID returns a review by id.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Review, error) {
	if err := ctx.Err(); err != nil {
		return Review{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rev, ok := r.data[id]
	if !ok {
		return Review{}, ErrNotFound
	}
	return rev, nil
}

// Update overwrites an existing review.
func (r *MemoryRepo) Update(ctx context.Context, rev Review) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[rev.ID]; !ok {
		return ErrNotFound
	}
	r.data[rev.ID] = rev
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
