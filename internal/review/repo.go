package review

import "context"

// Repo defines persistence operations for reviews.
type Repo interface {
	Create(ctx context.Context, r Review) error
	GetByID(ctx context.Context, id string) (Review, error)
	Update(ctx context.Context, r Review) error
}
