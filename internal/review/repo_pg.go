package review

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new review.
func (r *PGRepo) Create(ctx context.Context, rev Review) error {
	const query = `
INSERT INTO contract_reviews (
    id,
    ingestion_id,
    review_type,
    contract_type,
    model,
    model_category,
    status,
    fallback_used,
    fallback_reason,
    score,
    confidence,
    report,
    error_code,
    error_message,
    created_at,
    completed_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		rev.ID,
		nullString(rev.IngestionID),
		rev.ReviewType,
		rev.ContractType,
		rev.Model,
		rev.ModelCategory,
		rev.Status,
		rev.FallbackUsed,
		nullString(rev.FallbackReason),
		rev.Score,
		rev.Confidence,
		nullBytes(rev.Report),
		nullString(rev.ErrorCode),
		nullString(rev.ErrorMessage),
		rev.CreatedAt,
		rev.CompletedAt,
	)
	return err
}

// GetByID returns a review by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Review, error) {
	const query = `
SELECT id, ingestion_id, review_type, contract_type, model, model_category, status,
       fallback_used, fallback_reason, score, confidence, report, error_code, error_message,
       created_at, completed_at
FROM contract_reviews
WHERE id = $1`

	var rev Review
	var ingestionID, fallbackReason, errorCode, errorMessage sql.NullString
	var reportRaw []byte
	var completedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&rev.ID,
		&ingestionID,
		&rev.ReviewType,
		&rev.ContractType,
		&rev.Model,
		&rev.ModelCategory,
		&rev.Status,
		&rev.FallbackUsed,
		&fallbackReason,
		&rev.Score,
		&rev.Confidence,
		&reportRaw,
		&errorCode,
		&errorMessage,
		&rev.CreatedAt,
		&completedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Review{}, ErrNotFound
		}
		return Review{}, err
	}
	if ingestionID.Valid {
		rev.IngestionID = ingestionID.String
	}
	if fallbackReason.Valid {
		rev.FallbackReason = fallbackReason.String
	}
	if errorCode.Valid {
		rev.ErrorCode = errorCode.String
	}
	if errorMessage.Valid {
		rev.ErrorMessage = errorMessage.String
	}
	if len(reportRaw) > 0 {
		rev.Report = reportRaw
	}
	if completedAt.Valid {
		rev.CompletedAt = &completedAt.Time
	}
	return rev, nil
}

// Update overwrites the mutable fields of a review.
func (r *PGRepo) Update(ctx context.Context, rev Review) error {
	const query = `
UPDATE contract_reviews
SET status = $2,
    fallback_used = $3,
    fallback_reason = $4,
    score = $5,
    confidence = $6,
    report = $7,
    error_code = $8,
    error_message = $9,
    completed_at = $10
WHERE id = $1`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		rev.ID,
		rev.Status,
		rev.FallbackUsed,
		nullString(rev.FallbackReason),
		rev.Score,
		rev.Confidence,
		nullBytes(rev.Report),
		nullString(rev.ErrorCode),
		nullString(rev.ErrorMessage),
		rev.CompletedAt,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullBytes(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}

var _ Repo = (*PGRepo)(nil)
