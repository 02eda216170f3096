package ingestions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"contract-backend/internal/report"
)

// PGRepo implements Repo using Postgres. Metadata lives in a JSONB column;
// seed updates merge into it so keys written by other owners survive.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new ingestion record.
func (r *PGRepo) Create(ctx context.Context, ing Ingestion) error {
	const query = `
INSERT INTO contract_ingestions (
    id,
    extracted_text,
    word_count,
    file_name,
    document_format,
    metadata,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`

	meta, err := json.Marshal(ing.Metadata)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}

	// file_name and document_format are NOT NULL DEFAULT '' columns; an
	// absent value is stored as the empty string, never as SQL NULL.
	_, err = r.DB.ExecContext(
		ctx,
		query,
		ing.ID,
		ing.ExtractedText,
		ing.WordCount,
		ing.FileName,
		ing.DocumentFormat,
		meta,
		ing.CreatedAt,
	)
	return err
}

// Get returns an ingestion record by id.
func (r *PGRepo) Get(ctx context.Context, id string) (Ingestion, error) {
	const query = `
SELECT id, extracted_text, word_count, file_name, document_format, metadata, created_at, updated_at
FROM contract_ingestions
WHERE id = $1`

	var ing Ingestion
	var fileName sql.NullString
	var format sql.NullString
	var meta []byte
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&ing.ID,
		&ing.ExtractedText,
		&ing.WordCount,
		&fileName,
		&format,
		&meta,
		&ing.CreatedAt,
		&ing.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Ingestion{}, ErrNotFound
		}
		return Ingestion{}, err
	}
	if fileName.Valid {
		ing.FileName = fileName.String
	}
	if format.Valid {
		ing.DocumentFormat = format.String
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &ing.Metadata); err != nil {
			return Ingestion{}, fmt.Errorf("decode metadata: %w", err)
		}
	}
	return ing, nil
}

// UpdateAnalysisSeed merges the analysisSeed and clauseExtractions keys
// into the metadata column without rewriting other keys.
func (r *PGRepo) UpdateAnalysisSeed(ctx context.Context, id string, seed AnalysisSeed, extractions []report.ClauseExtraction) error {
	const query = `
UPDATE contract_ingestions
SET metadata = COALESCE(metadata, '{}'::jsonb) || $2::jsonb,
    updated_at = NOW()
WHERE id = $1`

	patch := map[string]any{"analysisSeed": seed}
	if extractions != nil {
		patch["clauseExtractions"] = extractions
	}
	encoded, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("encode seed patch: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, query, id, encoded)
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

var _ Repo = (*PGRepo)(nil)
