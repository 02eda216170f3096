package review

import "errors"

var ErrNotFound = errors.New("review not found")

const (
	ErrorCodeValidation     = "VALIDATION_ERROR"
	ErrorCodeExtraction     = "EXTRACTION_ERROR"
	ErrorCodeProvider       = "PROVIDER_ERROR"
	ErrorCodeIncomplete     = "REASONING_INCOMPLETE"
	ErrorCodeSchemaMismatch = "SCHEMA_MISMATCH"
	ErrorCodeStorage        = "STORAGE_ERROR"
	ErrorCodeInternal       = "INTERNAL_ERROR"
)
