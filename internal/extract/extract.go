package extract

import (
	"context"
	"encoding/base64"
	"strings"
)

const (
	pdfPrefix  = "PDF_FILE_BASE64:"
	docxPrefix = "DOCX_FILE_BASE64:"

	// minRecoverable is the floor below which binary extraction is
	// considered a failure rather than a short document.
	minRecoverable = 20
)

// Result carries extracted text plus format bookkeeping for callers.
type Result struct {
	Text      string
	Format    string
	WordCount int
}

// FromContent turns an ingestion content payload into cleaned, validated
// plain text. Base64-prefixed payloads go through the binary extractors;
// anything else is treated as raw text and only cleaned/validated.
func FromContent(ctx context.Context, content string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	var (
		text   string
		format string
		err    error
	)
	switch {
	case strings.HasPrefix(content, pdfPrefix):
		format = "pdf"
		text, err = decodeAndExtract(content[len(pdfPrefix):], format, ExtractPDF)
	case strings.HasPrefix(content, docxPrefix):
		format = "docx"
		text, err = decodeAndExtract(content[len(docxPrefix):], format, ExtractDOCX)
	default:
		format = "text"
		text = content
	}
	if err != nil {
		return Result{}, err
	}

	cleaned := CleanText(text)
	if err := ValidateText(cleaned); err != nil {
		return Result{}, err
	}
	return Result{
		Text:      cleaned,
		Format:    format,
		WordCount: len(strings.Fields(cleaned)),
	}, nil
}

func decodeAndExtract(b64, format string, fn func([]byte) (string, error)) (string, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(b64))
	if err != nil {
		// Some clients send unpadded payloads.
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimSpace(b64))
		if err != nil {
			return "", &ExtractionError{Format: format, Reason: "invalid base64 payload"}
		}
	}
	if len(data) == 0 {
		return "", &ExtractionError{Format: format, Reason: "empty payload"}
	}
	return fn(data)
}
