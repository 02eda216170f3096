package review

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"contract-backend/internal/classify"
	"contract-backend/internal/digest"
	"contract-backend/internal/extract"
	"contract-backend/internal/fallback"
	"contract-backend/internal/ingestions"
	"contract-backend/internal/llm"
	"contract-backend/internal/reasoning"
	"contract-backend/internal/report"
	"contract-backend/internal/shared/metrics"
	"contract-backend/internal/shared/telemetry"
)

// Analyzer is the reasoning engine boundary.
type Analyzer interface {
	Analyze(ctx context.Context, in reasoning.Input) (*report.AnalysisReport, error)
}

// ModelTiers maps requested tiers to concrete model identifiers.
type ModelTiers struct {
	Default   string
	Premium   string
	Intensive string
}

// Service orchestrates extraction, classification, digest seeding and the
// reasoning-or-fallback switch for one analysis request.
type Service struct {
	Repo       Repo
	Ingestions ingestions.Repo
	Engine     Analyzer
	Digest     *digest.Service
	Tiers      ModelTiers
}

// AnalyzeRequest is the decoded analysis request.
type AnalyzeRequest struct {
	Content          string
	IngestionID      string
	ReviewType       string
	Model            string
	ContractType     string
	FileName         string
	DocumentFormat   string
	Classification   *classify.Classification
	SelectedSolution string
	Perspective      string
}

// Analyze runs the full pipeline and returns the persisted review plus the
// validated report. Only extraction-stage failures return an error; any
// reasoning failure degrades to the deterministic fallback.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (Review, *report.AnalysisReport, error) {
	text, fileName, format, ing, err := s.resolveText(ctx, req)
	if err != nil {
		return Review{}, nil, err
	}

	classification := classify.DetectContractType(text, fileName)
	if req.Classification != nil {
		classification = *req.Classification
	}
	contractType := classification.ContractType
	perspective := req.Perspective
	if sol, ok := SolutionFor(req.SelectedSolution); ok {
		if req.ContractType == "" {
			contractType = sol.ContractType
			classification.ContractType = sol.ContractType
		}
		if perspective == "" {
			perspective = sol.Perspective
		}
	}
	if req.ContractType != "" {
		contractType = classify.NormalizeKey(req.ContractType)
		classification.ContractType = contractType
	}

	model, category := s.resolveModel(req.Model)

	rev := Review{
		ID:            uuid.NewString(),
		IngestionID:   ingestionID(ing),
		ReviewType:    fallback.NormalizeReviewType(req.ReviewType),
		ContractType:  contractType,
		Model:         model,
		ModelCategory: category,
		Status:        StatusProcessing,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, rev); err != nil {
		return Review{}, nil, err
	}
	metrics.IncReviewStarted()
	startedAt := time.Now().UTC()

	var digestSummary string
	if s.Digest != nil {
		if d, ok := s.Digest.Lookup(text, ing); ok {
			digestSummary = d.Summary
		}
	}

	rep, reasonErr := s.Engine.Analyze(ctx, reasoning.Input{
		ReviewType:      rev.ReviewType,
		ContractContent: text,
		FileName:        fileName,
		DocumentFormat:  format,
		Perspective:     perspective,
		Classification:  classification,
		ClauseDigest:    digestSummary,
		Model:           model,
		ModelCategory:   category,
	})
	if reasonErr != nil {
		code, _ := classifyFailure(reasonErr)
		reason := sanitizeError(reasonErr)
		telemetry.Info("reasoning failed, using deterministic fallback", map[string]any{
			"review_id":  rev.ID,
			"error_code": code,
			"reason":     reason,
		})
		metrics.IncReviewFallback()
		rep = fallback.Generate(fallback.Context{
			ReviewType:      rev.ReviewType,
			ContractContent: text,
			ContractType:    contractType,
			Classification:  &report.Classification{ContractType: classification.ContractType, Confidence: classification.Confidence},
			DocumentFormat:  format,
			FileName:        fileName,
			FallbackReason:  reason,
			Perspective:     perspective,
		})
	}

	s.storeDigest(ctx, ing, text, rep, reasonErr == nil)

	raw, err := json.Marshal(rep)
	if err != nil {
		return s.failReview(ctx, rev, ErrorCodeInternal, err)
	}

	completedAt := time.Now().UTC()
	rev.Status = StatusCompleted
	rev.FallbackUsed = rep.Metadata.FallbackUsed
	rev.FallbackReason = rep.Metadata.FallbackReason
	rev.Score = rep.GeneralInformation.ComplianceScore
	rev.Confidence = rep.Metadata.Confidence
	rev.Report = raw
	rev.CompletedAt = &completedAt
	if err := s.Repo.Update(ctx, rev); err != nil {
		return s.failReview(ctx, rev, ErrorCodeStorage, err)
	}
	metrics.IncReviewCompleted()
	metrics.ObserveReviewDurationMs(float64(completedAt.Sub(startedAt).Microseconds()) / 1000.0)
	telemetry.Info("review.status", map[string]any{
		"review_id":         rev.ID,
		"status":            rev.Status,
		"status_transition": "processing->completed",
		"fallback_used":     rev.FallbackUsed,
		"contract_type":     rev.ContractType,
	})
	return rev, rep, nil
}

// Get loads a review by id.
func (s *Service) Get(ctx context.Context, id string) (Review, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *Service) resolveText(ctx context.Context, req AnalyzeRequest) (string, string, string, *ingestions.Ingestion, error) {
	if req.IngestionID != "" {
		if s.Ingestions == nil {
			return "", "", "", nil, errors.New("ingestion store not configured")
		}
		ing, err := s.Ingestions.Get(ctx, req.IngestionID)
		if err != nil {
			return "", "", "", nil, err
		}
		fileName := req.FileName
		if fileName == "" {
			fileName = ing.FileName
		}
		format := req.DocumentFormat
		if format == "" {
			format = ing.DocumentFormat
		}
		return ing.ExtractedText, fileName, format, &ing, nil
	}
	if strings.TrimSpace(req.Content) == "" {
		return "", "", "", nil, &extract.ValidationError{Reason: "content or ingestionId is required"}
	}
	result, err := extract.FromContent(ctx, req.Content)
	if err != nil {
		return "", "", "", nil, err
	}
	format := req.DocumentFormat
	if format == "" {
		format = result.Format
	}
	return result.Text, req.FileName, format, nil, nil
}

// resolveModel accepts either a tier name or a concrete model identifier.
func (s *Service) resolveModel(requested string) (string, string) {
	switch strings.ToLower(strings.TrimSpace(requested)) {
	case "", report.ModelCategoryDefault:
		return s.Tiers.Default, report.ModelCategoryDefault
	case report.ModelCategoryPremium:
		return s.Tiers.Premium, report.ModelCategoryPremium
	case report.ModelCategoryIntensive:
		return s.Tiers.Intensive, report.ModelCategoryIntensive
	default:
		return requested, report.ModelCategoryDefault
	}
}

// storeDigest tags extraction provenance and persists the clause digest.
// Fallback-derived clause sets are stored too so repeat requests skip
// re-segmentation, but tagged so weak-set detection can discount them.
func (s *Service) storeDigest(ctx context.Context, ing *ingestions.Ingestion, text string, rep *report.AnalysisReport, fromModel bool) {
	if s.Digest == nil || len(rep.ClauseExtractions) == 0 {
		return
	}
	source := "ai"
	if !fromModel {
		source = "heuristic"
	}
	for i := range rep.ClauseExtractions {
		if rep.ClauseExtractions[i].Metadata == nil {
			rep.ClauseExtractions[i].Metadata = map[string]string{}
		}
		if rep.ClauseExtractions[i].Metadata["source"] == "" {
			rep.ClauseExtractions[i].Metadata["source"] = source
		}
	}
	s.Digest.Store(ctx, ingestionID(ing), text, rep.ClauseExtractions)
}

func (s *Service) failReview(ctx context.Context, rev Review, code string, cause error) (Review, *report.AnalysisReport, error) {
	completedAt := time.Now().UTC()
	rev.Status = StatusFailed
	rev.ErrorCode = code
	rev.ErrorMessage = sanitizeError(cause)
	rev.CompletedAt = &completedAt
	if err := s.Repo.Update(ctx, rev); err != nil {
		telemetry.Error("failed to persist review failure", map[string]any{
			"review_id": rev.ID,
			"error":     err.Error(),
		})
	}
	metrics.IncReviewFailed()
	return Review{}, nil, cause
}

func ingestionID(ing *ingestions.Ingestion) string {
	if ing == nil {
		return ""
	}
	return ing.ID
}

func classifyFailure(err error) (string, bool) {
	if err == nil {
		return ErrorCodeInternal, false
	}
	var incomplete *llm.IncompleteError
	if errors.As(err, &incomplete) {
		return ErrorCodeIncomplete, incomplete.Reason == llm.ReasonMaxOutputTokens
	}
	var provider *llm.ProviderError
	if errors.As(err, &provider) {
		return ErrorCodeProvider, true
	}
	var schema *report.SchemaValidationError
	if errors.As(err, &schema) {
		return ErrorCodeSchemaMismatch, false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorCodeProvider, true
	}
	return ErrorCodeInternal, false
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
