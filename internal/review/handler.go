package review

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"contract-backend/internal/classify"
	"contract-backend/internal/extract"
	"contract-backend/internal/ingestions"
	"contract-backend/internal/shared/server/respond"
)

const maxAnalyzeBody = 25 << 20 // 25MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches review routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/contract-reviews/analyze", h.analyze)
	rg.GET("/contract-reviews/:id", h.get)
}

type analyzeRequest struct {
	Content          string                   `json:"content"`
	IngestionID      string                   `json:"ingestionId"`
	ReviewType       string                   `json:"reviewType"`
	Model            string                   `json:"model"`
	ContractType     string                   `json:"contractType"`
	FileName         string                   `json:"fileName"`
	DocumentFormat   string                   `json:"documentFormat"`
	Classification   *classify.Classification `json:"classification"`
	SelectedSolution string                   `json:"selectedSolution"`
	Perspective      string                   `json:"perspective"`
}

func (h *Handler) analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAnalyzeBody)

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.Content == "" && req.IngestionID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "content or ingestionId is required", nil)
		return
	}

	rev, rep, err := h.Svc.Analyze(c.Request.Context(), AnalyzeRequest{
		Content:          req.Content,
		IngestionID:      req.IngestionID,
		ReviewType:       req.ReviewType,
		Model:            req.Model,
		ContractType:     req.ContractType,
		FileName:         req.FileName,
		DocumentFormat:   req.DocumentFormat,
		Classification:   req.Classification,
		SelectedSolution: req.SelectedSolution,
		Perspective:      req.Perspective,
	})
	if err != nil {
		var extractErr *extract.ExtractionError
		var validationErr *extract.ValidationError
		switch {
		case errors.As(err, &extractErr):
			respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed",
				"could not extract text from the document; it may be scanned or corrupted", nil)
		case errors.As(err, &validationErr):
			respond.Error(c, http.StatusBadRequest, "validation_error", validationErr.Error(), nil)
		case errors.Is(err, ingestions.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "ingestion not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to analyze contract", nil)
		}
		return
	}

	c.Set("reviewId", rev.ID)
	respond.JSON(c, http.StatusOK, toAnalyzeResponse(rev, rep))
}

func (h *Handler) get(c *gin.Context) {
	rev, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "review not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch review", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, rev)
}
