package ingestions

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"contract-backend/internal/extract"
	"contract-backend/internal/shared/server/respond"
)

// Content payloads carry whole base64 documents, so the body cap is
// generous.
const maxIngestBody = 25 << 20 // 25MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches ingestion routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ingestions", h.create)
	rg.GET("/ingestions/:id", h.get)
}

type createRequest struct {
	Content  string `json:"content"`
	FileName string `json:"fileName"`
}

func (h *Handler) create(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxIngestBody)

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "content is required", nil)
		return
	}

	ing, err := h.Svc.Ingest(c.Request.Context(), req.Content, req.FileName)
	if err != nil {
		var extractErr *extract.ExtractionError
		var validationErr *extract.ValidationError
		switch {
		case errors.As(err, &extractErr):
			respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed", extractErr.Error(), nil)
		case errors.As(err, &validationErr):
			respond.Error(c, http.StatusBadRequest, "validation_error", validationErr.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to ingest document", nil)
		}
		return
	}

	c.Set("ingestionId", ing.ID)
	respond.Created(c, toResponse(ing))
}

func (h *Handler) get(c *gin.Context) {
	ing, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "ingestion not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch ingestion", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(ing))
}

func toResponse(ing Ingestion) gin.H {
	return gin.H{
		"id":              ing.ID,
		"word_count":      ing.WordCount,
		"file_name":       ing.FileName,
		"document_format": ing.DocumentFormat,
		"created_at":      ing.CreatedAt,
	}
}
