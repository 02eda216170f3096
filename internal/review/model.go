package review

import (
	"encoding/json"
	"time"
)

const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Review represents one contract analysis run.
type Review struct {
	ID             string          `json:"id"`
	IngestionID    string          `json:"ingestionId,omitempty"`
	ReviewType     string          `json:"reviewType"`
	ContractType   string          `json:"contractType"`
	Model          string          `json:"model"`
	ModelCategory  string          `json:"modelCategory"`
	Status         string          `json:"status"`
	FallbackUsed   bool            `json:"fallbackUsed"`
	FallbackReason string          `json:"fallbackReason,omitempty"`
	Score          float64         `json:"score"`
	Confidence     float64         `json:"confidence"`
	Report         json.RawMessage `json:"report,omitempty"`
	ErrorCode      string          `json:"errorCode,omitempty"`
	ErrorMessage   string          `json:"errorMessage,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	CompletedAt    *time.Time      `json:"completedAt,omitempty"`
}
