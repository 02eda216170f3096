package review

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"contract-backend/internal/llm"
)

func newTestRouter(analyzer Analyzer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc, _ := newService(analyzer)
	router := gin.New()
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func postAnalyze(t *testing.T, router *gin.Engine, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contract-reviews/analyze", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestAnalyzeEndpoint(t *testing.T) {
	router := newTestRouter(&scriptedAnalyzer{report: modelReport()})

	resp := postAnalyze(t, router, map[string]any{
		"content":    contractText,
		"reviewType": "risk",
		"fileName":   "msa.pdf",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}

	var out AnalyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ModelUsed != "gpt-test" {
		t.Fatalf("model_used = %q", out.ModelUsed)
	}
	if out.FallbackUsed {
		t.Fatalf("fallback_used should be false")
	}
	if out.StructuredReport == nil || out.StructuredReport.ContractSummary.ContractName != "Service Agreement" {
		t.Fatalf("structured_report = %+v", out.StructuredReport)
	}
	if len(out.KeyPoints) == 0 || len(out.Recommendations) == 0 {
		t.Fatalf("legacy fields missing: %+v", out)
	}
	if out.GeneratedAt.IsZero() {
		t.Fatalf("generated_at missing")
	}
}

func TestAnalyzeEndpointFallback(t *testing.T) {
	router := newTestRouter(&scriptedAnalyzer{err: &llm.ProviderError{Op: "api", Err: errors.New("rate limited")}})

	resp := postAnalyze(t, router, map[string]any{
		"content":    contractText,
		"reviewType": "compliance",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}

	var out AnalyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.FallbackUsed {
		t.Fatalf("fallback_used should be true")
	}
	if !bytes.Contains([]byte(out.FallbackReason), []byte("rate limited")) {
		t.Fatalf("fallback_reason = %q", out.FallbackReason)
	}
}

func TestAnalyzeEndpointValidation(t *testing.T) {
	router := newTestRouter(&scriptedAnalyzer{report: modelReport()})

	resp := postAnalyze(t, router, map[string]any{"reviewType": "risk"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d for missing content", resp.Code)
	}

	resp = postAnalyze(t, router, map[string]any{
		"content":    "PDF_FILE_BASE64:!!!not-base64!!!",
		"reviewType": "risk",
	})
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d for unextractable document", resp.Code)
	}

	resp = postAnalyze(t, router, map[string]any{
		"ingestionId": "does-not-exist",
		"reviewType":  "risk",
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("status = %d for missing ingestion", resp.Code)
	}
}

func TestGetReviewEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := newService(&scriptedAnalyzer{report: modelReport()})
	router := gin.New()
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))

	rev, _, err := svc.Analyze(httptest.NewRequest(http.MethodGet, "/", nil).Context(), AnalyzeRequest{
		Content:    contractText,
		ReviewType: "risk",
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contract-reviews/"+rev.ID, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}

	var got Review
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != rev.ID || got.Status != StatusCompleted {
		t.Fatalf("got %+v", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/contract-reviews/missing", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("status = %d for missing review", resp.Code)
	}
}
