package ingestions

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter() (*gin.Engine, *MemoryRepo) {
	gin.SetMode(gin.TestMode)
	repo := NewMemoryRepo()
	router := gin.New()
	NewHandler(&Service{Repo: repo}).RegisterRoutes(router.Group("/api/v1"))
	return router, repo
}

func postIngestion(t *testing.T, router *gin.Engine, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ingestions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestIngestionEndpoint(t *testing.T) {
	router, _ := newTestRouter()

	resp := postIngestion(t, router, map[string]any{
		"content":  serviceText,
		"fileName": "agreement.txt",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	id, _ := body["id"].(string)
	if id == "" {
		t.Fatalf("expected ingestion id in response")
	}
	if body["file_name"] != "agreement.txt" {
		t.Fatalf("expected file_name agreement.txt, got %v", body["file_name"])
	}
	if wc, _ := body["word_count"].(float64); wc < 10 {
		t.Fatalf("expected word_count >= 10, got %v", body["word_count"])
	}

	getReq := httptest.NewRequest(http.MethodGet, "/api/v1/ingestions/"+id, nil)
	getResp := httptest.NewRecorder()
	router.ServeHTTP(getResp, getReq)
	if getResp.Code != http.StatusOK {
		t.Fatalf("expected 200 on fetch, got %d", getResp.Code)
	}
}

func TestIngestionEndpointValidation(t *testing.T) {
	router, _ := newTestRouter()

	resp := postIngestion(t, router, map[string]any{"content": ""})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty content, got %d", resp.Code)
	}

	resp = postIngestion(t, router, map[string]any{"content": "too short"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for degenerate text, got %d", resp.Code)
	}

	resp = postIngestion(t, router, map[string]any{
		"content":  "PDF_FILE_BASE64:!!!not-base64!!!",
		"fileName": "contract.pdf",
	})
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for corrupt binary, got %d", resp.Code)
	}
}

func TestIngestionEndpointNotFound(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ingestions/missing", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
