package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*ResponsesClient, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	client, err := NewResponsesClient(Config{
		Model:   "test-model",
		APIKey:  "test-key",
		BaseURL: srv.URL,
	})
	if err != nil {
		srv.Close()
		t.Fatalf("NewResponsesClient: %v", err)
	}
	return client, srv.Close
}

func TestResponsesCompleted(t *testing.T) {
	var gotReq responsesRequest
	client, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing auth header")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "completed",
			"model": "test-model",
			"output": [{"type": "message", "content": [{"type": "output_text", "text": "{\"ok\": true}"}]}],
			"usage": {"input_tokens": 10, "output_tokens": 5, "total_tokens": 15}
		}`))
	})
	defer done()

	resp, err := client.Complete(context.Background(), Request{
		Messages:        []Message{{Role: RoleSystem, Content: "sys"}, {Role: RoleUser, Content: "user"}},
		SchemaName:      "analysis_report",
		Schema:          json.RawMessage(`{"type":"object"}`),
		MaxOutputTokens: 4000,
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if string(resp.Content) != `{"ok": true}` {
		t.Fatalf("content = %s", resp.Content)
	}
	if resp.Usage.TotalTokens != 15 {
		t.Fatalf("total tokens = %d", resp.Usage.TotalTokens)
	}
	if gotReq.Model != "test-model" {
		t.Fatalf("request model = %q", gotReq.Model)
	}
	if gotReq.MaxOutputTokens != 4000 {
		t.Fatalf("max_output_tokens = %d", gotReq.MaxOutputTokens)
	}
	if gotReq.Text == nil || gotReq.Text.Format.Type != "json_schema" || gotReq.Text.Format.Name != "analysis_report" {
		t.Fatalf("text format = %+v", gotReq.Text)
	}
	if len(gotReq.Input) != 2 || gotReq.Input[0].Role != "system" {
		t.Fatalf("input = %+v", gotReq.Input)
	}
}

func TestResponsesIncomplete(t *testing.T) {
	client, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "incomplete", "incomplete_details": {"reason": "max_output_tokens"}, "output": []}`))
	})
	defer done()

	_, err := client.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
	var incomplete *IncompleteError
	if !errors.As(err, &incomplete) {
		t.Fatalf("err = %v, want IncompleteError", err)
	}
	if incomplete.Reason != ReasonMaxOutputTokens {
		t.Fatalf("reason = %q", incomplete.Reason)
	}
}

func TestResponsesAPIError(t *testing.T) {
	client, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limited", "type": "rate_limit_error"}}`))
	})
	defer done()

	_, err := client.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
	var provider *ProviderError
	if !errors.As(err, &provider) {
		t.Fatalf("err = %v, want ProviderError", err)
	}
}

func TestResponsesEmptyOutput(t *testing.T) {
	client, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "completed", "output": []}`))
	})
	defer done()

	_, err := client.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
	var provider *ProviderError
	if !errors.As(err, &provider) {
		t.Fatalf("err = %v, want ProviderError", err)
	}
}

func TestResponsesConfigValidation(t *testing.T) {
	if _, err := NewResponsesClient(Config{APIKey: "k"}); err == nil {
		t.Fatalf("expected error for missing model")
	}
	if _, err := NewResponsesClient(Config{Model: "m"}); err == nil {
		t.Fatalf("expected error for missing api key")
	}
}

func TestFactory(t *testing.T) {
	cfg := Config{Model: "m", APIKey: "k"}

	p, err := New(cfg)
	if err != nil {
		t.Fatalf("default provider: %v", err)
	}
	if _, ok := p.(*ResponsesClient); !ok {
		t.Fatalf("default provider = %T", p)
	}

	cfg.Provider = "chat"
	p, err = New(cfg)
	if err != nil {
		t.Fatalf("chat provider: %v", err)
	}
	if _, ok := p.(*ChatProvider); !ok {
		t.Fatalf("chat provider = %T", p)
	}

	cfg.Provider = "bogus"
	if _, err := New(cfg); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}
