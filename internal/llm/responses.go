package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultResponsesURL = "https://api.openai.com/v1/responses"

// ResponsesClient implements Provider against the structured-output
// responses endpoint using net/http directly.
type ResponsesClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewResponsesClient(cfg Config) (*ResponsesClient, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	timeout := 120 * time.Second
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	baseURL := defaultResponsesURL
	if strings.TrimSpace(cfg.BaseURL) != "" {
		baseURL = strings.TrimRight(cfg.BaseURL, "/") + "/v1/responses"
	}
	return &ResponsesClient{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type responsesInput struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responsesTextFormat struct {
	Type   string          `json:"type"`
	Name   string          `json:"name"`
	Schema json.RawMessage `json:"schema"`
	Strict bool            `json:"strict"`
}

type responsesRequest struct {
	Model string            `json:"model"`
	Input []responsesInput  `json:"input"`
	Text  *responsesTextOpt `json:"text,omitempty"`

	MaxOutputTokens int `json:"max_output_tokens,omitempty"`
}

type responsesTextOpt struct {
	Format responsesTextFormat `json:"format"`
}

type responsesResponse struct {
	ID                string `json:"id"`
	Model             string `json:"model"`
	Status            string `json:"status"`
	IncompleteDetails *struct {
		Reason string `json:"reason"`
	} `json:"incomplete_details,omitempty"`
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	Usage *struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
		TotalTokens  int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func (c *ResponsesClient) Complete(ctx context.Context, req Request) (*Response, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}
	body := responsesRequest{
		Model:           model,
		Input:           make([]responsesInput, 0, len(req.Messages)),
		MaxOutputTokens: req.MaxOutputTokens,
	}
	for _, m := range req.Messages {
		body.Input = append(body.Input, responsesInput{Role: m.Role, Content: m.Content})
	}
	if len(req.Schema) > 0 {
		body.Text = &responsesTextOpt{
			Format: responsesTextFormat{
				Type:   "json_schema",
				Name:   req.SchemaName,
				Schema: req.Schema,
				Strict: true,
			},
		}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &ProviderError{Op: "encode", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, &ProviderError{Op: "request", Err: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, &ProviderError{Op: "timeout", Err: err}
		}
		return nil, &ProviderError{Op: "transport", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{Op: "read", Err: err}
	}

	var parsed responsesResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &ProviderError{Op: "decode", Err: err}
	}
	if parsed.Error != nil {
		return nil, &ProviderError{Op: "api", Err: fmt.Errorf("%s (%s)", parsed.Error.Message, parsed.Error.Type)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ProviderError{Op: "api", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	if parsed.Status == "incomplete" {
		reason := "unknown"
		if parsed.IncompleteDetails != nil && parsed.IncompleteDetails.Reason != "" {
			reason = parsed.IncompleteDetails.Reason
		}
		return nil, &IncompleteError{Reason: reason}
	}

	content := outputText(parsed)
	if content == "" {
		return nil, &ProviderError{Op: "api", Err: fmt.Errorf("response has no output text")}
	}
	out := &Response{
		Content: json.RawMessage(content),
		Model:   parsed.Model,
	}
	if parsed.Usage != nil {
		out.Usage = Usage{
			InputTokens:  parsed.Usage.InputTokens,
			OutputTokens: parsed.Usage.OutputTokens,
			TotalTokens:  parsed.Usage.TotalTokens,
		}
	}
	return out, nil
}

func outputText(parsed responsesResponse) string {
	var b strings.Builder
	for _, item := range parsed.Output {
		if item.Type != "message" {
			continue
		}
		for _, c := range item.Content {
			if c.Type == "output_text" {
				b.WriteString(c.Text)
			}
		}
	}
	return strings.TrimSpace(b.String())
}

var _ Provider = (*ResponsesClient)(nil)
