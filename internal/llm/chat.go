package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ChatProvider implements Provider over the chat completions API. It is the
// alternate backend for deployments without access to the responses endpoint.
type ChatProvider struct {
	client *openai.Client
	model  string
}

func NewChatProvider(cfg Config) (*ChatProvider, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &ChatProvider{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}, nil
}

func (p *ChatProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	chatReq := openai.ChatCompletionRequest{
		Model:    model,
		Messages: messages,
	}
	if req.MaxOutputTokens > 0 {
		chatReq.MaxCompletionTokens = req.MaxOutputTokens
	}
	if len(req.Schema) > 0 {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.SchemaName,
				Schema: req.Schema,
				Strict: true,
			},
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, &ProviderError{Op: "chat", Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &ProviderError{Op: "chat", Err: fmt.Errorf("no choices in response")}
	}
	choice := resp.Choices[0]
	switch choice.FinishReason {
	case openai.FinishReasonLength:
		return nil, &IncompleteError{Reason: ReasonMaxOutputTokens}
	case openai.FinishReasonContentFilter:
		return nil, &IncompleteError{Reason: ReasonContentFilter}
	}
	content := strings.TrimSpace(choice.Message.Content)
	if content == "" {
		return nil, &ProviderError{Op: "chat", Err: fmt.Errorf("empty response content")}
	}
	return &Response{
		Content: json.RawMessage(content),
		Model:   resp.Model,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

var _ Provider = (*ChatProvider)(nil)
