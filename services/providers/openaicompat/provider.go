// Package openaicompat implements the provider contract for services
// speaking the OpenAI chat-completions wire format, shared by the OpenAI
// and Deepseek adapters.
package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Matloob11/AURA-AI-AGENT/services/conversation"
	"github.com/Matloob11/AURA-AI-AGENT/services/providers"
)

// ModelHook lets a wrapping adapter substitute the wire model name for a
// configured model its provider does not serve.
type ModelHook func(configured string) string

// Config holds the settings for one OpenAI-compatible provider
type Config struct {
	ProviderName providers.Name
	APIKey       string
	BaseURL      string
	Timeout      time.Duration
	ModelHook    ModelHook
}

// Provider calls a chat-completions endpoint in the OpenAI wire format
type Provider struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates an adapter for an OpenAI-compatible endpoint
func New(cfg Config, logger *zap.Logger) *Provider {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Provider{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With(zap.String("provider", string(cfg.ProviderName))),
	}
}

// Name returns the wrapped provider's name
func (p *Provider) Name() providers.Name {
	return p.cfg.ProviderName
}

// Complete performs one chat-completions call and returns the reply text
func (p *Provider) Complete(ctx context.Context, req *providers.ChatRequest) (string, error) {
	model := req.Generation.Model
	if p.cfg.ModelHook != nil {
		model = p.cfg.ModelHook(model)
	}

	body := chatCompletionsRequest{
		Model:       model,
		Messages:    buildMessages(req),
		Temperature: req.Generation.Temperature,
		MaxTokens:   req.Generation.MaxTokens,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", providers.NewProviderError(p.Name(), providers.ErrKindMalformedResponse, "failed to marshal request", 0, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", providers.NewProviderError(p.Name(), providers.ErrKindNetwork, "failed to create request", 0, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", providers.ErrorFromTransport(p.Name(), err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", providers.NewProviderError(p.Name(), providers.ErrKindNetwork, "failed to read response", httpResp.StatusCode, err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return "", p.errorFromResponse(httpResp.StatusCode, respBody)
	}

	var resp chatCompletionsResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", providers.NewProviderError(p.Name(), providers.ErrKindMalformedResponse, "failed to unmarshal response", httpResp.StatusCode, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", providers.NewProviderError(p.Name(), providers.ErrKindMalformedResponse, "empty completion", httpResp.StatusCode, nil)
	}

	p.logger.Debug("chat completion succeeded",
		zap.String("model", resp.Model),
		zap.Int("total_tokens", resp.Usage.TotalTokens))

	return resp.Choices[0].Message.Content, nil
}

func (p *Provider) errorFromResponse(statusCode int, body []byte) error {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return providers.ErrorFromStatus(p.Name(), statusCode, errResp.Error.Message)
	}
	return providers.ErrorFromStatus(p.Name(), statusCode, string(body))
}

// buildMessages prefixes the system prompt and converts the turns to the
// OpenAI message shape.
func buildMessages(req *providers.ChatRequest) []message {
	messages := make([]message, 0, len(req.Turns)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, message{Role: "system", Content: req.SystemPrompt})
	}
	for _, turn := range req.Turns {
		role := "user"
		if turn.Role == conversation.RoleAssistant {
			role = "assistant"
		}
		messages = append(messages, message{Role: role, Content: turn.Content})
	}
	return messages
}

// Wire types

type chatCompletionsRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionsResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int     `json:"index"`
		Message      message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}
