// Package cohere adapts the Cohere chat API
package cohere

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Matloob11/AURA-AI-AGENT/config"
	"github.com/Matloob11/AURA-AI-AGENT/services/conversation"
	"github.com/Matloob11/AURA-AI-AGENT/services/providers"
)

const defaultBaseURL = "https://api.cohere.ai"

// Provider implements the provider contract for Cohere
type Provider struct {
	cfg        config.ProviderConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates the Cohere adapter
func New(cfg config.ProviderConfig, logger *zap.Logger) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Provider{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With(zap.String("provider", string(providers.NameCohere))),
	}
}

// Name returns the provider name
func (p *Provider) Name() providers.Name {
	return providers.NameCohere
}

// Complete performs one /v1/chat call. Cohere takes the pending user
// message separately from the chat history, with the system prompt as a
// preamble. Cohere picks its own model; the configured model name is
// ignored rather than rejected.
func (p *Provider) Complete(ctx context.Context, req *providers.ChatRequest) (string, error) {
	message := req.LastUserContent()
	if message == "" {
		return "", providers.NewProviderError(p.Name(), providers.ErrKindMalformedResponse, "request has no pending user message", 0, nil)
	}

	body := chatRequest{
		Message:     message,
		ChatHistory: buildHistory(req.Turns),
		Preamble:    req.SystemPrompt,
		Temperature: req.Generation.Temperature,
		MaxTokens:   req.Generation.MaxTokens,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", providers.NewProviderError(p.Name(), providers.ErrKindMalformedResponse, "failed to marshal request", 0, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/v1/chat", bytes.NewReader(payload))
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

	var resp chatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", providers.NewProviderError(p.Name(), providers.ErrKindMalformedResponse, "failed to unmarshal response", httpResp.StatusCode, err)
	}
	if strings.TrimSpace(resp.Text) == "" {
		return "", providers.NewProviderError(p.Name(), providers.ErrKindMalformedResponse, "empty reply", httpResp.StatusCode, nil)
	}

	return resp.Text, nil
}

func (p *Provider) errorFromResponse(statusCode int, body []byte) error {
	var errResp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return providers.ErrorFromStatus(p.Name(), statusCode, errResp.Message)
	}
	return providers.ErrorFromStatus(p.Name(), statusCode, string(body))
}

// buildHistory converts prior turns to Cohere's USER/CHATBOT roles,
// excluding the trailing user turn which travels as the message field.
func buildHistory(turns []conversation.Turn) []historyEntry {
	if len(turns) > 0 && turns[len(turns)-1].Role == conversation.RoleUser {
		turns = turns[:len(turns)-1]
	}
	history := make([]historyEntry, 0, len(turns))
	for _, turn := range turns {
		role := "USER"
		if turn.Role == conversation.RoleAssistant {
			role = "CHATBOT"
		}
		history = append(history, historyEntry{Role: role, Message: turn.Content})
	}
	return history
}

// Wire types

type chatRequest struct {
	Message     string         `json:"message"`
	ChatHistory []historyEntry `json:"chat_history,omitempty"`
	Preamble    string         `json:"preamble,omitempty"`
	Temperature float64        `json:"temperature,omitempty"`
	MaxTokens   int            `json:"max_tokens,omitempty"`
}

type historyEntry struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

type chatResponse struct {
	Text string `json:"text"`
}
