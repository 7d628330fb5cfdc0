// Package huggingface adapts the Hugging Face Inference API
package huggingface

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

const (
	defaultBaseURL = "https://api-inference.huggingface.co"

	// chatModel is a conversational model served on the free Inference API
	chatModel = "mistralai/Mistral-7B-Instruct-v0.2"
)

// Provider implements the provider contract for Hugging Face
type Provider struct {
	cfg        config.ProviderConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates the Hugging Face adapter
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
		logger:     logger.With(zap.String("provider", string(providers.NameHuggingFace))),
	}
}

// Name returns the provider name
func (p *Provider) Name() providers.Name {
	return providers.NameHuggingFace
}

// Complete performs one text-generation call against the Inference API.
// The conversation is flattened into a single transcript because the API
// takes raw text rather than role-tagged messages.
func (p *Provider) Complete(ctx context.Context, req *providers.ChatRequest) (string, error) {
	body := inferenceRequest{
		Inputs: buildTranscript(req),
		Parameters: inferenceParameters{
			MaxNewTokens:   req.Generation.MaxTokens,
			Temperature:    req.Generation.Temperature,
			ReturnFullText: false,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", providers.NewProviderError(p.Name(), providers.ErrKindMalformedResponse, "failed to marshal request", 0, err)
	}

	url := p.cfg.BaseURL + "/models/" + chatModel
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
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
		return "", providers.ErrorFromStatus(p.Name(), httpResp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var results []inferenceResult
	if err := json.Unmarshal(respBody, &results); err != nil {
		return "", providers.NewProviderError(p.Name(), providers.ErrKindMalformedResponse, "failed to unmarshal response", httpResp.StatusCode, err)
	}

	if len(results) == 0 || strings.TrimSpace(results[0].GeneratedText) == "" {
		return "", providers.NewProviderError(p.Name(), providers.ErrKindMalformedResponse, "empty generation", httpResp.StatusCode, nil)
	}

	return strings.TrimSpace(results[0].GeneratedText), nil
}

// buildTranscript flattens the system prompt and turns into the
// User:/Assistant: transcript the instruct model expects.
func buildTranscript(req *providers.ChatRequest) string {
	var b strings.Builder
	if req.SystemPrompt != "" {
		b.WriteString(req.SystemPrompt)
		b.WriteString("\n\n")
	}
	for _, turn := range req.Turns {
		role := "User"
		if turn.Role == conversation.RoleAssistant {
			role = "Assistant"
		}
		b.WriteString(role)
		b.WriteString(": ")
		b.WriteString(turn.Content)
		b.WriteString("\n")
	}
	b.WriteString("Assistant:")
	return b.String()
}

// Wire types

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

type inferenceParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens,omitempty"`
	Temperature    float64 `json:"temperature,omitempty"`
	ReturnFullText bool    `json:"return_full_text"`
}

type inferenceResult struct {
	GeneratedText string `json:"generated_text"`
}
