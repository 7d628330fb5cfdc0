// Package gemini adapts the Google Gemini generateContent API
package gemini

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
	defaultBaseURL = "https://generativelanguage.googleapis.com"

	// chatModel is fast and available on the free tier
	chatModel = "gemini-1.5-flash"
)

// Provider implements the provider contract for Gemini
type Provider struct {
	cfg        config.ProviderConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates the Gemini adapter
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
		logger:     logger.With(zap.String("provider", string(providers.NameGemini))),
	}
}

// Name returns the provider name
func (p *Provider) Name() providers.Name {
	return providers.NameGemini
}

// Complete performs one generateContent call. Gemini uses user/model
// roles and carries the system prompt as a separate system instruction.
func (p *Provider) Complete(ctx context.Context, req *providers.ChatRequest) (string, error) {
	body := generateRequest{
		Contents: buildContents(req.Turns),
		GenerationConfig: generationConfig{
			Temperature:     req.Generation.Temperature,
			MaxOutputTokens: req.Generation.MaxTokens,
		},
	}
	if req.SystemPrompt != "" {
		body.SystemInstruction = &content{Parts: []part{{Text: req.SystemPrompt}}}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", providers.NewProviderError(p.Name(), providers.ErrKindMalformedResponse, "failed to marshal request", 0, err)
	}

	url := p.cfg.BaseURL + "/v1beta/models/" + chatModel + ":generateContent?key=" + p.cfg.APIKey
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", providers.NewProviderError(p.Name(), providers.ErrKindNetwork, "failed to create request", 0, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

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

	var resp generateResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", providers.NewProviderError(p.Name(), providers.ErrKindMalformedResponse, "failed to unmarshal response", httpResp.StatusCode, err)
	}

	text := resp.firstText()
	if strings.TrimSpace(text) == "" {
		return "", providers.NewProviderError(p.Name(), providers.ErrKindMalformedResponse, "empty candidate", httpResp.StatusCode, nil)
	}
	return text, nil
}

func (p *Provider) errorFromResponse(statusCode int, body []byte) error {
	var errResp struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return providers.ErrorFromStatus(p.Name(), statusCode, errResp.Error.Message)
	}
	return providers.ErrorFromStatus(p.Name(), statusCode, string(body))
}

func buildContents(turns []conversation.Turn) []content {
	contents := make([]content, 0, len(turns))
	for _, turn := range turns {
		role := "user"
		if turn.Role == conversation.RoleAssistant {
			role = "model"
		}
		contents = append(contents, content{
			Role:  role,
			Parts: []part{{Text: turn.Content}},
		})
	}
	return contents
}

// Wire types

type generateRequest struct {
	Contents          []content        `json:"contents"`
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (r *generateResponse) firstText() string {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return r.Candidates[0].Content.Parts[0].Text
}
