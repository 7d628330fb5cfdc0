// Package openai adapts the OpenAI chat completions API
package openai

import (
	"strings"

	"go.uber.org/zap"

	"github.com/Matloob11/AURA-AI-AGENT/config"
	"github.com/Matloob11/AURA-AI-AGENT/services/providers"
	"github.com/Matloob11/AURA-AI-AGENT/services/providers/openaicompat"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Provider implements the provider contract for OpenAI
type Provider struct {
	*openaicompat.Provider
}

// New creates the OpenAI adapter
func New(cfg config.ProviderConfig, logger *zap.Logger) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Provider{
		Provider: openaicompat.New(openaicompat.Config{
			ProviderName: providers.NameOpenAI,
			APIKey:       cfg.APIKey,
			BaseURL:      cfg.BaseURL,
			Timeout:      cfg.Timeout,
			ModelHook:    openaiModelHook,
		}, logger),
	}
}

// openaiModelHook keeps whatever gpt-* model is configured and falls back
// to gpt-4 for model names OpenAI does not serve.
func openaiModelHook(configured string) string {
	if strings.HasPrefix(configured, "gpt") {
		return configured
	}
	return "gpt-4"
}
