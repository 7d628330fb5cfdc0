// Package deepseek adapts the Deepseek API, which is OpenAI-compatible
package deepseek

import (
	"go.uber.org/zap"

	"github.com/Matloob11/AURA-AI-AGENT/config"
	"github.com/Matloob11/AURA-AI-AGENT/services/providers"
	"github.com/Matloob11/AURA-AI-AGENT/services/providers/openaicompat"
)

const (
	defaultBaseURL = "https://api.deepseek.com"
	chatModel      = "deepseek-chat"
)

// Provider implements the provider contract for Deepseek
type Provider struct {
	*openaicompat.Provider
}

// New creates the Deepseek adapter
func New(cfg config.ProviderConfig, logger *zap.Logger) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Provider{
		Provider: openaicompat.New(openaicompat.Config{
			ProviderName: providers.NameDeepseek,
			APIKey:       cfg.APIKey,
			BaseURL:      cfg.BaseURL,
			Timeout:      cfg.Timeout,
			// Deepseek serves its own models regardless of the configured name
			ModelHook: func(string) string { return chatModel },
		}, logger),
	}
}
