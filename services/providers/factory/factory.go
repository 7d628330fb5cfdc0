// Package factory assembles the provider registry from configured
// credentials. A provider with a missing credential is excluded entirely.
package factory

import (
	"go.uber.org/zap"

	"github.com/Matloob11/AURA-AI-AGENT/config"
	"github.com/Matloob11/AURA-AI-AGENT/services/providers"
	"github.com/Matloob11/AURA-AI-AGENT/services/providers/cohere"
	"github.com/Matloob11/AURA-AI-AGENT/services/providers/deepseek"
	"github.com/Matloob11/AURA-AI-AGENT/services/providers/gemini"
	"github.com/Matloob11/AURA-AI-AGENT/services/providers/huggingface"
	"github.com/Matloob11/AURA-AI-AGENT/services/providers/openai"
)

// Build constructs adapters for every credentialed provider and returns
// them in a priority-ordered registry. When zero providers are
// credentialed the (empty) registry is still returned alongside
// providers.ErrNoProvidersConfigured, so the caller can surface the
// not-configured state instead of crashing.
func Build(cfg config.ProvidersConfig, logger *zap.Logger) (*providers.Registry, error) {
	var adapters []providers.Provider

	if cfg.OpenAI.APIKey != "" {
		adapters = append(adapters, openai.New(cfg.OpenAI, logger))
	}
	if cfg.HuggingFace.APIKey != "" {
		adapters = append(adapters, huggingface.New(cfg.HuggingFace, logger))
	}
	if cfg.Cohere.APIKey != "" {
		adapters = append(adapters, cohere.New(cfg.Cohere, logger))
	}
	if cfg.Gemini.APIKey != "" {
		adapters = append(adapters, gemini.New(cfg.Gemini, logger))
	}
	if cfg.Deepseek.APIKey != "" {
		adapters = append(adapters, deepseek.New(cfg.Deepseek, logger))
	}

	registry := providers.NewRegistry(adapters...)

	for _, id := range registry.Identities() {
		logger.Info("provider configured",
			zap.String("provider", string(id.Name)),
			zap.Int("priority", id.Priority),
			zap.Bool("credentialed", id.Credentialed))
	}

	if registry.Count() == 0 {
		return registry, providers.ErrNoProvidersConfigured
	}
	return registry, nil
}
