package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Matloob11/AURA-AI-AGENT/config"
	"github.com/Matloob11/AURA-AI-AGENT/services/providers"
)

func TestBuildExcludesUncredentialedProviders(t *testing.T) {
	cfg := config.ProvidersConfig{
		Deepseek: config.ProviderConfig{APIKey: "dsk"},
		Cohere:   config.ProviderConfig{APIKey: "co"},
	}

	registry, err := Build(cfg, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, 2, registry.Count())

	// Priority order regardless of construction order
	assert.Equal(t, providers.NameCohere, registry.Providers()[0].Name())
	assert.Equal(t, providers.NameDeepseek, registry.Providers()[1].Name())

	for _, id := range registry.Identities() {
		want := id.Name == providers.NameCohere || id.Name == providers.NameDeepseek
		assert.Equal(t, want, id.Credentialed)
	}
}

func TestBuildAllProviders(t *testing.T) {
	cfg := config.ProvidersConfig{
		OpenAI:      config.ProviderConfig{APIKey: "a"},
		HuggingFace: config.ProviderConfig{APIKey: "b"},
		Cohere:      config.ProviderConfig{APIKey: "c"},
		Gemini:      config.ProviderConfig{APIKey: "d"},
		Deepseek:    config.ProviderConfig{APIKey: "e"},
	}

	registry, err := Build(cfg, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, 5, registry.Count())

	var names []providers.Name
	for _, p := range registry.Providers() {
		names = append(names, p.Name())
	}
	assert.Equal(t, []providers.Name{
		providers.NameOpenAI,
		providers.NameHuggingFace,
		providers.NameCohere,
		providers.NameGemini,
		providers.NameDeepseek,
	}, names)
}

func TestBuildNoCredentials(t *testing.T) {
	registry, err := Build(config.ProvidersConfig{}, zap.NewNop())

	assert.ErrorIs(t, err, providers.ErrNoProvidersConfigured)
	require.NotNil(t, registry)
	assert.Equal(t, 0, registry.Count())
}
