package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Matloob11/AURA-AI-AGENT/config"
)

func baseConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Generation: config.GenerationConfig{
			Model:       config.DefaultModel,
			Temperature: config.DefaultTemperature,
			MaxTokens:   config.DefaultMaxTokens,
		},
		Observability: config.ObservabilityConfig{
			LogLevel:       "info",
			MetricsEnabled: true,
		},
	}
}

func TestNewDependencies(t *testing.T) {
	t.Run("starts without any providers", func(t *testing.T) {
		deps, err := NewDependencies(baseConfig(), zap.NewNop())
		require.NoError(t, err)
		require.NotNil(t, deps.Orchestrator)
		assert.Equal(t, 0, deps.Registry.Count())
		assert.NotNil(t, deps.Metrics)
		assert.NotNil(t, deps.PromReg)
	})

	t.Run("registers credentialed providers", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Providers.OpenAI = config.ProviderConfig{
			APIKey:  "sk-test",
			BaseURL: "https://api.openai.com/v1",
			Timeout: 30 * time.Second,
		}
		cfg.Providers.Gemini = config.ProviderConfig{
			APIKey:  "g-test",
			BaseURL: "https://generativelanguage.googleapis.com",
			Timeout: 30 * time.Second,
		}

		deps, err := NewDependencies(cfg, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, 2, deps.Registry.Count())
	})

	t.Run("metrics disabled", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Observability.MetricsEnabled = false

		deps, err := NewDependencies(cfg, zap.NewNop())
		require.NoError(t, err)
		assert.Nil(t, deps.Metrics)
		assert.Nil(t, deps.PromReg)
	})

	t.Run("local fallback enabled", func(t *testing.T) {
		cfg := baseConfig()
		cfg.LocalFallback = true

		deps, err := NewDependencies(cfg, zap.NewNop())
		require.NoError(t, err)
		snap := deps.Orchestrator.ConfigSnapshot()
		assert.True(t, snap.LocalEnabled)
	})
}
