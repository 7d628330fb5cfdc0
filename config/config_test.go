package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "gpt-4", cfg.Generation.Model)
	assert.Equal(t, 0.7, cfg.Generation.Temperature)
	assert.Equal(t, 500, cfg.Generation.MaxTokens)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Observability.LogLevel)
	assert.False(t, cfg.LocalFallback)
}

func TestNewEnvOverrides(t *testing.T) {
	t.Setenv("AI_MODEL", "gpt-4o-mini")
	t.Setenv("AI_TEMPERATURE", "1.2")
	t.Setenv("AI_MAX_TOKENS", "256")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("DEEPSEEK_TIMEOUT", "15s")
	t.Setenv("AURA_LOCAL_FALLBACK", "true")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.Generation.Model)
	assert.Equal(t, 1.2, cfg.Generation.Temperature)
	assert.Equal(t, 256, cfg.Generation.MaxTokens)
	assert.Equal(t, "sk-test", cfg.Providers.OpenAI.APIKey)
	assert.Equal(t, 15*time.Second, cfg.Providers.Deepseek.Timeout)
	assert.True(t, cfg.LocalFallback)
}

func TestNewInvalidEnvFallsBackToDefaults(t *testing.T) {
	t.Setenv("AI_TEMPERATURE", "not-a-number")
	t.Setenv("AI_MAX_TOKENS", "banana")
	t.Setenv("SERVER_PORT", "")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, DefaultTemperature, cfg.Generation.Temperature)
	assert.Equal(t, DefaultMaxTokens, cfg.Generation.MaxTokens)
}

func TestGenerationValidate(t *testing.T) {
	tests := []struct {
		name    string
		gen     GenerationConfig
		wantErr bool
	}{
		{
			name: "valid defaults",
			gen:  GenerationConfig{Model: "gpt-4", Temperature: 0.7, MaxTokens: 500},
		},
		{
			name: "temperature at upper bound",
			gen:  GenerationConfig{Model: "gpt-4", Temperature: 2.0, MaxTokens: 1},
		},
		{
			name:    "temperature too high",
			gen:     GenerationConfig{Model: "gpt-4", Temperature: 2.1, MaxTokens: 500},
			wantErr: true,
		},
		{
			name:    "negative temperature",
			gen:     GenerationConfig{Model: "gpt-4", Temperature: -0.1, MaxTokens: 500},
			wantErr: true,
		},
		{
			name:    "zero max tokens",
			gen:     GenerationConfig{Model: "gpt-4", Temperature: 0.7, MaxTokens: 0},
			wantErr: true,
		},
		{
			name:    "missing model",
			gen:     GenerationConfig{Temperature: 0.7, MaxTokens: 500},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.gen.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestServerAddress(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 9000}
	assert.Equal(t, "127.0.0.1:9000", s.Address())
}
