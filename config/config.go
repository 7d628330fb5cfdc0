package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	Server        ServerConfig
	Providers     ProvidersConfig
	Generation    GenerationConfig
	Observability ObservabilityConfig
	Environment   string

	// LocalFallback enables the offline rule-based responder when no
	// provider is credentialed or every provider fails.
	LocalFallback bool
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// ProvidersConfig holds AI provider configurations.
// A provider with an empty APIKey is excluded from the dispatch chain.
type ProvidersConfig struct {
	OpenAI      ProviderConfig
	HuggingFace ProviderConfig
	Cohere      ProviderConfig
	Gemini      ProviderConfig
	Deepseek    ProviderConfig
}

// ProviderConfig holds per-provider connection settings
type ProviderConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// GenerationConfig holds tunable generation parameters.
// Values are read as an immutable snapshot at call time; changes take
// effect on the next call, never mid-flight.
type GenerationConfig struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// ObservabilityConfig holds logging and metrics configuration
type ObservabilityConfig struct {
	LogLevel       string
	LogFormat      string // json or console
	MetricsEnabled bool
}

// Default generation parameters
const (
	DefaultModel       = "gpt-4"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 500

	// MaxHistoryTurns caps the conversation history kept as context.
	MaxHistoryTurns = 20
)

// New creates a new Config instance by loading environment variables
func New() (*Config, error) {
	// Load .env if present; real environment takes precedence
	_ = godotenv.Load(".env")

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8000),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 5*time.Minute),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Providers: ProvidersConfig{
			OpenAI: ProviderConfig{
				APIKey:  getEnv("OPENAI_API_KEY", ""),
				BaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
				Timeout: getEnvAsDuration("OPENAI_TIMEOUT", 30*time.Second),
			},
			HuggingFace: ProviderConfig{
				APIKey:  getEnv("HF_API_KEY", ""),
				BaseURL: getEnv("HF_BASE_URL", "https://api-inference.huggingface.co"),
				Timeout: getEnvAsDuration("HF_TIMEOUT", 30*time.Second),
			},
			Cohere: ProviderConfig{
				APIKey:  getEnv("COHERE_API_KEY", ""),
				BaseURL: getEnv("COHERE_BASE_URL", "https://api.cohere.ai"),
				Timeout: getEnvAsDuration("COHERE_TIMEOUT", 30*time.Second),
			},
			Gemini: ProviderConfig{
				APIKey:  getEnv("GEMINI_API_KEY", ""),
				BaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
				Timeout: getEnvAsDuration("GEMINI_TIMEOUT", 30*time.Second),
			},
			Deepseek: ProviderConfig{
				APIKey:  getEnv("DEEPSEEK_API_KEY", ""),
				BaseURL: getEnv("DEEPSEEK_BASE_URL", "https://api.deepseek.com"),
				Timeout: getEnvAsDuration("DEEPSEEK_TIMEOUT", 30*time.Second),
			},
		},
		Generation: GenerationConfig{
			Model:       getEnv("AI_MODEL", DefaultModel),
			Temperature: getEnvAsFloat("AI_TEMPERATURE", DefaultTemperature),
			MaxTokens:   getEnvAsInt("AI_MAX_TOKENS", DefaultMaxTokens),
		},
		Observability: ObservabilityConfig{
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			LogFormat:      getEnv("LOG_FORMAT", "json"),
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
		},
		LocalFallback: getEnvAsBool("AURA_LOCAL_FALLBACK", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if all configuration fields are within bounds
func (c *Config) Validate() error {
	if err := c.Generation.Validate(); err != nil {
		return err
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Observability.LogLevel == "" {
		return fmt.Errorf("log level is required")
	}
	return nil
}

// Validate checks generation parameter bounds
func (g *GenerationConfig) Validate() error {
	if g.Model == "" {
		return fmt.Errorf("model name is required")
	}
	if g.Temperature < 0 || g.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0.0 and 2.0, got %v", g.Temperature)
	}
	if g.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", g.MaxTokens)
	}
	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// Address returns the HTTP server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
