package app

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Matloob11/AURA-AI-AGENT/config"
	"github.com/Matloob11/AURA-AI-AGENT/internal/observability"
	"github.com/Matloob11/AURA-AI-AGENT/services/localai"
	"github.com/Matloob11/AURA-AI-AGENT/services/orchestrator"
	"github.com/Matloob11/AURA-AI-AGENT/services/providers"
	"github.com/Matloob11/AURA-AI-AGENT/services/providers/factory"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger

	Registry     *providers.Registry
	Orchestrator *orchestrator.Orchestrator

	Metrics *observability.Metrics
	PromReg *prometheus.Registry
}

// metricsNamespace prefixes every exported metric name.
const metricsNamespace = "aura"

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	registry, err := factory.Build(cfg.Providers, logger)
	if err != nil {
		if !errors.Is(err, providers.ErrNoProvidersConfigured) {
			return nil, err
		}
		// A credential-less start is still a usable server. Chat
		// requests report not_configured until keys are supplied.
		logger.Warn("no AI providers configured")
	}
	deps.Registry = registry

	var opts []orchestrator.Option
	if cfg.Observability.MetricsEnabled {
		deps.PromReg = prometheus.NewRegistry()
		deps.Metrics = observability.NewMetrics(metricsNamespace, deps.PromReg)
		opts = append(opts, orchestrator.WithMetrics(deps.Metrics))
	}
	if cfg.LocalFallback {
		opts = append(opts, orchestrator.WithLocalFallback(localai.New()))
		logger.Info("local offline responder enabled")
	}

	deps.Orchestrator = orchestrator.New(registry, cfg.Generation, logger, opts...)

	logger.Info("all dependencies initialized",
		zap.Int("providers", registry.Count()),
		zap.String("model", cfg.Generation.Model))

	return deps, nil
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close() {
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}
}
