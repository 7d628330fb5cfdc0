package orchestrator

import (
	"github.com/Matloob11/AURA-AI-AGENT/config"
	"github.com/Matloob11/AURA-AI-AGENT/services/providers"
	"github.com/Matloob11/AURA-AI-AGENT/services/stats"
)

// ConfigSnapshot is a read-only diagnostic view of the orchestrator:
// the active generation parameters, every supported provider's identity,
// the last provider that served a request, and per-provider statistics.
type ConfigSnapshot struct {
	Model        string               `json:"model"`
	Temperature  float64              `json:"temperature"`
	MaxTokens    int                  `json:"max_tokens"`
	HistoryCount int                  `json:"history_count"`
	MaxHistory   int                  `json:"max_history"`
	Providers    []providers.Identity `json:"providers"`
	LastProvider providers.Name       `json:"last_provider_used,omitempty"`
	Stats        []stats.Snapshot     `json:"provider_stats"`
	LocalEnabled bool                 `json:"local_fallback_enabled"`
}

// ConfigSnapshot assembles the diagnostic view. Pure read; safe to call
// at any point, including before the first dispatch.
func (o *Orchestrator) ConfigSnapshot() ConfigSnapshot {
	o.mu.RLock()
	gen := o.gen
	last := o.lastProvider
	o.mu.RUnlock()

	identities := o.registry.Identities()
	credentialed := make([]providers.Name, 0, len(identities))
	for _, id := range identities {
		if id.Credentialed {
			credentialed = append(credentialed, id.Name)
		}
	}

	return ConfigSnapshot{
		Model:        gen.Model,
		Temperature:  gen.Temperature,
		MaxTokens:    gen.MaxTokens,
		HistoryCount: o.history.Len(),
		MaxHistory:   config.MaxHistoryTurns,
		Providers:    identities,
		LastProvider: last,
		Stats:        o.tracker.All(credentialed),
		LocalEnabled: o.local != nil,
	}
}

// Stats returns the statistics snapshot for a single provider
func (o *Orchestrator) Stats(name providers.Name) stats.Snapshot {
	return o.tracker.Snapshot(name)
}
