// Package orchestrator dispatches chat requests through the ranked
// provider chain with automatic fallback, maintains the bounded
// conversation history, and records per-provider statistics.
package orchestrator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Matloob11/AURA-AI-AGENT/config"
	"github.com/Matloob11/AURA-AI-AGENT/internal/observability"
	"github.com/Matloob11/AURA-AI-AGENT/services/conversation"
	"github.com/Matloob11/AURA-AI-AGENT/services/localai"
	"github.com/Matloob11/AURA-AI-AGENT/services/providers"
	"github.com/Matloob11/AURA-AI-AGENT/services/stats"
)

// DefaultSystemPrompt is the AURA persona prefixed to every provider call
const DefaultSystemPrompt = `You are AURA, an advanced AI desktop assistant.

Your capabilities:
- Voice command processing
- Screen analysis and vision
- System automation and control
- File operations
- Web searches and information retrieval
- Task automation

Personality:
- Concise and efficient
- Helpful and proactive
- Professional yet friendly
- Action-oriented

Guidelines:
- Keep responses brief (2-3 sentences max unless asked for details)
- Suggest actions when appropriate
- Confirm before executing system commands
- Be clear about your limitations`

// DispatchResult is the outcome of a successful chat dispatch
type DispatchResult struct {
	ID       uuid.UUID
	Response string
	Provider providers.Name
	Latency  time.Duration
}

// Orchestrator walks the provider registry in priority order for each
// chat request. Per-request state stays on the stack; the shared history
// and stats are internally synchronized, so one instance serves
// concurrent requests.
type Orchestrator struct {
	registry *providers.Registry
	history  *conversation.Store
	tracker  *stats.Tracker
	local    *localai.Responder // nil unless the offline fallback is enabled
	metrics  *observability.Metrics
	logger   *zap.Logger

	// mu guards the tunable fields below. Dispatches read them once at
	// entry; changes take effect on the next request.
	mu           sync.RWMutex
	gen          config.GenerationConfig
	systemPrompt string
	lastProvider providers.Name
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithLocalFallback enables the offline responder as a last resort
func WithLocalFallback(r *localai.Responder) Option {
	return func(o *Orchestrator) { o.local = r }
}

// WithMetrics attaches Prometheus collectors
func WithMetrics(m *observability.Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// WithSystemPrompt overrides the default persona prompt
func WithSystemPrompt(prompt string) Option {
	return func(o *Orchestrator) { o.systemPrompt = prompt }
}

// New creates an orchestrator over the given registry
func New(registry *providers.Registry, gen config.GenerationConfig, logger *zap.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		registry:     registry,
		history:      conversation.NewStore(config.MaxHistoryTurns),
		tracker:      stats.NewTracker(),
		logger:       logger,
		gen:          gen,
		systemPrompt: DefaultSystemPrompt,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Chat dispatches a user message through the fallback chain and returns
// the first successful reply. On success the user and assistant turns
// are appended to the history as one atomic exchange; on failure the
// history is left untouched.
func (o *Orchestrator) Chat(ctx context.Context, message string) (*DispatchResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	if o.registry.Count() == 0 {
		if o.local != nil {
			return o.localReply(message), nil
		}
		o.metrics.ObserveChat("not_configured")
		return nil, ErrNotConfigured
	}

	gen, prompt := o.generationSnapshot()
	userTurn := conversation.NewTurn(conversation.RoleUser, message)
	req := &providers.ChatRequest{
		SystemPrompt: prompt,
		Turns:        append(o.history.Snapshot(), userTurn),
		Generation:   gen,
	}

	text, name, latency, err := o.dispatch(ctx, req)
	if err != nil {
		var exhausted *ExhaustedError
		if errors.As(err, &exhausted) {
			if o.local != nil {
				o.logger.Warn("all providers failed, falling back to local responder", zap.Error(err))
				return o.localReply(message), nil
			}
			o.metrics.ObserveChat("all_providers_failed")
		} else {
			o.metrics.ObserveChat("canceled")
		}
		return nil, err
	}

	assistantTurn := conversation.NewTurn(conversation.RoleAssistant, text)
	o.history.AppendExchange(userTurn, assistantTurn)
	o.metrics.SetHistoryTurns(o.history.Len())
	o.metrics.ObserveChat("success")

	o.mu.Lock()
	o.lastProvider = name
	o.mu.Unlock()

	return &DispatchResult{
		ID:       uuid.New(),
		Response: text,
		Provider: name,
		Latency:  latency,
	}, nil
}

// dispatch walks the registry in priority order. Exactly one stats
// record is made per attempt. The chain stops at the first success, the
// caller's context being canceled, or exhaustion.
func (o *Orchestrator) dispatch(ctx context.Context, req *providers.ChatRequest) (string, providers.Name, time.Duration, error) {
	var attempts []Attempt

	for _, provider := range o.registry.Providers() {
		name := provider.Name()

		o.logger.Debug("attempting provider", zap.String("provider", string(name)))
		start := time.Now()
		text, err := provider.Complete(ctx, req)
		latency := time.Since(start)

		if err != nil {
			o.tracker.Record(name, false, latency)
			o.metrics.ObserveAttempt(string(name), false, latency)
			o.logger.Warn("provider failed",
				zap.String("provider", string(name)),
				zap.String("kind", string(providers.KindOf(err))),
				zap.Error(err))

			attempts = append(attempts, Attempt{Provider: name, Err: err})

			// Abandoned request: stop the chain instead of burning the
			// remaining providers on a dead context.
			if ctx.Err() != nil {
				return "", "", 0, ctx.Err()
			}
			continue
		}

		o.tracker.Record(name, true, latency)
		o.metrics.ObserveAttempt(string(name), true, latency)
		o.logger.Info("provider responded",
			zap.String("provider", string(name)),
			zap.Duration("latency", latency))

		return text, name, latency, nil
	}

	return "", "", 0, &ExhaustedError{Attempts: attempts}
}

func (o *Orchestrator) localReply(message string) *DispatchResult {
	text := o.local.Reply(message)
	o.history.AppendExchange(
		conversation.NewTurn(conversation.RoleUser, message),
		conversation.NewTurn(conversation.RoleAssistant, text),
	)
	o.metrics.SetHistoryTurns(o.history.Len())
	o.metrics.ObserveChat("local")

	o.mu.Lock()
	o.lastProvider = providers.NameLocal
	o.mu.Unlock()

	return &DispatchResult{
		ID:       uuid.New(),
		Response: text,
		Provider: providers.NameLocal,
	}
}

func (o *Orchestrator) generationSnapshot() (config.GenerationConfig, string) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.gen, o.systemPrompt
}

// ClearHistory resets the conversation history. Idempotent.
func (o *Orchestrator) ClearHistory() {
	o.history.Clear()
	o.metrics.SetHistoryTurns(0)
	o.logger.Info("conversation history cleared")
}

// HistoryLen returns the number of turns currently held
func (o *Orchestrator) HistoryLen() int {
	return o.history.Len()
}

// LastTurns returns a copy of the most recent n turns
func (o *Orchestrator) LastTurns(n int) []conversation.Turn {
	return o.history.Last(n)
}

// SetModel changes the model used for subsequent calls
func (o *Orchestrator) SetModel(model string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.gen.Model = model
	o.logger.Info("AI model changed", zap.String("model", model))
}

// SetTemperature changes the sampling temperature for subsequent calls,
// clamped to [0, 2].
func (o *Orchestrator) SetTemperature(temperature float64) {
	if temperature < 0 {
		temperature = 0
	}
	if temperature > 2 {
		temperature = 2
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.gen.Temperature = temperature
	o.logger.Info("temperature changed", zap.Float64("temperature", temperature))
}

// UpdateSystemPrompt replaces the persona prompt for subsequent calls
func (o *Orchestrator) UpdateSystemPrompt(prompt string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.systemPrompt = prompt
	o.logger.Info("system prompt updated")
}
