// Package providers defines the uniform contract wrapping the external
// chat-completion services and the registry holding the configured set.
package providers

import (
	"context"

	"github.com/Matloob11/AURA-AI-AGENT/config"
	"github.com/Matloob11/AURA-AI-AGENT/services/conversation"
)

// Name identifies a supported provider
type Name string

const (
	NameOpenAI      Name = "openai"
	NameHuggingFace Name = "huggingface"
	NameCohere      Name = "cohere"
	NameGemini      Name = "gemini"
	NameDeepseek    Name = "deepseek"

	// NameLocal is the offline rule-based responder. It is never part of
	// the dispatch chain; the orchestrator reports it when the local
	// fallback answers.
	NameLocal Name = "local"
)

// priorityRanks fixes the dispatch order. Lower rank is tried first.
var priorityRanks = map[Name]int{
	NameOpenAI:      1,
	NameHuggingFace: 2,
	NameCohere:      3,
	NameGemini:      4,
	NameDeepseek:    5,
}

// Supported returns all dispatchable provider names in priority order
func Supported() []Name {
	return []Name{NameOpenAI, NameHuggingFace, NameCohere, NameGemini, NameDeepseek}
}

// Priority returns the fixed priority rank for a provider name.
// Unknown names sort last.
func Priority(name Name) int {
	if rank, ok := priorityRanks[name]; ok {
		return rank
	}
	return len(priorityRanks) + 1
}

// Identity describes a provider's fixed place in the dispatch order.
// Computed once at startup and never mutated.
type Identity struct {
	Name         Name `json:"name"`
	Priority     int  `json:"priority"`
	Credentialed bool `json:"credentialed"`
}

// ChatRequest carries the conversation context and generation parameters
// for a single provider call. Adapters must treat it as read-only.
type ChatRequest struct {
	// SystemPrompt is prefixed to the conversation in whatever form the
	// provider's wire format expects.
	SystemPrompt string

	// Turns is the conversation context, oldest first, ending with the
	// pending user message.
	Turns []conversation.Turn

	// Generation parameters. Adapters may clamp or ignore fields their
	// provider does not support, but must not error because of them.
	Generation config.GenerationConfig
}

// LastUserContent returns the content of the trailing user turn, or an
// empty string if the request ends with an assistant turn.
func (r *ChatRequest) LastUserContent() string {
	if n := len(r.Turns); n > 0 && r.Turns[n-1].Role == conversation.RoleUser {
		return r.Turns[n-1].Content
	}
	return ""
}

// Provider is the uniform capability wrapping a single external
// chat-completion service. Implementations are stateless between calls
// and safe for concurrent use.
type Provider interface {
	// Name returns the provider name (e.g., "openai", "cohere")
	Name() Name

	// Complete performs exactly one outbound call and returns the reply
	// text, or a *ProviderError describing the normalized failure.
	Complete(ctx context.Context, req *ChatRequest) (string, error)
}
