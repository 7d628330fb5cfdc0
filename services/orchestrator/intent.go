package orchestrator

import (
	"context"
	"strings"

	"github.com/Matloob11/AURA-AI-AGENT/services/conversation"
	"github.com/Matloob11/AURA-AI-AGENT/services/providers"
)

// intentPrompt replaces the persona prompt for intent extraction calls
const intentPrompt = `Analyze this command and extract:
1. action: main action (open, close, search, analyze, etc.)
2. target: what to act on (app name, file, screen, etc.)
3. parameters: additional details

Respond in JSON format only.`

// IntentResult carries the extracted intent for a command
type IntentResult struct {
	Intent          string         `json:"intent"`
	OriginalCommand string         `json:"original_command"`
	Provider        providers.Name `json:"provider_used"`
}

// AnalyzeIntent runs a one-shot dispatch with the intent-extraction
// prompt and an empty context. The conversation history is neither read
// nor written; provider statistics are recorded as for any dispatch.
func (o *Orchestrator) AnalyzeIntent(ctx context.Context, command string) (*IntentResult, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil, ErrEmptyMessage
	}
	if o.registry.Count() == 0 {
		return nil, ErrNotConfigured
	}

	gen, _ := o.generationSnapshot()
	req := &providers.ChatRequest{
		SystemPrompt: intentPrompt,
		Turns:        []conversation.Turn{conversation.NewTurn(conversation.RoleUser, command)},
		Generation:   gen,
	}

	text, name, _, err := o.dispatch(ctx, req)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	o.lastProvider = name
	o.mu.Unlock()

	return &IntentResult{
		Intent:          text,
		OriginalCommand: command,
		Provider:        name,
	}, nil
}
