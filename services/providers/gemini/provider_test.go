package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Matloob11/AURA-AI-AGENT/config"
	"github.com/Matloob11/AURA-AI-AGENT/services/conversation"
	"github.com/Matloob11/AURA-AI-AGENT/services/providers"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.ProviderConfig{APIKey: "g-test", BaseURL: srv.URL}, zap.NewNop())
}

func chatReq() *providers.ChatRequest {
	return &providers.ChatRequest{
		SystemPrompt: "You are AURA.",
		Turns: []conversation.Turn{
			{Role: conversation.RoleUser, Content: "hello"},
			{Role: conversation.RoleAssistant, Content: "hi"},
			{Role: conversation.RoleUser, Content: "what day is it?"},
		},
		Generation: config.GenerationConfig{Model: "gpt-4", Temperature: 0.5, MaxTokens: 300},
	}
}

func TestCompleteMapsRolesAndSystemInstruction(t *testing.T) {
	var captured generateRequest

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/"+chatModel+":generateContent", r.URL.Path)
		assert.Equal(t, "g-test", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"role": "model", "parts": []map[string]string{{"text": "It is Friday."}}}},
			},
		})
	})

	text, err := p.Complete(context.Background(), chatReq())
	require.NoError(t, err)
	assert.Equal(t, "It is Friday.", text)

	require.Len(t, captured.Contents, 3)
	assert.Equal(t, "user", captured.Contents[0].Role)
	assert.Equal(t, "model", captured.Contents[1].Role)
	assert.Equal(t, "user", captured.Contents[2].Role)
	assert.Equal(t, "what day is it?", captured.Contents[2].Parts[0].Text)

	require.NotNil(t, captured.SystemInstruction)
	assert.Equal(t, "You are AURA.", captured.SystemInstruction.Parts[0].Text)
	assert.Equal(t, 300, captured.GenerationConfig.MaxOutputTokens)
	assert.Equal(t, 0.5, captured.GenerationConfig.Temperature)
}

func TestCompleteAPIKeyRejected(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"API key not valid","status":"PERMISSION_DENIED"}}`))
	})

	_, err := p.Complete(context.Background(), chatReq())
	require.Error(t, err)

	var provErr *providers.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, providers.ErrKindAuth, provErr.Kind)
	assert.Equal(t, "API key not valid", provErr.Message)
}

func TestCompleteNoCandidates(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := p.Complete(context.Background(), chatReq())
	assert.Equal(t, providers.ErrKindMalformedResponse, providers.KindOf(err))
}
