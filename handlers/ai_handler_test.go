package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Matloob11/AURA-AI-AGENT/services/conversation"
	"github.com/Matloob11/AURA-AI-AGENT/services/orchestrator"
	"github.com/Matloob11/AURA-AI-AGENT/services/providers"
)

func sampleSnapshot() orchestrator.ConfigSnapshot {
	return orchestrator.ConfigSnapshot{
		Model:        "gpt-4",
		Temperature:  0.7,
		MaxTokens:    500,
		HistoryCount: 2,
		MaxHistory:   20,
		Providers: []providers.Identity{
			{Name: providers.NameOpenAI, Priority: 1, Credentialed: true},
			{Name: providers.NameHuggingFace, Priority: 2},
		},
		LastProvider: providers.NameOpenAI,
	}
}

func TestHandleConfig(t *testing.T) {
	mockService := new(MockChatService)
	handler := NewAIHandler(mockService, zap.NewNop())

	mockService.On("ConfigSnapshot").Return(sampleSnapshot())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ai/config", nil)
	w := httptest.NewRecorder()
	handler.HandleConfig(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "gpt-4", response["model"])
	assert.Equal(t, 0.7, response["temperature"])
	assert.Equal(t, float64(20), response["max_history"])

	ids := response["providers"].([]interface{})
	require.Len(t, ids, 2)
	first := ids[0].(map[string]interface{})
	assert.Equal(t, "openai", first["name"])
	assert.Equal(t, true, first["credentialed"])
}

func TestHandleHistory(t *testing.T) {
	t.Run("with turns", func(t *testing.T) {
		mockService := new(MockChatService)
		handler := NewAIHandler(mockService, zap.NewNop())

		turns := []conversation.Turn{
			{Role: conversation.RoleUser, Content: "hi", CreatedAt: time.Now()},
			{Role: conversation.RoleAssistant, Content: "hello", CreatedAt: time.Now()},
		}
		mockService.On("HistoryLen").Return(2)
		mockService.On("LastTurns", 2).Return(turns)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/ai/history", nil)
		w := httptest.NewRecorder()
		handler.HandleHistory(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response HistoryResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, 2, response.Count)
		require.Len(t, response.Turns, 2)
		assert.Equal(t, conversation.RoleUser, response.Turns[0].Role)
	})

	t.Run("empty history serializes as empty array", func(t *testing.T) {
		mockService := new(MockChatService)
		handler := NewAIHandler(mockService, zap.NewNop())

		mockService.On("HistoryLen").Return(0)
		mockService.On("LastTurns", 0).Return(nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/ai/history", nil)
		w := httptest.NewRecorder()
		handler.HandleHistory(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"turns":[]`)
	})
}

func TestHandleClearHistory(t *testing.T) {
	mockService := new(MockChatService)
	handler := NewAIHandler(mockService, zap.NewNop())

	mockService.On("ClearHistory").Return()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ai/clear-history", nil)
	w := httptest.NewRecorder()
	handler.HandleClearHistory(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}

func TestHandleUpdateSettings(t *testing.T) {
	logger := zap.NewNop()

	t.Run("updates provided fields only", func(t *testing.T) {
		mockService := new(MockChatService)
		handler := NewAIHandler(mockService, logger)

		mockService.On("SetModel", "gpt-4o").Return()
		mockService.On("SetTemperature", 1.2).Return()
		mockService.On("ConfigSnapshot").Return(sampleSnapshot())

		w := httptest.NewRecorder()
		handler.HandleUpdateSettings(w, postJSON(t, "/api/v1/ai/settings", map[string]interface{}{
			"model":       "gpt-4o",
			"temperature": 1.2,
		}))

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
		mockService.AssertNotCalled(t, "UpdateSystemPrompt")
	})

	t.Run("rejects empty update", func(t *testing.T) {
		mockService := new(MockChatService)
		handler := NewAIHandler(mockService, logger)

		w := httptest.NewRecorder()
		handler.HandleUpdateSettings(w, postJSON(t, "/api/v1/ai/settings", map[string]interface{}{}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects out-of-range temperature", func(t *testing.T) {
		mockService := new(MockChatService)
		handler := NewAIHandler(mockService, logger)

		w := httptest.NewRecorder()
		handler.HandleUpdateSettings(w, postJSON(t, "/api/v1/ai/settings", map[string]interface{}{
			"temperature": 3.5,
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "SetTemperature")
	})
}

func TestHandleAnalyzeIntent(t *testing.T) {
	logger := zap.NewNop()

	t.Run("successful analysis", func(t *testing.T) {
		mockService := new(MockChatService)
		handler := NewAIHandler(mockService, logger)

		result := &orchestrator.IntentResult{
			Intent:          `{"action":"open","target":"browser"}`,
			OriginalCommand: "open the browser",
			Provider:        providers.NameOpenAI,
		}
		mockService.On("AnalyzeIntent", mock.Anything, "open the browser").Return(result, nil)

		w := httptest.NewRecorder()
		handler.HandleAnalyzeIntent(w, postJSON(t, "/api/v1/ai/analyze-intent", IntentRequest{
			Command: "open the browser",
		}))

		assert.Equal(t, http.StatusOK, w.Code)

		var response IntentResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, result.Intent, response.Intent)
		assert.Equal(t, "open the browser", response.OriginalCommand)
		assert.Equal(t, "openai", response.Provider)
	})

	t.Run("missing command", func(t *testing.T) {
		mockService := new(MockChatService)
		handler := NewAIHandler(mockService, logger)

		w := httptest.NewRecorder()
		handler.HandleAnalyzeIntent(w, postJSON(t, "/api/v1/ai/analyze-intent", map[string]string{}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "AnalyzeIntent")
	})

	t.Run("no providers configured", func(t *testing.T) {
		mockService := new(MockChatService)
		handler := NewAIHandler(mockService, logger)

		mockService.On("AnalyzeIntent", mock.Anything, "open").Return(nil, orchestrator.ErrNotConfigured)

		w := httptest.NewRecorder()
		handler.HandleAnalyzeIntent(w, postJSON(t, "/api/v1/ai/analyze-intent", IntentRequest{Command: "open"}))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
