package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Matloob11/AURA-AI-AGENT/services/conversation"
	"github.com/Matloob11/AURA-AI-AGENT/services/orchestrator"
	"github.com/Matloob11/AURA-AI-AGENT/utils"
)

// AIHandler handles AI configuration and conversation-state requests
type AIHandler struct {
	service ChatService
	logger  *zap.Logger
}

// NewAIHandler creates a new AIHandler
func NewAIHandler(service ChatService, logger *zap.Logger) *AIHandler {
	return &AIHandler{
		service: service,
		logger:  logger,
	}
}

// HandleConfig handles GET /api/v1/ai/config
func (h *AIHandler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	if err := utils.WriteOK(w, h.service.ConfigSnapshot()); err != nil {
		h.logger.Error("failed to write config response", zap.Error(err))
	}
}

// HistoryResponse represents the conversation history payload
type HistoryResponse struct {
	Turns []conversation.Turn `json:"turns"`
	Count int                 `json:"count"`
}

// HandleHistory handles GET /api/v1/ai/history
func (h *AIHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	turns := h.service.LastTurns(h.service.HistoryLen())
	if turns == nil {
		turns = []conversation.Turn{}
	}

	if err := utils.WriteOK(w, HistoryResponse{
		Turns: turns,
		Count: len(turns),
	}); err != nil {
		h.logger.Error("failed to write history response", zap.Error(err))
	}
}

// HandleClearHistory handles POST /api/v1/ai/clear-history
func (h *AIHandler) HandleClearHistory(w http.ResponseWriter, r *http.Request) {
	h.service.ClearHistory()
	h.logger.Info("conversation history cleared",
		zap.String("request_id", middleware.GetReqID(r.Context())))
	utils.WriteNoContent(w)
}

// SettingsRequest represents a runtime generation-settings update.
// Absent fields are left unchanged.
type SettingsRequest struct {
	Model        *string  `json:"model,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`
	SystemPrompt *string  `json:"system_prompt,omitempty"`
}

// HandleUpdateSettings handles POST /api/v1/ai/settings
func (h *AIHandler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetReqID(r.Context())

	var req SettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	if req.Model == nil && req.Temperature == nil && req.SystemPrompt == nil {
		_ = utils.WriteBadRequest(w, "At least one setting is required", nil)
		return
	}

	if req.Model != nil {
		h.service.SetModel(*req.Model)
	}
	if req.Temperature != nil {
		h.service.SetTemperature(*req.Temperature)
	}
	if req.SystemPrompt != nil {
		h.service.UpdateSystemPrompt(*req.SystemPrompt)
	}

	h.logger.Info("generation settings updated",
		zap.String("request_id", requestID))

	if err := utils.WriteOK(w, h.service.ConfigSnapshot()); err != nil {
		h.logger.Error("failed to write settings response", zap.Error(err))
	}
}

// IntentRequest represents an intent analysis request
type IntentRequest struct {
	Command string `json:"command" validate:"required"`
}

// IntentResponse represents the intent analysis payload
type IntentResponse struct {
	Intent          string    `json:"intent"`
	OriginalCommand string    `json:"original_command"`
	Provider        string    `json:"provider"`
	Timestamp       time.Time `json:"timestamp"`
}

// HandleAnalyzeIntent handles POST /api/v1/ai/analyze-intent
func (h *AIHandler) HandleAnalyzeIntent(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetReqID(r.Context())

	var req IntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	result, err := h.service.AnalyzeIntent(r.Context(), req.Command)
	if err != nil {
		switch {
		case errors.Is(err, orchestrator.ErrEmptyMessage):
			_ = utils.WriteBadRequest(w, "Command must not be empty", nil)
		case errors.Is(err, orchestrator.ErrNotConfigured):
			_ = utils.WriteServiceUnavailable(w, "no AI providers are configured")
		default:
			h.logger.Error("intent analysis failed",
				zap.String("request_id", requestID),
				zap.Error(err))
			_ = utils.WriteServiceUnavailable(w, "intent analysis failed")
		}
		return
	}

	if err := utils.WriteOK(w, IntentResponse{
		Intent:          result.Intent,
		OriginalCommand: result.OriginalCommand,
		Provider:        string(result.Provider),
		Timestamp:       time.Now().UTC(),
	}); err != nil {
		h.logger.Error("failed to write intent response",
			zap.String("request_id", requestID),
			zap.Error(err))
	}
}
