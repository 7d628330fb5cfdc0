package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Matloob11/AURA-AI-AGENT/services/conversation"
	"github.com/Matloob11/AURA-AI-AGENT/services/orchestrator"
	"github.com/Matloob11/AURA-AI-AGENT/services/providers"
	"github.com/Matloob11/AURA-AI-AGENT/utils"
)

// ChatService defines the orchestration operations the HTTP layer needs.
type ChatService interface {
	Chat(ctx context.Context, message string) (*orchestrator.DispatchResult, error)
	AnalyzeIntent(ctx context.Context, command string) (*orchestrator.IntentResult, error)
	ConfigSnapshot() orchestrator.ConfigSnapshot
	ClearHistory()
	HistoryLen() int
	LastTurns(n int) []conversation.Turn
	SetModel(model string)
	SetTemperature(temperature float64)
	UpdateSystemPrompt(prompt string)
}

// ChatRequest represents a chat request from the desktop client
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// ChatResponse represents the chat response payload
type ChatResponse struct {
	ID        string         `json:"id,omitempty"`
	Response  string         `json:"response,omitempty"`
	Status    string         `json:"status"`
	Provider  providers.Name `json:"provider,omitempty"`
	Error     string         `json:"error,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Dispatch outcome statuses surfaced to the client.
const (
	StatusSuccess            = "success"
	StatusNotConfigured      = "not_configured"
	StatusAllProvidersFailed = "all_providers_failed"
)

// ChatHandler handles chat-related HTTP requests
type ChatHandler struct {
	service ChatService
	logger  *zap.Logger
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(service ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		logger:  logger,
	}
}

// HandleChat handles POST /api/v1/chat
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetReqID(ctx)

	var chatReq ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&chatReq); err != nil {
		h.logger.Warn("failed to parse chat request",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&chatReq); err != nil {
		h.logger.Warn("chat request validation failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		HandleValidationError(w, err, h.logger)
		return
	}

	result, err := h.service.Chat(ctx, chatReq.Message)
	if err != nil {
		h.writeChatError(w, requestID, err)
		return
	}

	h.logger.Info("chat dispatched",
		zap.String("request_id", requestID),
		zap.String("provider", string(result.Provider)),
		zap.Duration("latency", result.Latency))

	if err := utils.WriteOK(w, ChatResponse{
		ID:        result.ID.String(),
		Response:  result.Response,
		Status:    StatusSuccess,
		Provider:  result.Provider,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		h.logger.Error("failed to write chat response",
			zap.String("request_id", requestID),
			zap.Error(err))
	}
}

// writeChatError maps orchestration errors onto chat response payloads.
// Provider outages are reported in-band with a status field so the
// desktop client can degrade gracefully instead of treating every
// failure as a transport error.
func (h *ChatHandler) writeChatError(w http.ResponseWriter, requestID string, err error) {
	var exhausted *orchestrator.ExhaustedError

	switch {
	case errors.Is(err, orchestrator.ErrEmptyMessage):
		_ = utils.WriteBadRequest(w, "Message must not be empty", nil)

	case errors.Is(err, orchestrator.ErrNotConfigured):
		h.logger.Warn("chat rejected, no providers configured",
			zap.String("request_id", requestID))
		_ = utils.WriteOK(w, ChatResponse{
			Status:    StatusNotConfigured,
			Error:     "no AI providers are configured",
			Timestamp: time.Now().UTC(),
		})

	case errors.As(err, &exhausted):
		h.logger.Error("all providers failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteOK(w, ChatResponse{
			Status:    StatusAllProvidersFailed,
			Error:     exhausted.Error(),
			Timestamp: time.Now().UTC(),
		})

	default:
		h.logger.Error("chat dispatch failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, "")
	}
}
