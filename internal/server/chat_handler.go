package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/hiremeplz/hiremeplz/internal/conversation"
	"github.com/hiremeplz/hiremeplz/internal/onboarding"
	"github.com/hiremeplz/hiremeplz/internal/server/middleware"
	"github.com/hiremeplz/hiremeplz/internal/types"
)

// TurnHandler runs one onboarding conversation turn. *conversation.Orchestrator
// satisfies it; tests substitute stubs.
type TurnHandler interface {
	HandleTurn(ctx context.Context, req conversation.TurnRequest, emit conversation.EmitFunc) (*conversation.TurnResult, error)
}

// ChatRequest is the body of POST /v1/onboarding/chat. The client carries
// the onboarding state: when conversationHistory and collectedData are
// sent they seed the turn, so no prior request to this process is assumed.
type ChatRequest struct {
	ConversationID      string               `json:"conversationId" validate:"omitempty,uuid"`
	Message             string               `json:"message" validate:"required,min=1"`
	ConversationHistory []types.ChatMessage  `json:"conversationHistory"`
	CollectedData       *types.CollectedData `json:"collectedData"`
	Stream              bool                 `json:"stream"`
}

// ChatResponse is the non-streaming reply, mirroring the final stream event.
type ChatResponse struct {
	ConversationID string                 `json:"conversationId"`
	Message        string                 `json:"message"`
	CollectedData  types.CollectedData    `json:"collectedData"`
	IsComplete     bool                   `json:"isComplete"`
	InputHint      onboarding.InputHint   `json:"inputHint"`
	Analysis       *types.ProfileAnalysis `json:"analysis,omitempty"`
}

// ChatHandler serves the onboarding conversation endpoint.
type ChatHandler struct {
	turns     TurnHandler
	users     *UserService
	validator *validator.Validate
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(turns TurnHandler, users *UserService) *ChatHandler {
	return &ChatHandler{turns: turns, users: users, validator: validator.New()}
}

// Chat handles POST /v1/onboarding/chat. With stream:true the turn's events
// are sent as SSE terminated by [DONE]; otherwise the final result is
// returned as JSON.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	auth, err := middleware.GetAuth(r)
	if err != nil {
		writeErrorStatus(w, http.StatusUnauthorized, "unauthorized", "missing auth context")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, asValidationError(err))
		return
	}

	conversationID := uuid.New()
	if req.ConversationID != "" {
		parsed, err := uuid.Parse(req.ConversationID)
		if err != nil {
			writeError(w, &ErrValidation{Field: "conversationId", Message: "uuid"})
			return
		}
		conversationID = parsed
	}

	userName := ""
	if user, err := h.users.Get(r.Context(), auth.UserID); err == nil {
		userName = user.Name
	}

	turnReq := conversation.TurnRequest{
		ConversationID: conversationID,
		UserName:       userName,
		Message:        req.Message,
		Data:           req.CollectedData,
		History:        req.ConversationHistory,
		Auth:           &auth,
	}

	if !req.Stream {
		result, err := h.turns.HandleTurn(r.Context(), turnReq, func(conversation.Event) {})
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ChatResponse{
			ConversationID: conversationID.String(),
			Message:        result.Message,
			CollectedData:  result.Data,
			IsComplete:     result.IsComplete,
			InputHint:      result.Hint,
			Analysis:       result.Analysis,
		})
		return
	}

	w.Header().Set("X-Conversation-Id", conversationID.String())
	sse, err := NewSSEWriter(w)
	if err != nil {
		writeErrorStatus(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	_, err = h.turns.HandleTurn(r.Context(), turnReq, func(e conversation.Event) {
		sse.WriteEvent(e.Kind(), e) //nolint:errcheck
	})
	if err != nil {
		sse.WriteError(ErrorCode(err), err.Error())
	}
	sse.WriteDone()
}
