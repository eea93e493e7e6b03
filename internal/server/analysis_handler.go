package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/hiremeplz/hiremeplz/internal/analysis"
	"github.com/hiremeplz/hiremeplz/internal/conversation"
	"github.com/hiremeplz/hiremeplz/internal/server/middleware"
	"github.com/hiremeplz/hiremeplz/internal/types"
)

// AnalysisRunner re-scores a stored profile. *analysis.Runner satisfies it.
type AnalysisRunner interface {
	Run(ctx context.Context, events analysis.Events, data types.CollectedData, auth *types.AuthContext, conversationID *uuid.UUID) (*types.ProfileAnalysis, error)
}

// AnalysisHandler serves on-demand re-analysis of a persisted profile.
type AnalysisHandler struct {
	profiles ProfileStore
	runner   AnalysisRunner
}

// NewAnalysisHandler creates an AnalysisHandler.
func NewAnalysisHandler(profiles ProfileStore, runner AnalysisRunner) *AnalysisHandler {
	return &AnalysisHandler{profiles: profiles, runner: runner}
}

// Refresh handles POST /v1/profile/analysis/refresh. The stored collected
// data is re-scored and the reasoning progress streams as SSE, ending with
// a profile_analysis event and [DONE].
func (h *AnalysisHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	auth, err := middleware.GetAuth(r)
	if err != nil {
		writeErrorStatus(w, http.StatusUnauthorized, "unauthorized", "missing auth context")
		return
	}

	profile, err := h.profiles.GetProfile(r.Context(), auth)
	if err != nil {
		writeError(w, err)
		return
	}
	if profile == nil {
		writeErrorStatus(w, http.StatusNotFound, "profile_not_found", "complete onboarding before requesting an analysis")
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		writeErrorStatus(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	events := conversation.AnalysisEvents(func(e conversation.Event) {
		sse.WriteEvent(e.Kind(), e) //nolint:errcheck
	})
	if _, err := h.runner.Run(r.Context(), events, profile.Collected, &auth, profile.ConversationID); err != nil {
		sse.WriteError("upstream_error", err.Error())
	}
	sse.WriteDone()
}
