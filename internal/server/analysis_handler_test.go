package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiremeplz/hiremeplz/internal/analysis"
	"github.com/hiremeplz/hiremeplz/internal/db"
	"github.com/hiremeplz/hiremeplz/internal/server/middleware"
	"github.com/hiremeplz/hiremeplz/internal/types"
)

// dbProfileFixture is a persisted profile for refresh tests.
var dbProfileFixture = db.Profile{
	Collected: types.CollectedData{
		FullName: types.Filled("Ada Lovelace"),
		Skills:   types.Filled([]types.Skill{{Name: "Python"}}),
	},
}

// stubRunner replays scorer events and a fixed result.
type stubRunner struct {
	result *types.ProfileAnalysis
	err    error
}

func (s *stubRunner) Run(_ context.Context, events analysis.Events, _ types.CollectedData, _ *types.AuthContext, _ *uuid.UUID) (*types.ProfileAnalysis, error) {
	events.AnalysisStarted()
	if s.err != nil {
		return nil, s.err
	}
	events.ReasoningStarted()
	events.ReasoningChunk("Evaluating skills coverage.")
	events.ReasoningEvaluating()
	events.ReasoningCompleted(2)
	events.Result(*s.result)
	return s.result, nil
}

func refreshRequest(auth types.AuthContext) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/v1/profile/analysis/refresh", nil)
	return req.WithContext(middleware.WithAuth(req.Context(), auth))
}

func TestRefreshStreamsAnalysis(t *testing.T) {
	profiles := &stubProfiles{profile: &dbProfileFixture}
	runner := &stubRunner{result: &types.ProfileAnalysis{ID: uuid.NewString(), OverallScore: 68}}
	handler := NewAnalysisHandler(profiles, runner)
	auth := types.AuthContext{UserID: uuid.New(), TeamID: uuid.New(), Role: types.RoleOwner}

	rec := httptest.NewRecorder()
	handler.Refresh(rec, refreshRequest(auth))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	events := parseSSE(t, rec.Body.String())
	var kinds []string
	for _, e := range events[:len(events)-1] {
		kinds = append(kinds, e[0])
	}
	assert.Equal(t, []string{
		"analysis_started",
		"reasoning_started",
		"reasoning_chunk",
		"reasoning_evaluating",
		"reasoning_completed",
		"profile_analysis",
	}, kinds)
	assert.Equal(t, "[DONE]", events[len(events)-1][1])

	var result types.ProfileAnalysis
	require.NoError(t, json.Unmarshal([]byte(events[len(events)-2][1]), &result))
	assert.Equal(t, 68, result.OverallScore)
}

func TestRefreshWithoutProfile(t *testing.T) {
	handler := NewAnalysisHandler(&stubProfiles{}, &stubRunner{})
	auth := types.AuthContext{UserID: uuid.New(), TeamID: uuid.New(), Role: types.RoleOwner}

	rec := httptest.NewRecorder()
	handler.Refresh(rec, refreshRequest(auth))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "profile_not_found", decodeErrorCode(t, rec))
}

func TestRefreshUpstreamFailure(t *testing.T) {
	profiles := &stubProfiles{profile: &dbProfileFixture}
	handler := NewAnalysisHandler(profiles, &stubRunner{err: errors.New("model unavailable")})
	auth := types.AuthContext{UserID: uuid.New(), TeamID: uuid.New(), Role: types.RoleOwner}

	rec := httptest.NewRecorder()
	handler.Refresh(rec, refreshRequest(auth))

	events := parseSSE(t, rec.Body.String())
	require.GreaterOrEqual(t, len(events), 3)
	assert.Equal(t, "analysis_started", events[0][0])
	assert.Equal(t, "error", events[1][0])
	assert.Equal(t, "[DONE]", events[len(events)-1][1])
}

func TestRefreshRequiresAuth(t *testing.T) {
	handler := NewAnalysisHandler(&stubProfiles{}, &stubRunner{})

	req := httptest.NewRequest(http.MethodPost, "/v1/profile/analysis/refresh", nil)
	rec := httptest.NewRecorder()
	handler.Refresh(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
