package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiremeplz/hiremeplz/internal/config"
	"github.com/hiremeplz/hiremeplz/internal/db"
	"github.com/hiremeplz/hiremeplz/internal/server/middleware"
	"github.com/hiremeplz/hiremeplz/internal/types"
)

// stubProfiles serves a single canned profile and analysis.
type stubProfiles struct {
	profile  *db.Profile
	analysis *types.ProfileAnalysis
}

func (s *stubProfiles) GetProfile(context.Context, types.AuthContext) (*db.Profile, error) {
	return s.profile, nil
}

func (s *stubProfiles) LatestAnalysis(context.Context, types.AuthContext) (*types.ProfileAnalysis, error) {
	return s.analysis, nil
}

func newTestMeHandler(profiles ProfileStore) (*MeHandler, types.AuthContext) {
	store := newMemUserStore()
	user, _ := store.CreateUser(context.Background(), "Ada", "ada@example.com", "irrelevant")
	users := NewUserService(store, &config.PasswordConfig{BcryptCost: 10})
	auth := types.AuthContext{UserID: user.ID, TeamID: user.TeamID, Role: user.Role}
	return NewMeHandler(users, profiles), auth
}

func getMe(t *testing.T, handler *MeHandler, auth types.AuthContext) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req = req.WithContext(middleware.WithAuth(req.Context(), auth))
	rec := httptest.NewRecorder()
	handler.Me(rec, req)
	return rec
}

func TestMeBeforeOnboarding(t *testing.T) {
	handler, auth := newTestMeHandler(&stubProfiles{})

	rec := getMe(t, handler, auth)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp MeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.Nil(t, resp.Profile)
	assert.Nil(t, resp.LatestAnalysis)
}

func TestMeAfterOnboarding(t *testing.T) {
	headline := "Senior Python Developer"
	teamMode := "solo"
	completed := time.Now().UTC().Truncate(time.Second)
	profiles := &stubProfiles{
		profile: &db.Profile{
			Headline: &headline,
			TeamMode: &teamMode,
			Collected: types.CollectedData{
				FullName: types.Filled("Ada Lovelace"),
				Skills:   types.Filled([]types.Skill{{Name: "Python"}}),
			},
			OnboardingCompletedAt: &completed,
		},
		analysis: &types.ProfileAnalysis{OverallScore: 72},
	}
	handler, auth := newTestMeHandler(profiles)

	rec := getMe(t, handler, auth)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp MeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Profile)
	assert.Equal(t, "Senior Python Developer", *resp.Profile.Headline)
	assert.Equal(t, "solo", *resp.Profile.TeamMode)
	require.NotNil(t, resp.Profile.CompletedAt)
	require.NotNil(t, resp.LatestAnalysis)
	assert.Equal(t, 72, resp.LatestAnalysis.OverallScore)
}

func TestMeRequiresAuth(t *testing.T) {
	handler, _ := newTestMeHandler(&stubProfiles{})

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	rec := httptest.NewRecorder()
	handler.Me(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
