package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hiremeplz/hiremeplz/internal/db"
	"github.com/hiremeplz/hiremeplz/internal/server/middleware"
	"github.com/hiremeplz/hiremeplz/internal/types"
)

// ProfileStore reads persisted onboarding results. *db.DB satisfies it.
type ProfileStore interface {
	GetProfile(ctx context.Context, auth types.AuthContext) (*db.Profile, error)
	LatestAnalysis(ctx context.Context, auth types.AuthContext) (*types.ProfileAnalysis, error)
}

// MeProfile is the profile portion of the GET /v1/me response.
type MeProfile struct {
	DisplayName     *string              `json:"displayName"`
	Headline        *string              `json:"headline"`
	About           *string              `json:"about"`
	TeamMode        *string              `json:"teamMode"`
	ExperienceLevel *string              `json:"experienceLevel"`
	LinkedInURL     *string              `json:"linkedinUrl"`
	CollectedData   *types.CollectedData `json:"collectedData"`
	CompletedAt     *time.Time           `json:"completedAt"`
}

// MeResponse is the body of GET /v1/me.
type MeResponse struct {
	User           *types.User            `json:"user"`
	Profile        *MeProfile             `json:"profile"`
	LatestAnalysis *types.ProfileAnalysis `json:"latestAnalysis"`
}

// MeHandler serves the authenticated account snapshot.
type MeHandler struct {
	users    *UserService
	profiles ProfileStore
}

// NewMeHandler creates a MeHandler.
func NewMeHandler(users *UserService, profiles ProfileStore) *MeHandler {
	return &MeHandler{users: users, profiles: profiles}
}

// Me handles GET /v1/me. A user who has not finished onboarding gets a nil
// profile and nil latestAnalysis rather than an error.
func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	auth, err := middleware.GetAuth(r)
	if err != nil {
		writeErrorStatus(w, http.StatusUnauthorized, "unauthorized", "missing auth context")
		return
	}

	user, err := h.users.Get(r.Context(), auth.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := MeResponse{User: user}

	profile, err := h.profiles.GetProfile(r.Context(), auth)
	if err != nil {
		writeError(w, err)
		return
	}
	if profile != nil {
		resp.Profile = &MeProfile{
			DisplayName:     profile.DisplayName,
			Headline:        profile.Headline,
			About:           profile.About,
			TeamMode:        profile.TeamMode,
			ExperienceLevel: profile.ExperienceLevel,
			LinkedInURL:     profile.LinkedInURL,
			CollectedData:   &profile.Collected,
			CompletedAt:     profile.OnboardingCompletedAt,
		}
		analysis, err := h.profiles.LatestAnalysis(r.Context(), auth)
		if err != nil {
			writeError(w, err)
			return
		}
		resp.LatestAnalysis = analysis
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
