package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hiremeplz/hiremeplz/internal/types"
)

// Profile is the stored profile row for one user within a team.
type Profile struct {
	UserID                uuid.UUID           `json:"user_id"`
	TeamID                uuid.UUID           `json:"team_id"`
	DisplayName           *string             `json:"display_name"`
	Headline              *string             `json:"headline"`
	About                 *string             `json:"about"`
	TeamMode              *string             `json:"team_mode"`
	ExperienceLevel       *string             `json:"experience_level"`
	LinkedInURL           *string             `json:"linkedin_url"`
	Collected             types.CollectedData `json:"collected_data"`
	ConversationID        *uuid.UUID          `json:"conversation_id"`
	OnboardingCompletedAt *time.Time          `json:"onboarding_completed_at"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`
}

// GetProfile retrieves the profile for the authenticated user. Returns
// nil, nil when onboarding has never been persisted.
func (db *DB) GetProfile(ctx context.Context, auth types.AuthContext) (*Profile, error) {
	var (
		p        Profile
		dataJSON []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, team_id, display_name, headline, about, team_mode,
		        experience_level, linkedin_url, collected_data, conversation_id,
		        onboarding_completed_at, created_at, updated_at
		 FROM profiles WHERE user_id = $1 AND team_id = $2`,
		auth.UserID, auth.TeamID,
	).Scan(&p.UserID, &p.TeamID, &p.DisplayName, &p.Headline, &p.About,
		&p.TeamMode, &p.ExperienceLevel, &p.LinkedInURL, &dataJSON,
		&p.ConversationID, &p.OnboardingCompletedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if err := json.Unmarshal(dataJSON, &p.Collected); err != nil {
		return nil, fmt.Errorf("failed to decode collected data: %w", err)
	}
	return &p, nil
}

// LatestAnalysis retrieves the most recent analysis for the authenticated
// user. Returns nil, nil when none has been recorded.
func (db *DB) LatestAnalysis(ctx context.Context, auth types.AuthContext) (*types.ProfileAnalysis, error) {
	var (
		a            types.ProfileAnalysis
		id           uuid.UUID
		categories   []byte
		strengths    []byte
		improvements []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, overall_score, categories, strengths, improvements,
		        detailed_feedback, created_at
		 FROM profile_analyses
		 WHERE user_id = $1 AND team_id = $2
		 ORDER BY created_at DESC LIMIT 1`,
		auth.UserID, auth.TeamID,
	).Scan(&id, &a.OverallScore, &categories, &strengths, &improvements,
		&a.DetailedFeedback, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest analysis: %w", err)
	}

	a.ID = id.String()
	if err := json.Unmarshal(categories, &a.Categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	if err := json.Unmarshal(strengths, &a.Strengths); err != nil {
		return nil, fmt.Errorf("failed to decode strengths: %w", err)
	}
	if err := json.Unmarshal(improvements, &a.Improvements); err != nil {
		return nil, fmt.Errorf("failed to decode improvements: %w", err)
	}
	return &a, nil
}

// CountAnalyses returns the number of analysis rows for the authenticated
// user.
func (db *DB) CountAnalyses(ctx context.Context, auth types.AuthContext) (int, error) {
	var n int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM profile_analyses WHERE user_id = $1 AND team_id = $2`,
		auth.UserID, auth.TeamID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count analyses: %w", err)
	}
	return n, nil
}
