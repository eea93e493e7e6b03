package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hiremeplz/hiremeplz/internal/types"
)

// SaveOnboarding persists a completed onboarding in one transaction: the
// profile row is upserted, the skill/experience/education rows are replaced
// wholesale, preferences are upserted, and the analysis is appended. Running
// it twice for the same user leaves one profile and one extra analysis row.
func (db *DB) SaveOnboarding(ctx context.Context, auth types.AuthContext, data types.CollectedData, analysis types.ProfileAnalysis, headline, about string, conversationID *uuid.UUID) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	dataJSON, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal collected data: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO profiles (user_id, team_id, display_name, headline, about,
		                       team_mode, experience_level, linkedin_url,
		                       collected_data, conversation_id, onboarding_completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		 ON CONFLICT (user_id, team_id) DO UPDATE SET
		   display_name = $3, headline = $4, about = $5, team_mode = $6,
		   experience_level = $7, linkedin_url = $8, collected_data = $9,
		   conversation_id = $10, onboarding_completed_at = NOW(),
		   updated_at = NOW()`,
		auth.UserID, auth.TeamID,
		nullable(data.FullName.OrZero()),
		nullable(headline),
		nullable(about),
		nullable(string(data.TeamMode.OrZero())),
		nullable(string(data.ExperienceLevel.OrZero())),
		nullable(data.LinkedInURL.OrZero()),
		dataJSON, conversationID,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	if err := replaceSkills(ctx, tx, auth, data.Skills.OrZero()); err != nil {
		return err
	}
	if err := replaceExperiences(ctx, tx, auth, data.Experiences.OrZero()); err != nil {
		return err
	}
	if err := replaceEducations(ctx, tx, auth, data.Educations.OrZero()); err != nil {
		return err
	}

	engagements, err := json.Marshal(data.EngagementTypes.OrZero())
	if err != nil {
		return fmt.Errorf("failed to marshal engagement types: %w", err)
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO user_preferences (user_id, team_id, hourly_min, hourly_max,
		                               currency, engagement_types, remote_only)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id, team_id) DO UPDATE SET
		   hourly_min = $3, hourly_max = $4, currency = $5,
		   engagement_types = $6, remote_only = $7, updated_at = NOW()`,
		auth.UserID, auth.TeamID,
		nullableFloat(data.HourlyMin),
		nullableFloat(data.HourlyMax),
		nullable(string(data.Currency.OrZero())),
		engagements,
		nullableBool(data.RemoteOnly),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert preferences: %w", err)
	}

	if err := insertAnalysis(ctx, tx, auth, analysis, conversationID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit onboarding: %w", err)
	}
	return nil
}

func replaceSkills(ctx context.Context, tx pgx.Tx, auth types.AuthContext, skills []types.Skill) error {
	if _, err := tx.Exec(ctx,
		`DELETE FROM user_skills WHERE user_id = $1 AND team_id = $2`,
		auth.UserID, auth.TeamID); err != nil {
		return fmt.Errorf("failed to clear skills: %w", err)
	}
	for i, s := range skills {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_skills (user_id, team_id, name, position)
			 VALUES ($1, $2, $3, $4)`,
			auth.UserID, auth.TeamID, s.Name, i); err != nil {
			return fmt.Errorf("failed to insert skill: %w", err)
		}
	}
	return nil
}

func replaceExperiences(ctx context.Context, tx pgx.Tx, auth types.AuthContext, exps []types.Experience) error {
	if _, err := tx.Exec(ctx,
		`DELETE FROM user_experiences WHERE user_id = $1 AND team_id = $2`,
		auth.UserID, auth.TeamID); err != nil {
		return fmt.Errorf("failed to clear experiences: %w", err)
	}
	for i, e := range exps {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_experiences (user_id, team_id, title, company,
			                               start_date, end_date, highlights, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			auth.UserID, auth.TeamID, e.Title, e.Company,
			e.StartDate, e.EndDate, e.Highlights, i); err != nil {
			return fmt.Errorf("failed to insert experience: %w", err)
		}
	}
	return nil
}

func replaceEducations(ctx context.Context, tx pgx.Tx, auth types.AuthContext, edus []types.Education) error {
	if _, err := tx.Exec(ctx,
		`DELETE FROM user_educations WHERE user_id = $1 AND team_id = $2`,
		auth.UserID, auth.TeamID); err != nil {
		return fmt.Errorf("failed to clear educations: %w", err)
	}
	for i, e := range edus {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_educations (user_id, team_id, school, degree,
			                              field, start_year, end_year, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			auth.UserID, auth.TeamID, e.School, e.Degree,
			e.Field, e.StartYear, e.EndYear, i); err != nil {
			return fmt.Errorf("failed to insert education: %w", err)
		}
	}
	return nil
}

func insertAnalysis(ctx context.Context, tx pgx.Tx, auth types.AuthContext, analysis types.ProfileAnalysis, conversationID *uuid.UUID) error {
	id, err := uuid.Parse(analysis.ID)
	if err != nil {
		id = uuid.New()
	}

	categories, err := json.Marshal(analysis.Categories)
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}
	strengths, err := json.Marshal(analysis.Strengths)
	if err != nil {
		return fmt.Errorf("failed to marshal strengths: %w", err)
	}
	improvements, err := json.Marshal(analysis.Improvements)
	if err != nil {
		return fmt.Errorf("failed to marshal improvements: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO profile_analyses (id, user_id, team_id, conversation_id,
		                               overall_score, categories, strengths,
		                               improvements, detailed_feedback, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, auth.UserID, auth.TeamID, conversationID,
		analysis.OverallScore, categories, strengths, improvements,
		analysis.DetailedFeedback, analysis.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}
	return nil
}

// nullable maps empty strings to SQL NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullableFloat(f types.Field[float64]) *float64 {
	v, ok := f.Value()
	if !ok {
		return nil
	}
	return &v
}

func nullableBool(f types.Field[bool]) *bool {
	v, ok := f.Value()
	if !ok {
		return nil
	}
	return &v
}
