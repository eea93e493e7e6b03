package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hiremeplz/hiremeplz/internal/llm"
	"github.com/hiremeplz/hiremeplz/internal/prompts"
	"github.com/hiremeplz/hiremeplz/internal/schemas"
	"github.com/hiremeplz/hiremeplz/internal/types"
	"github.com/hiremeplz/hiremeplz/pkg/logger"
)

// Events receives the scorer's progress as it runs. Implementations fan the
// calls out to SSE or discard them.
type Events interface {
	AnalysisStarted()
	ReasoningStarted()
	ReasoningChunk(content string)
	ReasoningEvaluating()
	ReasoningCompleted(durationSeconds int)
	Result(analysis types.ProfileAnalysis)
}

// Store persists a completed onboarding with its analysis.
type Store interface {
	SaveOnboarding(ctx context.Context, auth types.AuthContext, data types.CollectedData, analysis types.ProfileAnalysis, headline, about string, conversationID *uuid.UUID) error
}

// Runner executes the profile analysis end to end.
type Runner struct {
	llm   llm.Client
	store Store
	log   logger.Logger
	now   func() time.Time
}

// NewRunner builds a Runner. store may be nil for anonymous runs, in which
// case nothing is persisted.
func NewRunner(client llm.Client, store Store, log logger.Logger) *Runner {
	return &Runner{llm: client, store: store, log: log.Named("analysis"), now: time.Now}
}

// Run cleans the dossier, streams the scorer, validates its output, emits
// the result, and persists it for authenticated runs. Persistence failures
// are logged, never surfaced: the user already has their analysis.
func (r *Runner) Run(ctx context.Context, events Events, data types.CollectedData, auth *types.AuthContext, conversationID *uuid.UUID) (*types.ProfileAnalysis, error) {
	events.AnalysisStarted()

	cleaned := CleanForAnalysis(data)
	profileJSON, err := json.MarshalIndent(cleaned, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile for analysis: %w", err)
	}
	prompt := prompts.Analysis(string(profileJSON))

	start := r.now()
	events.ReasoningStarted()

	analysis, err := r.generate(ctx, events, prompt, true)
	if err != nil {
		var violation ScopeViolation
		if !errors.As(err, &violation) {
			return nil, err
		}
		// The guardrail tripped. The instructions are the primary control;
		// retry once and accept the second answer as-is.
		r.log.Warn(ctx, "scope guardrail tripped, retrying without it",
			logger.String("field", violation.Field),
			logger.String("term", violation.Term))
		analysis, err = r.generate(ctx, events, prompt, false)
		if err != nil {
			return nil, err
		}
	}

	events.ReasoningCompleted(int(r.now().Sub(start).Round(time.Second).Seconds()))

	analysis.ID = uuid.NewString()
	analysis.CreatedAt = r.now().UTC()
	events.Result(*analysis)

	if r.store != nil && auth != nil {
		headline := GenerateHeadline(data)
		about := GenerateAbout(data)
		if err := r.store.SaveOnboarding(ctx, *auth, data, *analysis, headline, about, conversationID); err != nil {
			r.log.Error(ctx, "failed to persist onboarding data", logger.Error(err))
		}
	}

	return analysis, nil
}

// generate streams one scorer pass and parses the result. With guarded set,
// the scope check runs on the parsed output.
func (r *Runner) generate(ctx context.Context, events Events, prompt string, guarded bool) (*types.ProfileAnalysis, error) {
	stream, err := r.llm.GenerateStream(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, fmt.Errorf("failed to start analysis stream: %w", err)
	}

	var raw strings.Builder
	for chunk := range stream {
		if chunk.Err != nil {
			return nil, chunk.Err
		}
		raw.WriteString(chunk.Text)
		events.ReasoningChunk(chunk.Text)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	events.ReasoningEvaluating()

	content := llm.CleanJSONBlock(raw.String())
	if err := schemas.ValidateProfileAnalysis(content); err != nil {
		return nil, fmt.Errorf("analysis output failed validation: %w", err)
	}

	var analysis types.ProfileAnalysis
	if err := json.Unmarshal([]byte(content), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse analysis output: %w", err)
	}

	if guarded {
		if err := CheckScope(analysis.Strengths, analysis.Improvements, analysis.DetailedFeedback); err != nil {
			return nil, err
		}
	}

	return &analysis, nil
}
