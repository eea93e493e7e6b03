package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hiremeplz/hiremeplz/internal/analysis"
	"github.com/hiremeplz/hiremeplz/internal/extract"
	"github.com/hiremeplz/hiremeplz/internal/llm"
	"github.com/hiremeplz/hiremeplz/internal/metrics"
	"github.com/hiremeplz/hiremeplz/internal/onboarding"
	"github.com/hiremeplz/hiremeplz/internal/prompts"
	"github.com/hiremeplz/hiremeplz/internal/scrape"
	"github.com/hiremeplz/hiremeplz/internal/types"
	"github.com/hiremeplz/hiremeplz/pkg/logger"
)

// UpstreamError marks a turn failure caused by an external collaborator
// (the model, the scraper) rather than this service.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Orchestrator drives one conversation turn at a time. State commits only
// after the whole turn succeeds; a failed or cancelled turn leaves the
// stored conversation exactly as it was.
type Orchestrator struct {
	llm      llm.Client
	scraper  scrape.Client
	analysis *analysis.Runner
	store    Store
	locks    *turnLocks
	log      logger.Logger
	metrics  *metrics.Manager

	// Polling bounds for the import bridge; tests shorten these.
	PollInterval time.Duration
	MaxPolls     int
}

// New builds an Orchestrator with production polling bounds.
func New(llmClient llm.Client, scraper scrape.Client, runner *analysis.Runner, store Store, log logger.Logger, m *metrics.Manager) *Orchestrator {
	return &Orchestrator{
		llm:          llmClient,
		scraper:      scraper,
		analysis:     runner,
		store:        store,
		locks:        newTurnLocks(),
		log:          log.Named("conversation"),
		metrics:      m,
		PollInterval: scrape.PollInterval,
		MaxPolls:     scrape.MaxPolls,
	}
}

// TurnRequest is one user message addressed to a conversation. Clients that
// carry their own onboarding state send Data and History with every turn;
// when present they are authoritative over whatever the store holds, so a
// turn never depends on this process having seen the conversation before.
type TurnRequest struct {
	ConversationID uuid.UUID
	UserName       string
	Message        string
	Data           *types.CollectedData
	History        []types.ChatMessage
	Auth           *types.AuthContext
}

// TurnResult is the authoritative outcome of a successful turn, mirroring
// the final stream event.
type TurnResult struct {
	Message    string
	Data       types.CollectedData
	IsComplete bool
	Hint       onboarding.InputHint
	Analysis   *types.ProfileAnalysis
}

// HandleTurn runs one turn end to end, emitting stream events as it goes.
// Concurrent turns on the same conversation fail fast with
// ErrTurnInProgress.
func (o *Orchestrator) HandleTurn(ctx context.Context, req TurnRequest, emit EmitFunc) (*TurnResult, error) {
	release, err := o.locks.acquire(req.ConversationID)
	if err != nil {
		return nil, err
	}
	defer release()

	start := time.Now()

	st, err := o.store.Load(ctx, req.ConversationID)
	if errors.Is(err, ErrNotFound) {
		st = State{ID: req.ConversationID}
	} else if err != nil {
		return nil, err
	}
	if req.UserName != "" {
		st.UserName = req.UserName
	}
	if req.Data != nil {
		st.Data = *req.Data
	}
	if len(req.History) > 0 {
		st.History = append([]types.ChatMessage(nil), req.History...)
	}

	var reply string
	if len(st.History) == 0 {
		reply, err = o.stream(ctx, emit, prompts.Orientation(st.UserName), llm.TierStandard)
	} else {
		reply, err = o.answer(ctx, emit, &st, req.Message)
	}
	if err != nil {
		return nil, err
	}

	st.History = append(st.History,
		types.ChatMessage{Role: types.RoleUser, Content: req.Message},
		types.ChatMessage{Role: types.RoleAssistant, Content: reply},
	)

	complete := onboarding.IsComplete(st.Data)
	var analysisResult *types.ProfileAnalysis
	if complete && !st.Analyzed {
		a, runErr := o.analysis.Run(ctx, analysisEvents{emit}, st.Data, req.Auth, &st.ID)
		if runErr != nil {
			o.observeAnalysis("error", 0)
			return nil, &UpstreamError{Op: "profile analysis", Err: runErr}
		}
		o.observeAnalysis("ok", a.OverallScore)
		st.Analyzed = true
		analysisResult = a
	}

	if err := o.store.Save(ctx, st); err != nil {
		return nil, fmt.Errorf("failed to save conversation: %w", err)
	}

	hint := onboarding.InputHint{Kind: onboarding.HintText}
	if next, ok := onboarding.NextField(st.Data); ok {
		hint = onboarding.HintFor(next)
	}

	emit(FinalEvent{
		Type:          "final",
		Message:       reply,
		CollectedData: st.Data,
		IsComplete:    complete,
		InputHint:     hint,
	})

	if o.metrics != nil {
		o.metrics.ObserveTurn(time.Since(start))
	}
	o.log.Info(ctx, "turn handled",
		logger.String("conversation", st.ID.String()),
		logger.Bool("complete", complete))

	return &TurnResult{
		Message:    reply,
		Data:       st.Data,
		IsComplete: complete,
		Hint:       hint,
		Analysis:   analysisResult,
	}, nil
}

// answer handles a non-orientation turn: record skips, run extraction,
// branch into the import bridge when a LinkedIn URL arrives, otherwise ask
// the dialogue model for the next elicitation.
func (o *Orchestrator) answer(ctx context.Context, emit EmitFunc, st *State, message string) (string, error) {
	if next, ok := onboarding.NextField(st.Data); ok && extract.IsSkipCue(message) {
		st.Data = onboarding.MarkSkipped(st.Data, next)
	}
	st.Data = onboarding.Apply(st.Data, message)

	if url, ok := extract.LinkedInURL(message); ok && !st.Imported {
		return o.runImport(ctx, emit, st, url)
	}

	status := onboarding.BuildStatus(st.Data)
	prompt := prompts.ConversationTurn(st.UserName, status, st.History, message)
	return o.stream(ctx, emit, prompt, llm.TierStandard)
}

// runImport executes the LinkedIn bridge: acknowledge, start the job, poll
// to a terminal status, then either fold the profile in and summarize it or
// apologize and fall back to manual entry.
func (o *Orchestrator) runImport(ctx context.Context, emit EmitFunc, st *State, url string) (string, error) {
	ack, err := o.stream(ctx, emit, prompts.ImportAck(st.UserName), llm.TierLite)
	if err != nil {
		return "", err
	}

	emit(newToolCall("linkedin_scrape", "started"))

	jobID, err := o.scraper.StartImport(ctx, url)
	if err != nil {
		emit(newToolCall("linkedin_scrape", "failed"))
		return "", &UpstreamError{Op: "start LinkedIn import", Err: err}
	}

	awaiter := &scrape.Awaiter{
		Client:   o.scraper,
		Interval: o.PollInterval,
		MaxPolls: o.MaxPolls,
		OnTick:   func(elapsed int) { emit(newToolStatus(elapsed)) },
	}
	result, err := awaiter.Await(ctx, jobID)
	if err != nil {
		emit(newToolCall("linkedin_scrape", "failed"))
		return "", &UpstreamError{Op: "poll LinkedIn import", Err: err}
	}
	if o.metrics != nil {
		o.metrics.ObserveImport(result.Status)
	}

	if result.Status != scrape.StatusCompleted {
		emit(newToolCall("linkedin_scrape", "failed"))
		o.log.Warn(ctx, "linkedin import failed",
			logger.String("conversation", st.ID.String()),
			logger.String("reason", result.Error))

		status := onboarding.BuildStatus(st.Data)
		emit(newText("\n\n"))
		apology, err := o.stream(ctx, emit, prompts.ImportFailed(st.UserName, status, result.Error), llm.TierLite)
		if err != nil {
			return "", err
		}
		return ack + "\n\n" + apology, nil
	}

	emit(newToolCall("linkedin_scrape", "completed"))
	st.Data = scrape.MergeProfile(st.Data, result.Profile, url)
	st.Imported = true

	profileJSON, err := json.MarshalIndent(result.Profile, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode imported profile: %w", err)
	}

	status := onboarding.BuildStatus(st.Data)
	emit(newText("\n\n"))
	summary, err := o.stream(ctx, emit, prompts.ImportSummary(st.UserName, status, string(profileJSON)), llm.TierLite)
	if err != nil {
		return "", err
	}
	return ack + "\n\n" + summary, nil
}

// stream runs one model pass, forwarding chunks as text events and
// returning the assembled reply.
func (o *Orchestrator) stream(ctx context.Context, emit EmitFunc, prompt string, tier llm.ModelTier) (string, error) {
	ch, err := o.llm.GenerateStream(ctx, prompt, tier)
	if err != nil {
		return "", &UpstreamError{Op: "generate reply", Err: err}
	}

	var b strings.Builder
	for chunk := range ch {
		if chunk.Err != nil {
			return "", &UpstreamError{Op: "generate reply", Err: chunk.Err}
		}
		b.WriteString(chunk.Text)
		emit(newText(chunk.Text))
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (o *Orchestrator) observeAnalysis(outcome string, score int) {
	if o.metrics != nil {
		o.metrics.ObserveAnalysis(outcome, score)
	}
}

// analysisEvents adapts the scorer's progress callbacks onto the stream.
type analysisEvents struct {
	emit EmitFunc
}

// AnalysisEvents wraps an emit function as the scorer's event sink, so the
// analysis can stream outside a conversation turn.
func AnalysisEvents(emit EmitFunc) analysis.Events {
	return analysisEvents{emit: emit}
}

func (a analysisEvents) AnalysisStarted() {
	a.emit(AnalysisStartedEvent{Type: "analysis_started"})
}

func (a analysisEvents) ReasoningStarted() {
	a.emit(ReasoningStartedEvent{Type: "reasoning_started"})
}

func (a analysisEvents) ReasoningChunk(content string) {
	a.emit(ReasoningChunkEvent{Type: "reasoning_chunk", Content: content})
}

func (a analysisEvents) ReasoningEvaluating() {
	a.emit(ReasoningEvaluatingEvent{Type: "reasoning_evaluating"})
}

func (a analysisEvents) ReasoningCompleted(durationSeconds int) {
	a.emit(ReasoningCompletedEvent{Type: "reasoning_completed", Duration: durationSeconds})
}

func (a analysisEvents) Result(result types.ProfileAnalysis) {
	a.emit(ProfileAnalysisEvent{Type: "profile_analysis", ProfileAnalysis: result})
}
