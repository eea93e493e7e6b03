package conversation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiremeplz/hiremeplz/internal/analysis"
	"github.com/hiremeplz/hiremeplz/internal/llm"
	"github.com/hiremeplz/hiremeplz/internal/metrics"
	"github.com/hiremeplz/hiremeplz/internal/onboarding"
	"github.com/hiremeplz/hiremeplz/internal/scrape"
	"github.com/hiremeplz/hiremeplz/internal/types"
	"github.com/hiremeplz/hiremeplz/pkg/logger"
)

const analysisJSON = `{
  "overallScore": 42,
  "categories": {
    "skillsBreadth": 40,
    "experienceQuality": 30,
    "ratePositioning": 55,
    "marketReadiness": 38
  },
  "strengths": ["Coherent backend stack"],
  "improvements": ["Experience entries lack impact metrics"],
  "detailedFeedback": "## The Bottom Line\nThin profile, honest rate."
}`

type stubScraper struct {
	mu       sync.Mutex
	jobID    string
	startErr error
	statuses []scrape.JobStatus
	polls    int
}

func (s *stubScraper) StartImport(_ context.Context, _ string) (string, error) {
	if s.startErr != nil {
		return "", s.startErr
	}
	return s.jobID, nil
}

func (s *stubScraper) PollImport(_ context.Context, _ string) (scrape.JobStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.polls
	if i >= len(s.statuses) {
		i = len(s.statuses) - 1
	}
	s.polls++
	return s.statuses[i], nil
}

type eventRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *eventRecorder) emit(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind()
	}
	return out
}

func (r *eventRecorder) count(kind string) int {
	n := 0
	for _, k := range r.kinds() {
		if k == kind {
			n++
		}
	}
	return n
}

func newTestOrchestrator(client llm.Client, scraper scrape.Client) *Orchestrator {
	runner := analysis.NewRunner(client, nil, logger.Nop())
	o := New(client, scraper, runner, NewMemoryStore(), logger.Nop(), metrics.NewManager())
	o.PollInterval = time.Millisecond
	o.MaxPolls = 3
	return o
}

func seededState(t *testing.T, store Store, name string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	err := store.Save(context.Background(), State{
		ID:       id,
		UserName: name,
		History: []types.ChatMessage{
			{Role: types.RoleUser, Content: "Hi"},
			{Role: types.RoleAssistant, Content: "Welcome! Do you freelance solo or with a team?"},
		},
	})
	require.NoError(t, err)
	return id
}

func TestHandleTurnOrientation(t *testing.T) {
	client := &llm.StubClient{StreamResponses: [][]string{{"Welcome ", "Ada!"}}}
	o := newTestOrchestrator(client, &stubScraper{})
	rec := &eventRecorder{}

	res, err := o.HandleTurn(context.Background(), TurnRequest{
		ConversationID: uuid.New(),
		UserName:       "Ada",
		Message:        "Hi",
	}, rec.emit)

	require.NoError(t, err)
	assert.Equal(t, "Welcome Ada!", res.Message)
	assert.False(t, res.IsComplete)
	assert.Equal(t, onboarding.HintChoice, res.Hint.Kind)
	assert.Equal(t, []string{"text", "text", "final"}, rec.kinds())

	final := rec.events[2].(FinalEvent)
	assert.Equal(t, "Welcome Ada!", final.Message)
	assert.False(t, final.IsComplete)
}

func TestHandleTurnClientSuppliedState(t *testing.T) {
	client := &llm.StubClient{StreamResponses: [][]string{{"Got it. What engagement types suit you?"}}}
	o := newTestOrchestrator(client, &stubScraper{})
	rec := &eventRecorder{}

	// The client carries its own state: this process has never seen the
	// conversation, yet the turn must pick up exactly where the data says.
	data := types.CollectedData{
		TeamMode:    types.Filled(types.TeamModeSolo),
		ProfilePath: types.Filled(types.PathManual),
	}
	history := []types.ChatMessage{
		{Role: types.RoleUser, Content: "I work solo"},
		{Role: types.RoleAssistant, Content: "Great. What is your hourly rate?"},
	}

	res, err := o.HandleTurn(context.Background(), TurnRequest{
		ConversationID: uuid.New(),
		UserName:       "Ada",
		Message:        "My rate is $50 to $70 per hour",
		Data:           &data,
		History:        history,
	}, rec.emit)

	require.NoError(t, err)
	assert.Equal(t, []string{"text", "final"}, rec.kinds(), "no orientation when history is supplied")

	mode, ok := res.Data.TeamMode.Value()
	require.True(t, ok, "supplied team mode survives the turn")
	assert.Equal(t, types.TeamModeSolo, mode)
	path, ok := res.Data.ProfilePath.Value()
	require.True(t, ok)
	assert.Equal(t, types.PathManual, path)

	min, ok := res.Data.HourlyMin.Value()
	require.True(t, ok, "extraction runs on top of supplied state")
	assert.Equal(t, 50.0, min)
	max, ok := res.Data.HourlyMax.Value()
	require.True(t, ok)
	assert.Equal(t, 70.0, max)

	assert.Equal(t, 0, o.locks.size(), "turn lock entry released")
}

func TestHandleTurnClientStateOverridesStored(t *testing.T) {
	client := &llm.StubClient{StreamResponses: [][]string{{"Noted."}}}
	o := newTestOrchestrator(client, &stubScraper{})
	id := seededState(t, o.store, "Ada")

	data := types.CollectedData{
		TeamMode:    types.Filled(types.TeamModeTeam),
		ProfilePath: types.Filled(types.PathManual),
	}
	res, err := o.HandleTurn(context.Background(), TurnRequest{
		ConversationID: id,
		Message:        "Just checking in",
		Data:           &data,
	}, func(Event) {})

	require.NoError(t, err)
	mode, ok := res.Data.TeamMode.Value()
	require.True(t, ok)
	assert.Equal(t, types.TeamModeTeam, mode, "supplied data wins over the stored blank state")
}

func TestHandleTurnManualPathEndToEnd(t *testing.T) {
	streams := make([][]string, 0, 10)
	for i := 0; i < 9; i++ {
		streams = append(streams, []string{"Noted, next question."})
	}
	streams = append(streams, []string{analysisJSON})

	client := &llm.StubClient{StreamResponses: streams}
	o := newTestOrchestrator(client, &stubScraper{})
	id := uuid.New()

	turns := []string{
		"Hi",
		"I work solo",
		"I'll enter everything manually",
		"I'm mid-level",
		"Python, SQL",
		"Developer at Acme Corp for 2 years",
		"BS in Computer Science from MIT",
		"My rate is $40-60 per hour",
		"Full-time and part-time, remote only please",
	}

	var last *TurnResult
	for i, msg := range turns {
		rec := &eventRecorder{}
		res, err := o.HandleTurn(context.Background(), TurnRequest{
			ConversationID: id,
			UserName:       "Ada",
			Message:        msg,
		}, rec.emit)
		require.NoError(t, err, "turn %d (%q)", i+1, msg)

		if i < len(turns)-1 {
			assert.False(t, res.IsComplete, "turn %d (%q) should not complete onboarding", i+1, msg)
			assert.Nil(t, res.Analysis, "turn %d", i+1)
		}
		last = res
	}

	require.True(t, last.IsComplete)
	require.NotNil(t, last.Analysis)
	assert.Equal(t, 42, last.Analysis.OverallScore)

	data := last.Data
	assert.Equal(t, types.TeamModeSolo, data.TeamMode.OrZero())
	assert.Equal(t, types.PathManual, data.ProfilePath.OrZero())
	assert.Equal(t, types.LevelMid, data.ExperienceLevel.OrZero())
	assert.Equal(t, 40.0, data.HourlyMin.OrZero())
	assert.Equal(t, 60.0, data.HourlyMax.OrZero())
	assert.Equal(t, types.CurrencyUSD, data.Currency.OrZero())
	assert.True(t, data.RemoteOnly.OrZero())
	assert.Len(t, data.EngagementTypes.OrZero(), 2)

	skills := data.Skills.OrZero()
	require.Len(t, skills, 2)
	assert.Equal(t, "Python", skills[0].Name)
	assert.Equal(t, "SQL", skills[1].Name)

	exps := data.Experiences.OrZero()
	require.Len(t, exps, 1)
	assert.Equal(t, "Developer", exps[0].Title)
	require.NotNil(t, exps[0].Company)
	assert.Equal(t, "Acme Corp", *exps[0].Company)

	edus := data.Educations.OrZero()
	require.Len(t, edus, 1)
	assert.Equal(t, "MIT", edus[0].School)

	st, err := o.store.Load(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, st.Analyzed)
	assert.Len(t, st.History, len(turns)*2)
}

func TestHandleTurnAnalysisEventsOnCompletion(t *testing.T) {
	streams := make([][]string, 0, 10)
	for i := 0; i < 9; i++ {
		streams = append(streams, []string{"Got it."})
	}
	streams = append(streams, []string{analysisJSON})

	client := &llm.StubClient{StreamResponses: streams}
	o := newTestOrchestrator(client, &stubScraper{})
	id := uuid.New()

	turns := []string{
		"Hi",
		"I work solo",
		"I'll enter everything manually",
		"I'm mid-level",
		"Python, SQL",
		"Developer at Acme Corp for 2 years",
		"BS in Computer Science from MIT",
		"My rate is $40-60 per hour",
		"Full-time and part-time, remote only please",
	}

	var rec *eventRecorder
	for _, msg := range turns {
		rec = &eventRecorder{}
		_, err := o.HandleTurn(context.Background(), TurnRequest{
			ConversationID: id, UserName: "Ada", Message: msg,
		}, rec.emit)
		require.NoError(t, err)
	}

	kinds := rec.kinds()
	assert.Equal(t, []string{
		"text",
		"analysis_started",
		"reasoning_started",
		"reasoning_chunk",
		"reasoning_evaluating",
		"reasoning_completed",
		"profile_analysis",
		"final",
	}, kinds)

	final := rec.events[len(rec.events)-1].(FinalEvent)
	assert.True(t, final.IsComplete)
}

func TestHandleTurnSkipCue(t *testing.T) {
	client := &llm.StubClient{StreamResponses: [][]string{{"No problem, moving on."}}}
	o := newTestOrchestrator(client, &stubScraper{})
	id := seededState(t, o.store, "Ada")
	rec := &eventRecorder{}

	res, err := o.HandleTurn(context.Background(), TurnRequest{
		ConversationID: id,
		Message:        "skip",
	}, rec.emit)

	require.NoError(t, err)
	assert.True(t, res.Data.TeamMode.IsSkipped())
	assert.False(t, res.IsComplete)
}

func TestHandleTurnImportCompleted(t *testing.T) {
	company := "Initech"
	scraper := &stubScraper{
		jobID: "job-1",
		statuses: []scrape.JobStatus{
			{Status: scrape.StatusPending},
			{Status: scrape.StatusCompleted, Profile: &scrape.ImportedProfile{
				LinkedInURL:     "https://www.linkedin.com/in/ada",
				FullName:        "Ada Lovelace",
				ExperienceLevel: "senior",
				Skills:          []scrape.ImportedSkill{{Name: "Go"}, {Name: "Postgres"}},
				Experiences:     []scrape.ImportedExperience{{Title: "Engineer", Company: &company}},
			}},
		},
	}
	client := &llm.StubClient{StreamResponses: [][]string{
		{"Pulling in your LinkedIn profile now."},
		{"Here is what I found."},
	}}
	o := newTestOrchestrator(client, scraper)
	id := seededState(t, o.store, "Ada")
	rec := &eventRecorder{}

	res, err := o.HandleTurn(context.Background(), TurnRequest{
		ConversationID: id,
		Message:        "Sure, here it is: https://www.linkedin.com/in/ada",
	}, rec.emit)

	require.NoError(t, err)
	assert.Equal(t, "Pulling in your LinkedIn profile now.\n\nHere is what I found.", res.Message)

	kinds := rec.kinds()
	assert.Equal(t, []string{
		"text",        // acknowledgement
		"tool_call",   // started
		"tool_status", // one pending poll
		"tool_call",   // completed
		"text",        // separator
		"text",        // summary
		"final",
	}, kinds)
	assert.Equal(t, "started", rec.events[1].(ToolCallEvent).Status)
	assert.Equal(t, "completed", rec.events[3].(ToolCallEvent).Status)

	data := res.Data
	assert.Equal(t, types.PathLinkedIn, data.ProfilePath.OrZero())
	assert.Equal(t, "Ada Lovelace", data.FullName.OrZero())
	assert.Equal(t, types.LevelSenior, data.ExperienceLevel.OrZero())
	assert.Len(t, data.Skills.OrZero(), 2)

	st, err := o.store.Load(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, st.Imported)
}

func TestHandleTurnImportTimesOut(t *testing.T) {
	scraper := &stubScraper{
		jobID:    "job-1",
		statuses: []scrape.JobStatus{{Status: scrape.StatusPending}},
	}
	client := &llm.StubClient{StreamResponses: [][]string{
		{"Starting the import."},
		{"Sorry, that did not work. Let's go through it here instead."},
	}}
	o := newTestOrchestrator(client, scraper)
	o.MaxPolls = 2
	id := seededState(t, o.store, "Ada")
	rec := &eventRecorder{}

	res, err := o.HandleTurn(context.Background(), TurnRequest{
		ConversationID: id,
		Message:        "https://www.linkedin.com/in/ada",
	}, rec.emit)

	require.NoError(t, err)
	assert.Equal(t,
		"Starting the import.\n\nSorry, that did not work. Let's go through it here instead.",
		res.Message)
	assert.False(t, res.IsComplete)

	kinds := rec.kinds()
	assert.Equal(t, []string{
		"text",
		"tool_call",
		"tool_status",
		"tool_status",
		"tool_call",
		"text",
		"text",
		"final",
	}, kinds)
	assert.Equal(t, "failed", rec.events[4].(ToolCallEvent).Status)

	st, err := o.store.Load(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, st.Imported)
	assert.True(t, st.Data.Skills.IsUnset())
}

func TestHandleTurnImportNotRetried(t *testing.T) {
	scraper := &stubScraper{
		jobID:    "job-1",
		statuses: []scrape.JobStatus{{Status: scrape.StatusCompleted, Profile: &scrape.ImportedProfile{FullName: "Ada Lovelace"}}},
	}
	client := &llm.StubClient{StreamResponses: [][]string{
		{"Importing."},
		{"Done."},
		{"You already imported; let's keep going."},
	}}
	o := newTestOrchestrator(client, scraper)
	id := seededState(t, o.store, "Ada")

	_, err := o.HandleTurn(context.Background(), TurnRequest{
		ConversationID: id,
		Message:        "https://www.linkedin.com/in/ada",
	}, (&eventRecorder{}).emit)
	require.NoError(t, err)

	rec := &eventRecorder{}
	res, err := o.HandleTurn(context.Background(), TurnRequest{
		ConversationID: id,
		Message:        "Try again with https://www.linkedin.com/in/ada",
	}, rec.emit)
	require.NoError(t, err)

	assert.Equal(t, "You already imported; let's keep going.", res.Message)
	assert.Zero(t, rec.count("tool_call"))
}

func TestHandleTurnFailureLeavesStateUntouched(t *testing.T) {
	client := &llm.StubClient{Err: errors.New("model unavailable")}
	o := newTestOrchestrator(client, &stubScraper{})
	id := seededState(t, o.store, "Ada")

	before, err := o.store.Load(context.Background(), id)
	require.NoError(t, err)

	res, err := o.HandleTurn(context.Background(), TurnRequest{
		ConversationID: id,
		Message:        "I work solo",
	}, (&eventRecorder{}).emit)

	require.Error(t, err)
	assert.Nil(t, res)

	after, loadErr := o.store.Load(context.Background(), id)
	require.NoError(t, loadErr)
	assert.Equal(t, before, after)
}

type blockingStore struct {
	*MemoryStore
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *blockingStore) Load(ctx context.Context, id uuid.UUID) (State, error) {
	s.once.Do(func() {
		close(s.entered)
		<-s.release
	})
	return s.MemoryStore.Load(ctx, id)
}

func TestHandleTurnConcurrentTurnFailsFast(t *testing.T) {
	store := &blockingStore{
		MemoryStore: NewMemoryStore(),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	client := &llm.StubClient{StreamResponses: [][]string{{"Welcome!"}}}
	runner := analysis.NewRunner(client, nil, logger.Nop())
	o := New(client, &stubScraper{}, runner, store, logger.Nop(), nil)

	id := uuid.New()
	done := make(chan error, 1)
	go func() {
		_, err := o.HandleTurn(context.Background(), TurnRequest{
			ConversationID: id, Message: "Hi",
		}, (&eventRecorder{}).emit)
		done <- err
	}()

	<-store.entered
	_, err := o.HandleTurn(context.Background(), TurnRequest{
		ConversationID: id, Message: "Hi again",
	}, (&eventRecorder{}).emit)
	assert.ErrorIs(t, err, ErrTurnInProgress)

	close(store.release)
	require.NoError(t, <-done)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	id := uuid.New()

	_, err := store.Load(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	st := State{ID: id, UserName: "Ada"}
	require.NoError(t, store.Save(ctx, st))

	got, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, st, got)
}
