package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hiremeplz/hiremeplz/internal/onboarding"
	"github.com/hiremeplz/hiremeplz/internal/types"
)

func TestConversationTurnMarksNextField(t *testing.T) {
	status := onboarding.Status{
		Filled:  []string{"teamMode: solo"},
		Missing: []string{"profilePath", "hourlyRate"},
		Next:    onboarding.KeyProfilePath,
	}

	prompt := ConversationTurn("Ada", status, nil, "hi")

	assert.Contains(t, prompt, "ALREADY COLLECTED:\n- teamMode: solo")
	assert.Contains(t, prompt, "- profilePath <<<< ASK THIS ONE NEXT")
	assert.NotContains(t, prompt, "hourlyRate <<<<")
	assert.Contains(t, prompt, "The user's first name is Ada.")
}

func TestConversationTurnTruncatesHistory(t *testing.T) {
	history := make([]types.ChatMessage, 30)
	for i := range history {
		history[i] = types.ChatMessage{Role: types.RoleUser, Content: "msg"}
	}
	history[29].Content = "latest"
	history[9].Content = "dropped"

	prompt := ConversationTurn("", onboarding.Status{}, history, "hi")
	assert.Contains(t, prompt, "latest")
	assert.NotContains(t, prompt, "dropped")
}

func TestOrientationNamesUser(t *testing.T) {
	prompt := Orientation("Grace")
	assert.Contains(t, prompt, "The user's name is Grace")
	assert.Contains(t, prompt, "LinkedIn")
}

func TestAnalysisEmbedsDossier(t *testing.T) {
	prompt := Analysis(`{"skills":["Go"]}`)
	assert.Contains(t, prompt, `{"skills":["Go"]}`)
	assert.True(t, strings.HasPrefix(prompt, AnalysisInstructions))
}

func TestAnalysisInstructionsKeepScopeAndSections(t *testing.T) {
	for _, section := range types.FeedbackSections {
		assert.Contains(t, AnalysisInstructions, "## "+section)
	}
	assert.Contains(t, AnalysisInstructions, "OUT OF SCOPE")
	assert.Contains(t, AnalysisInstructions, "Most profiles land between 40-65")
}
