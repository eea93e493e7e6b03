package prompts

import (
	"fmt"
	"strings"

	"github.com/hiremeplz/hiremeplz/internal/onboarding"
	"github.com/hiremeplz/hiremeplz/internal/types"
)

// askNextMarker flags the single field the dialogue model should elicit.
const askNextMarker = " <<<< ASK THIS ONE NEXT"

// ConversationTurn assembles the full prompt for one dialogue turn: the
// system instructions, the collected/needed context block, recent history,
// and the latest user message.
func ConversationTurn(userName string, status onboarding.Status, history []types.ChatMessage, message string) string {
	var b strings.Builder
	b.WriteString(ConversationalInstructions)
	b.WriteString("\n\n")

	if userName != "" {
		fmt.Fprintf(&b, "The user's first name is %s.\n\n", userName)
	}

	b.WriteString("ALREADY COLLECTED:\n")
	if len(status.Filled) == 0 {
		b.WriteString("- (nothing yet)\n")
	}
	for _, f := range status.Filled {
		fmt.Fprintf(&b, "- %s\n", f)
	}

	b.WriteString("\nSTILL NEEDED:\n")
	if len(status.Missing) == 0 {
		b.WriteString("- (nothing, all fields collected)\n")
	}
	for i, m := range status.Missing {
		if i == 0 && status.Next != "" {
			fmt.Fprintf(&b, "- %s%s\n", m, askNextMarker)
			continue
		}
		fmt.Fprintf(&b, "- %s\n", m)
	}

	if len(history) > 0 {
		b.WriteString("\nCONVERSATION SO FAR:\n")
		for _, msg := range recentHistory(history, 20) {
			fmt.Fprintf(&b, "%s: %s\n", msg.Role, msg.Content)
		}
	}

	fmt.Fprintf(&b, "\nuser: %s\n\nRespond as the assistant.", message)
	return b.String()
}

// Orientation builds the prompt for the scripted first response.
func Orientation(userName string) string {
	var b strings.Builder
	b.WriteString(ConversationalInstructions)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, `This is the very first message of the onboarding. The user's name is %s (collected on the welcome screen).

Produce the structured orientation using markdown headings, covering: who you are (their personal AI career agent), what this setup powers (gig matching, proposals, interview prep, pipeline), how long it takes (about 5-7 minutes), and what they get (a ranked profile assessment with honest scoring, strengths and specific improvements, rate positioning, clear next steps, dashboard access).

End by asking whether they have a LinkedIn profile to import, noting they can skip and enter everything manually.`, userName)
	return b.String()
}

// ImportAck asks for a one-liner acknowledging the LinkedIn URL while the
// scrape starts.
func ImportAck(userName string) string {
	var b strings.Builder
	b.WriteString(ConversationalInstructions)
	b.WriteString("\n\n")
	if userName != "" {
		fmt.Fprintf(&b, "The user's first name is %s.\n\n", userName)
	}
	b.WriteString("The user just provided their LinkedIn profile URL. Acknowledge it briefly and let them know you are fetching their profile data now. Keep your response to 1-2 short sentences.")
	return b.String()
}

// ImportSummary asks for a short recap of the imported profile and the next
// question. The imported fields are already in the status block; the model
// must not re-ask for them.
func ImportSummary(userName string, status onboarding.Status, profileJSON string) string {
	prompt := ConversationTurn(userName, status, nil, "(LinkedIn import finished)")
	return prompt + fmt.Sprintf(`

LinkedIn profile fetched successfully:
%s

IMPORTANT: LinkedIn provides skills and experience, so do not ask about those. Summarize their profile in 1-2 sentences (name, headline, notable skills or experience), then ask the question marked in STILL NEEDED.`, profileJSON)
}

// ImportFailed asks for a brief apology and the fallback options after a
// failed scrape.
func ImportFailed(userName string, status onboarding.Status, reason string) string {
	prompt := ConversationTurn(userName, status, nil, "(LinkedIn import failed)")
	return prompt + fmt.Sprintf(`

LinkedIn scrape failed: %q. Apologize briefly and ask them to try again or set up manually.`, reason)
}

// Analysis builds the scorer prompt around the cleaned profile dossier.
func Analysis(profileJSON string) string {
	var b strings.Builder
	b.WriteString(AnalysisInstructions)
	b.WriteString("\n\nPROFILE DOSSIER:\n")
	b.WriteString(profileJSON)
	b.WriteString("\n\nReturn only the JSON object.")
	return b.String()
}

func recentHistory(history []types.ChatMessage, max int) []types.ChatMessage {
	if len(history) <= max {
		return history
	}
	return history[len(history)-max:]
}
