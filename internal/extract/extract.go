// Package extract maps free-text user utterances to typed fragments of
// profile data. Every extractor is a pure function over the message string:
// it returns the zero value and false (or nil) rather than guess when the
// input is ambiguous, too short, or a bare acknowledgement.
package extract

import (
	"regexp"
	"strings"

	"github.com/hiremeplz/hiremeplz/internal/types"
)

// minMessageRunes is the floor below which no extractor fires.
const minMessageRunes = 3

// acknowledgements are tokens that carry no profile data on their own.
var acknowledgements = map[string]struct{}{
	"yes": {}, "yep": {}, "yeah": {}, "no": {}, "nope": {},
	"ok": {}, "okay": {}, "sure": {}, "thanks": {}, "thank you": {},
	"next": {}, "cool": {}, "great": {}, "got it": {}, "sounds good": {},
}

// skipCues are phrases that mean "I decline to answer this question".
var skipCues = map[string]struct{}{
	"skip": {}, "skip it": {}, "pass": {}, "none": {}, "no thanks": {},
	"prefer not to say": {}, "rather not say": {}, "no degree": {},
}

var (
	soloRe = regexp.MustCompile(`\b(solo|alone|just me|by myself|individual)\b`)
	teamRe = regexp.MustCompile(`\b(team|group|we|us|together|partners?)\b`)

	linkedinPathRe = regexp.MustCompile(`\b(linkedin|import)\b`)
	upworkPathRe   = regexp.MustCompile(`\bupwork\b`)
	cvPathRe       = regexp.MustCompile(`\b(cv|resume)\b`)
	portfolioRe    = regexp.MustCompile(`\bportfolio\b`)
	manualPathRe   = regexp.MustCompile(`\b(manual(ly)?|tell you|myself|type)\b`)

	fullTimeRe = regexp.MustCompile(`\bfull[- ]?time\b`)
	partTimeRe = regexp.MustCompile(`\bpart[- ]?time\b`)
	internRe   = regexp.MustCompile(`\bintern(ship)?s?\b`)
	bothRe     = regexp.MustCompile(`\bboth\b`)

	remoteOnlyRe  = regexp.MustCompile(`\b(remote only|only remote|strictly remote|100% remote)\b`)
	remoteRe      = regexp.MustCompile(`\bremote\b`)
	onSiteRe      = regexp.MustCompile(`\b(on[- ]?site|office|in[- ]?person|hybrid|either|both|open to)\b`)
	directorRe    = regexp.MustCompile(`\b(director|executive|c-level|cto|ceo|vp|vice president)\b`)
	leadRe        = regexp.MustCompile(`\b(lead|principal|staff|architect|head)\b`)
	seniorRe      = regexp.MustCompile(`\b(senior|sr\.?|expert|experienced)\b`)
	midRe         = regexp.MustCompile(`\b(mid[- ]?level|intermediate|moderate)\b`)
	entryRe       = regexp.MustCompile(`\b(entry|junior|jr\.?|beginner)\b`)
	internLevelRe = regexp.MustCompile(`\b(intern|new grad|graduate|student|fresher)\b`)

	linkedinURLRe = regexp.MustCompile(`https?://(?:www\.)?linkedin\.com/in/[\w-]+/?`)
)

// TooThin reports whether a message is too short or too content-free for any
// extractor to act on.
func TooThin(message string) bool {
	trimmed := strings.TrimSpace(message)
	if len([]rune(trimmed)) < minMessageRunes {
		return true
	}
	_, ack := acknowledgements[normalize(trimmed)]
	return ack
}

// IsSkipCue reports whether the message means the user declined the current
// question. Skip handling belongs to the orchestrator; extractors treat skip
// cues the same as acknowledgements and return nothing.
func IsSkipCue(message string) bool {
	_, ok := skipCues[normalize(message)]
	return ok
}

func normalize(message string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(message), ".!"))
}

// TeamMode extracts solo/team from the message.
func TeamMode(message string) (types.TeamMode, bool) {
	if TooThin(message) || IsSkipCue(message) {
		return "", false
	}
	lower := strings.ToLower(message)
	if soloRe.MatchString(lower) {
		return types.TeamModeSolo, true
	}
	if teamRe.MatchString(lower) {
		return types.TeamModeTeam, true
	}
	return "", false
}

// ProfilePath extracts the acquisition path the user is asking for.
// "import" counts as linkedin, matching the product's import flow.
func ProfilePath(message string) (types.ProfilePath, bool) {
	if TooThin(message) || IsSkipCue(message) {
		return "", false
	}
	lower := strings.ToLower(message)
	switch {
	case linkedinPathRe.MatchString(lower):
		return types.PathLinkedIn, true
	case upworkPathRe.MatchString(lower):
		return types.PathUpwork, true
	case cvPathRe.MatchString(lower):
		return types.PathCV, true
	case portfolioRe.MatchString(lower):
		return types.PathPortfolio, true
	case manualPathRe.MatchString(lower):
		return types.PathManual, true
	}
	return "", false
}

// Engagements extracts the set of engagement types mentioned.
func Engagements(message string) ([]types.EngagementType, bool) {
	if TooThin(message) || IsSkipCue(message) {
		return nil, false
	}
	lower := strings.ToLower(message)
	if bothRe.MatchString(lower) {
		return []types.EngagementType{types.EngagementFullTime, types.EngagementPartTime}, true
	}

	var out []types.EngagementType
	if fullTimeRe.MatchString(lower) {
		out = append(out, types.EngagementFullTime)
	}
	if partTimeRe.MatchString(lower) {
		out = append(out, types.EngagementPartTime)
	}
	if internRe.MatchString(lower) {
		out = append(out, types.EngagementInternship)
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

// RemoteOnly extracts the remote-work preference. A bare "remote" with no
// on-site qualifier counts as remote-only; any on-site/hybrid/either signal
// counts as open to on-site.
func RemoteOnly(message string) (bool, bool) {
	if TooThin(message) || IsSkipCue(message) {
		return false, false
	}
	lower := strings.ToLower(message)
	if remoteOnlyRe.MatchString(lower) {
		return true, true
	}
	if remoteRe.MatchString(lower) && !onSiteRe.MatchString(lower) {
		return true, true
	}
	if onSiteRe.MatchString(lower) {
		return false, true
	}
	return false, false
}

// Level extracts the experience level, checking the most senior patterns
// first so "senior lead" resolves to lead, not senior.
func Level(message string) (types.ExperienceLevel, bool) {
	if TooThin(message) || IsSkipCue(message) {
		return "", false
	}
	lower := strings.ToLower(message)
	switch {
	case directorRe.MatchString(lower):
		return types.LevelDirector, true
	case leadRe.MatchString(lower):
		return types.LevelLead, true
	case seniorRe.MatchString(lower):
		return types.LevelSenior, true
	case midRe.MatchString(lower):
		return types.LevelMid, true
	case entryRe.MatchString(lower):
		return types.LevelEntry, true
	case internLevelRe.MatchString(lower):
		return types.LevelInternNewGrad, true
	}
	return "", false
}

// LinkedInURL returns the first LinkedIn profile URL in the message, if any.
// A profile URL switches the turn into the import branch regardless of what
// else the message contains.
func LinkedInURL(message string) (string, bool) {
	match := linkedinURLRe.FindString(message)
	if match == "" {
		return "", false
	}
	return match, true
}
