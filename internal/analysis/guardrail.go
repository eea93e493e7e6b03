package analysis

import (
	"fmt"
	"strings"
)

// scopeTerms are subjects the scorer must never raise: none of them are
// collectible through the onboarding conversation, so feedback mentioning
// them is noise.
var scopeTerms = []string{
	"portfolio",
	"github",
	"open source",
	"open-source",
	"personal website",
	"case study",
	"case studies",
	"testimonial",
	"certification",
	"social proof",
	"linkedin profile",
	"upwork profile",
	"headshot",
	"blog post",
	"published article",
	"speaking engagement",
	"professional association",
}

// ScopeViolation reports an out-of-scope subject in the scorer's output.
type ScopeViolation struct {
	Field string
	Term  string
}

func (v ScopeViolation) Error() string {
	return fmt.Sprintf("analysis %s mentions out-of-scope subject %q", v.Field, v.Term)
}

// CheckScope scans the human-readable parts of an analysis for out-of-scope
// subjects. The first violation found is returned.
func CheckScope(strengths, improvements []string, detailedFeedback string) error {
	check := func(field, text string) error {
		lower := strings.ToLower(text)
		for _, term := range scopeTerms {
			if strings.Contains(lower, term) {
				return ScopeViolation{Field: field, Term: term}
			}
		}
		return nil
	}

	for _, s := range strengths {
		if err := check("strengths", s); err != nil {
			return err
		}
	}
	for _, s := range improvements {
		if err := check("improvements", s); err != nil {
			return err
		}
	}
	return check("detailedFeedback", detailedFeedback)
}
