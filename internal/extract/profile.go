package extract

import (
	"regexp"
	"strings"

	"github.com/hiremeplz/hiremeplz/internal/types"
)

// Per-kind length gates layered on the shared TooThin gate. Skills and
// education tolerate shorter answers ("Go", "MIT") than experience blurbs.
const (
	minSkillsMessage     = 5
	minExperienceMessage = 10
	minEducationMessage  = 5

	skillTokenMin   = 2
	skillTokenMax   = 50
	skillMessageMax = 100

	experienceFallbackMin = 15
	educationFallbackMin  = 3
)

var (
	skillSplitRe = regexp.MustCompile(`(?i)[,;]|\band\b`)

	// "Title at Company[ for Highlights]"
	experienceAtRe = regexp.MustCompile(`(?i)^(.+?)\s+at\s+(.+?)(?:\s+for\s+(.+?))?[.,]?$`)
	// "Title, Company[, Highlights]"
	commaTripleRe = regexp.MustCompile(`^([^,]+),\s*([^,]+?)(?:,\s*(.+))?$`)
	// "Degree[ in Field] from School[ in Year]"
	educationFromRe = regexp.MustCompile(`(?i)^(.+?)\s+(?:from|at)\s+(.+?)(?:\s+in\s+(\d{4}))?[.,]?$`)
	degreeFieldRe   = regexp.MustCompile(`(?i)^(.+?)\s+in\s+(.+)$`)
	degreeHintRe    = regexp.MustCompile(`(?i)\b(degree|diploma|bachelor'?s?|master'?s?|doctorate|phd|mba|b\.?s\.?c?|b\.?a\.?|m\.?s\.?c?|m\.?a\.?)\b`)
)

// The free-text extractors take a targeted flag: whether this field is the
// one currently being elicited. Loose whole-message fallbacks only fire when
// targeted, so an answer meant for another question is never swallowed as a
// skill, job, or school.

// Skills splits a message into skill names on commas, semicolons and "and",
// keeping tokens within the [2,50] character window. With no delimiter, the
// whole trimmed message (within [2,100] characters) is one skill, targeted
// turns only.
func Skills(message string, targeted bool) []types.Skill {
	trimmed := strings.TrimSpace(message)
	if len(trimmed) < minSkillsMessage || TooThin(trimmed) || IsSkipCue(trimmed) {
		return nil
	}

	if skillSplitRe.MatchString(trimmed) {
		var skills []types.Skill
		for _, part := range skillSplitRe.Split(trimmed, -1) {
			part = strings.TrimSpace(part)
			if len(part) >= skillTokenMin && len(part) <= skillTokenMax {
				skills = append(skills, types.Skill{Name: part})
			}
		}
		if len(skills) > 0 {
			return skills
		}
	}

	if targeted && len(trimmed) >= skillTokenMin && len(trimmed) <= skillMessageMax {
		return []types.Skill{{Name: trimmed}}
	}
	return nil
}

// Experiences tries "Title at Company for Highlights" on any turn, then,
// when targeted, "Title, Company, Highlights" and the free-text title
// fallback.
func Experiences(message string, targeted bool) []types.Experience {
	trimmed := strings.TrimSpace(message)
	if len(trimmed) < minExperienceMessage || TooThin(trimmed) || IsSkipCue(trimmed) {
		return nil
	}

	if m := experienceAtRe.FindStringSubmatch(trimmed); m != nil {
		exp := types.Experience{
			Title:   strings.TrimSpace(m[1]),
			Company: optional(m[2]),
		}
		if m[3] != "" {
			exp.Highlights = optional(m[3])
		}
		return []types.Experience{exp}
	}

	if !targeted {
		return nil
	}

	if m := commaTripleRe.FindStringSubmatch(trimmed); m != nil {
		exp := types.Experience{
			Title:   strings.TrimSpace(m[1]),
			Company: optional(m[2]),
		}
		if m[3] != "" {
			exp.Highlights = optional(m[3])
		}
		return []types.Experience{exp}
	}

	if len(trimmed) >= experienceFallbackMin {
		return []types.Experience{{Title: trimmed}}
	}
	return nil
}

// Educations tries "Degree in Field from School in Year", then, when
// targeted, "Degree, School[, Field]" and the school-name fallback.
// Untargeted capture additionally requires a degree keyword, so a job blurb
// with "at" in it is never read as a school.
func Educations(message string, targeted bool) []types.Education {
	trimmed := strings.TrimSpace(message)
	if len(trimmed) < minEducationMessage || TooThin(trimmed) || IsSkipCue(trimmed) {
		return nil
	}
	if !targeted && !degreeHintRe.MatchString(trimmed) {
		return nil
	}

	if m := educationFromRe.FindStringSubmatch(trimmed); m != nil {
		edu := types.Education{School: strings.TrimSpace(m[2])}
		degreePart := strings.TrimSpace(m[1])
		if dm := degreeFieldRe.FindStringSubmatch(degreePart); dm != nil {
			edu.Degree = optional(dm[1])
			edu.Field = optional(dm[2])
		} else {
			edu.Degree = optional(degreePart)
		}
		if m[3] != "" {
			edu.EndYear = optional(m[3])
		}
		return []types.Education{edu}
	}

	if !targeted {
		return nil
	}

	if m := commaTripleRe.FindStringSubmatch(trimmed); m != nil {
		edu := types.Education{
			School: strings.TrimSpace(m[2]),
			Degree: optional(m[1]),
		}
		if m[3] != "" {
			edu.Field = optional(m[3])
		}
		return []types.Education{edu}
	}

	if len(trimmed) >= educationFallbackMin {
		return []types.Education{{School: trimmed}}
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
