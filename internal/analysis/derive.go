package analysis

import (
	"fmt"
	"strings"

	"github.com/hiremeplz/hiremeplz/internal/types"
)

// GenerateHeadline derives a one-line profile headline from the collected
// data. Deterministic: no model call.
func GenerateHeadline(data types.CollectedData) string {
	level := ""
	if l, ok := data.ExperienceLevel.Value(); ok {
		level = types.ExperienceLevelLabels[l]
	}

	title := "Freelancer"
	if exps, ok := data.Experiences.Value(); ok && len(exps) > 0 {
		title = exps[0].Title
	}

	var topSkills []string
	if skills, ok := data.Skills.Value(); ok {
		for _, s := range skills {
			topSkills = append(topSkills, s.Name)
			if len(topSkills) == 4 {
				break
			}
		}
	}

	headline := strings.TrimSpace(level + " " + title)
	if len(topSkills) > 0 {
		return headline + " | " + strings.Join(topSkills, " | ")
	}
	return headline
}

// GenerateAbout derives a short third-person summary from the collected
// data. Deterministic: no model call.
func GenerateAbout(data types.CollectedData) string {
	name := data.FullName.OrZero()
	if name == "" {
		name = "Freelancer"
	}

	level := ""
	if l, ok := data.ExperienceLevel.Value(); ok {
		level = strings.ToLower(types.ExperienceLevelLabels[l])
	}

	var parts []string

	if exps, ok := data.Experiences.Value(); ok && len(exps) > 0 {
		latest := exps[0]
		companyPart := ""
		if latest.Company != nil && *latest.Company != "" {
			companyPart = " at " + *latest.Company
		}
		parts = append(parts, collapseSpaces(fmt.Sprintf("%s is a %s %s%s.", name, level, latest.Title, companyPart)))
	} else {
		parts = append(parts, collapseSpaces(fmt.Sprintf("%s is a %s freelance professional.", name, level)))
	}

	if skills := data.SkillNames(); len(skills) > 0 {
		list := strings.Join(skills, ", ")
		if len(skills) > 3 {
			list = fmt.Sprintf("%s and %d more", strings.Join(skills[:3], ", "), len(skills)-3)
		}
		parts = append(parts, fmt.Sprintf("Specializing in %s.", list))
	}

	parts = append(parts, fmt.Sprintf("Available for %s engagements.", engagementPhrase(data)))
	return strings.Join(parts, " ")
}

func engagementPhrase(data types.CollectedData) string {
	kinds, _ := data.EngagementTypes.Value()
	full, part := false, false
	for _, k := range kinds {
		switch k {
		case types.EngagementFullTime:
			full = true
		case types.EngagementPartTime:
			part = true
		}
	}
	switch {
	case full && part:
		return "full-time and part-time"
	case full:
		return "full-time"
	default:
		return "part-time"
	}
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
