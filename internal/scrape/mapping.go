package scrape

import (
	"github.com/hiremeplz/hiremeplz/internal/types"
)

// MergeProfile folds a completed import into the collected data. The
// acquisition path is forced to linkedin; everything else fills only fields
// the user has not already answered, so conversational answers win over the
// scrape.
func MergeProfile(data types.CollectedData, profile *ImportedProfile, requestedURL string) types.CollectedData {
	data.ProfilePath = types.Filled(types.PathLinkedIn)

	url := profile.LinkedInURL
	if url == "" {
		url = requestedURL
	}
	if data.LinkedInURL.IsUnset() && url != "" {
		data.LinkedInURL = types.Filled(url)
	}

	if data.FullName.IsUnset() && profile.FullName != "" {
		data.FullName = types.Filled(profile.FullName)
	}
	if data.ExperienceLevel.IsUnset() && profile.ExperienceLevel != "" {
		if level, ok := parseLevel(profile.ExperienceLevel); ok {
			data.ExperienceLevel = types.Filled(level)
		}
	}

	if data.Skills.IsUnset() && len(profile.Skills) > 0 {
		skills := make([]types.Skill, 0, len(profile.Skills))
		for _, s := range profile.Skills {
			if s.Name != "" {
				skills = append(skills, types.Skill{Name: s.Name})
			}
		}
		if len(skills) > 0 {
			data.Skills = types.Filled(skills)
		}
	}

	if data.Experiences.IsUnset() && len(profile.Experiences) > 0 {
		exps := make([]types.Experience, 0, len(profile.Experiences))
		for _, e := range profile.Experiences {
			if e.Title == "" {
				continue
			}
			exps = append(exps, types.Experience{
				Title:      e.Title,
				Company:    e.Company,
				StartDate:  e.StartDate,
				EndDate:    e.EndDate,
				Highlights: e.Highlights,
			})
		}
		if len(exps) > 0 {
			data.Experiences = types.Filled(exps)
		}
	}

	if data.Educations.IsUnset() && len(profile.Educations) > 0 {
		edus := make([]types.Education, 0, len(profile.Educations))
		for _, e := range profile.Educations {
			if e.School == "" {
				continue
			}
			edus = append(edus, types.Education{
				School:    e.School,
				Degree:    e.Degree,
				Field:     e.Field,
				StartYear: e.StartYear,
				EndYear:   e.EndYear,
			})
		}
		if len(edus) > 0 {
			data.Educations = types.Filled(edus)
		}
	}

	return data
}

func parseLevel(s string) (types.ExperienceLevel, bool) {
	level := types.ExperienceLevel(s)
	switch level {
	case types.LevelInternNewGrad, types.LevelEntry, types.LevelMid,
		types.LevelSenior, types.LevelLead, types.LevelDirector:
		return level, true
	}
	return "", false
}
