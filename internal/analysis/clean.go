// Package analysis runs the calibrated profile scorer: clean the dossier,
// stream the model's reasoning, enforce the scope guardrail, validate the
// structured output, and persist the result.
package analysis

import "github.com/hiremeplz/hiremeplz/internal/types"

// CleanForAnalysis strips skip markers from the collected data so the scorer
// sees declined fields as plain nulls, never as a "skipped" token it might
// comment on.
func CleanForAnalysis(data types.CollectedData) types.CollectedData {
	clearSkip(&data.FullName)
	clearSkip(&data.TeamMode)
	clearSkip(&data.ProfilePath)
	clearSkip(&data.LinkedInURL)
	clearSkip(&data.UpworkURL)
	clearSkip(&data.PortfolioURL)
	clearSkip(&data.ExperienceLevel)
	clearSkip(&data.Skills)
	clearSkip(&data.Experiences)
	clearSkip(&data.Educations)
	clearSkip(&data.HourlyMin)
	clearSkip(&data.HourlyMax)
	clearSkip(&data.CurrentRateMin)
	clearSkip(&data.CurrentRateMax)
	clearSkip(&data.DreamRateMin)
	clearSkip(&data.DreamRateMax)
	clearSkip(&data.FixedBudgetMin)
	clearSkip(&data.Currency)
	clearSkip(&data.EngagementTypes)
	clearSkip(&data.RemoteOnly)
	clearSkip(&data.TimeZones)
	return data
}

func clearSkip[T any](f *types.Field[T]) {
	if f.IsSkipped() {
		*f = types.Field[T]{}
	}
}
