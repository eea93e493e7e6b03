// Package onboarding owns the collected-data lifecycle: merge policy,
// the path-dependent completeness predicate, field priority, and the
// filled/missing status used to brief the dialogue model.
package onboarding

import (
	"fmt"
	"strings"

	"github.com/hiremeplz/hiremeplz/internal/extract"
	"github.com/hiremeplz/hiremeplz/internal/types"
)

// FieldKey names an elicitable onboarding field.
type FieldKey string

// Elicitable fields, in ask-priority order.
const (
	KeyTeamMode        FieldKey = "teamMode"
	KeyProfilePath     FieldKey = "profilePath"
	KeyRate            FieldKey = "hourlyRate"
	KeyEngagementTypes FieldKey = "engagementTypes"
	KeyRemoteOnly      FieldKey = "remoteOnly"
	KeyExperienceLevel FieldKey = "experienceLevel"
	KeySkills          FieldKey = "skills"
	KeyExperiences     FieldKey = "experiences"
	KeyEducations      FieldKey = "educations"
)

// priorityOrder is the elicitation order. Only one field is targeted per
// turn; the path-specific fields only apply on the manual path.
var priorityOrder = []FieldKey{
	KeyTeamMode,
	KeyProfilePath,
	KeyRate,
	KeyEngagementTypes,
	KeyRemoteOnly,
	KeyExperienceLevel,
	KeySkills,
	KeyExperiences,
	KeyEducations,
}

// manualOnly are the fields only asked on the manual path; on an import
// path they arrive from the imported profile instead.
var manualOnly = map[FieldKey]bool{
	KeyExperienceLevel: true,
	KeySkills:          true,
	KeyExperiences:     true,
	KeyEducations:      true,
}

// Apply runs the field extractors against a raw user message, adopting
// values only for fields that are currently unset. It never overwrites:
// merge is first-writer-wins, and corrections go through an explicit
// confirmed exchange, not extraction.
func Apply(data types.CollectedData, message string) types.CollectedData {
	// The field currently being elicited; its extractor may use looser
	// whole-message fallbacks than off-turn capture.
	target, _ := NextField(data)

	if mode, ok := extract.TeamMode(message); ok && data.TeamMode.IsUnset() {
		data.TeamMode = types.Filled(mode)
	}
	if path, ok := extract.ProfilePath(message); ok && data.ProfilePath.IsUnset() {
		data.ProfilePath = types.Filled(path)
	}
	if url, ok := extract.LinkedInURL(message); ok && data.LinkedInURL.IsUnset() {
		data.LinkedInURL = types.Filled(url)
		if data.ProfilePath.IsUnset() {
			data.ProfilePath = types.Filled(types.PathLinkedIn)
		}
	}
	if rate := extract.Rate(message); rate.Found() && data.HourlyMin.IsUnset() {
		if rate.Min != nil {
			data.HourlyMin = types.Filled(*rate.Min)
		}
		if rate.Max != nil && data.HourlyMax.IsUnset() {
			data.HourlyMax = types.Filled(*rate.Max)
		}
		if data.Currency.IsUnset() {
			data.Currency = types.Filled(rate.Currency)
		}
	}
	if engagements, ok := extract.Engagements(message); ok && data.EngagementTypes.IsUnset() {
		data.EngagementTypes = types.Filled(engagements)
	}
	if remote, ok := extract.RemoteOnly(message); ok && data.RemoteOnly.IsUnset() {
		data.RemoteOnly = types.Filled(remote)
	}
	if level, ok := extract.Level(message); ok && data.ExperienceLevel.IsUnset() {
		data.ExperienceLevel = types.Filled(level)
	}

	// Free-text skill/experience/education capture only happens on the
	// manual path; on import paths those fields come from the scrape.
	if data.ProfilePath.OrZero() == types.PathManual {
		if data.Skills.IsUnset() {
			if skills := extract.Skills(message, target == KeySkills); skills != nil {
				data.Skills = types.Filled(skills)
			}
		}
		if data.Experiences.IsUnset() {
			if exps := extract.Experiences(message, target == KeyExperiences); exps != nil {
				data.Experiences = types.Filled(exps)
			}
		}
		if data.Educations.IsUnset() {
			if edus := extract.Educations(message, target == KeyEducations); edus != nil {
				data.Educations = types.Filled(edus)
			}
		}
	}

	return data
}

// MarkSkipped records that the user declined the given field.
// Already-answered fields are left alone.
func MarkSkipped(data types.CollectedData, key FieldKey) types.CollectedData {
	switch key {
	case KeyTeamMode:
		if data.TeamMode.IsUnset() {
			data.TeamMode = types.Skipped[types.TeamMode]()
		}
	case KeyProfilePath:
		if data.ProfilePath.IsUnset() {
			data.ProfilePath = types.Skipped[types.ProfilePath]()
		}
	case KeyRate:
		if data.HourlyMin.IsUnset() {
			data.HourlyMin = types.Skipped[float64]()
			data.HourlyMax = types.Skipped[float64]()
		}
	case KeyEngagementTypes:
		if data.EngagementTypes.IsUnset() {
			data.EngagementTypes = types.Skipped[[]types.EngagementType]()
		}
	case KeyRemoteOnly:
		if data.RemoteOnly.IsUnset() {
			data.RemoteOnly = types.Skipped[bool]()
		}
	case KeyExperienceLevel:
		if data.ExperienceLevel.IsUnset() {
			data.ExperienceLevel = types.Skipped[types.ExperienceLevel]()
		}
	case KeySkills:
		if data.Skills.IsUnset() {
			data.Skills = types.Skipped[[]types.Skill]()
		}
	case KeyExperiences:
		if data.Experiences.IsUnset() {
			data.Experiences = types.Skipped[[]types.Experience]()
		}
	case KeyEducations:
		if data.Educations.IsUnset() {
			data.Educations = types.Skipped[[]types.Education]()
		}
	}
	return data
}

// Merge adopts every field of src into dst where dst is unset, keeping dst
// everywhere else. It is idempotent and non-destructive.
func Merge(dst, src types.CollectedData) types.CollectedData {
	mergeField(&dst.FullName, src.FullName)
	mergeField(&dst.TeamMode, src.TeamMode)
	mergeField(&dst.ProfilePath, src.ProfilePath)
	mergeField(&dst.LinkedInURL, src.LinkedInURL)
	mergeField(&dst.UpworkURL, src.UpworkURL)
	mergeField(&dst.PortfolioURL, src.PortfolioURL)
	mergeField(&dst.ExperienceLevel, src.ExperienceLevel)
	mergeField(&dst.Skills, src.Skills)
	mergeField(&dst.Experiences, src.Experiences)
	mergeField(&dst.Educations, src.Educations)
	mergeField(&dst.HourlyMin, src.HourlyMin)
	mergeField(&dst.HourlyMax, src.HourlyMax)
	mergeField(&dst.CurrentRateMin, src.CurrentRateMin)
	mergeField(&dst.CurrentRateMax, src.CurrentRateMax)
	mergeField(&dst.DreamRateMin, src.DreamRateMin)
	mergeField(&dst.DreamRateMax, src.DreamRateMax)
	mergeField(&dst.FixedBudgetMin, src.FixedBudgetMin)
	mergeField(&dst.Currency, src.Currency)
	mergeField(&dst.EngagementTypes, src.EngagementTypes)
	mergeField(&dst.RemoteOnly, src.RemoteOnly)
	mergeField(&dst.TimeZones, src.TimeZones)
	return dst
}

func mergeField[T any](dst *types.Field[T], src types.Field[T]) {
	if dst.IsUnset() {
		*dst = src
	}
}

// IsComplete implements the path-dependent completeness predicate.
// With profilePath unset the answer is always false: the manual-path
// requirements cannot be evaluated without knowing the path. Skipped fields
// count as answered; they are excluded from scoring, not from progress.
func IsComplete(data types.CollectedData) bool {
	path, ok := data.ProfilePath.Value()
	if !ok {
		return false
	}

	base := data.TeamMode.IsAnswered() &&
		(data.HasRateSignal() || data.HourlyMin.IsSkipped()) &&
		data.EngagementTypes.IsAnswered() &&
		data.RemoteOnly.IsAnswered()
	if !base {
		return false
	}

	if path != types.PathManual {
		// Import paths supply skills/experience/education themselves.
		return true
	}

	return data.ExperienceLevel.IsAnswered() &&
		listAnswered(data.Skills) &&
		listAnswered(data.Experiences) &&
		listAnswered(data.Educations)
}

func listAnswered[T any](f types.Field[[]T]) bool {
	if f.IsSkipped() {
		return true
	}
	v, ok := f.Value()
	return ok && len(v) > 0
}

// NextField returns the highest-priority field still unset, honoring the
// acquisition path. ok is false when nothing remains to ask.
func NextField(data types.CollectedData) (FieldKey, bool) {
	path := data.ProfilePath.OrZero()
	for _, key := range priorityOrder {
		if manualOnly[key] && path != types.PathManual {
			continue
		}
		if fieldAnswered(data, key) {
			continue
		}
		// Path-specific fields cannot be asked before the path is known.
		if manualOnly[key] && data.ProfilePath.IsUnset() {
			continue
		}
		return key, true
	}
	return "", false
}

func fieldAnswered(data types.CollectedData, key FieldKey) bool {
	switch key {
	case KeyTeamMode:
		return data.TeamMode.IsAnswered()
	case KeyProfilePath:
		return data.ProfilePath.IsAnswered()
	case KeyRate:
		return data.HourlyMin.IsAnswered()
	case KeyEngagementTypes:
		return data.EngagementTypes.IsAnswered()
	case KeyRemoteOnly:
		return data.RemoteOnly.IsAnswered()
	case KeyExperienceLevel:
		return data.ExperienceLevel.IsAnswered()
	case KeySkills:
		return data.Skills.IsAnswered()
	case KeyExperiences:
		return data.Experiences.IsAnswered()
	case KeyEducations:
		return data.Educations.IsAnswered()
	}
	return true
}

// Status is the filled/missing breakdown the orchestrator embeds in every
// dialogue prompt. The orchestrator, not the dialogue model, is the single
// source of truth for what counts as filled.
type Status struct {
	Filled  []string
	Missing []string
	// Next is the single field to elicit this turn; empty when done.
	Next FieldKey
}

// BuildStatus summarizes collected vs still-needed fields for the prompt.
func BuildStatus(data types.CollectedData) Status {
	var s Status
	path := data.ProfilePath.OrZero()
	imported := data.ProfilePath.IsFilled() && path != types.PathManual

	describe := func(key FieldKey, answered bool, filledLabel, missingLabel string) {
		if answered {
			s.Filled = append(s.Filled, filledLabel)
		} else {
			s.Missing = append(s.Missing, missingLabel)
		}
	}

	describe(KeyTeamMode, data.TeamMode.IsAnswered(),
		fmt.Sprintf("teamMode: %s", stateLabel(data.TeamMode)), "teamMode")
	describe(KeyProfilePath, data.ProfilePath.IsAnswered(),
		fmt.Sprintf("profilePath: %s", stateLabel(data.ProfilePath)), "profilePath")

	if imported {
		s.Filled = append(s.Filled,
			fmt.Sprintf("experienceLevel: %s (from import)", stateLabel(data.ExperienceLevel)),
			fmt.Sprintf("skills: %s (from import)", strings.Join(data.SkillNames(), ", ")),
			fmt.Sprintf("experiences: %d positions (from import)", len(data.Experiences.OrZero())),
			fmt.Sprintf("educations: %d entries (from import)", len(data.Educations.OrZero())),
		)
	} else if path == types.PathManual {
		describe(KeyExperienceLevel, data.ExperienceLevel.IsAnswered(),
			fmt.Sprintf("experienceLevel: %s", stateLabel(data.ExperienceLevel)),
			"experienceLevel")
		describe(KeySkills, data.Skills.IsAnswered(),
			fmt.Sprintf("skills: %s", strings.Join(data.SkillNames(), ", ")),
			"skills (ask for specific technologies, frameworks, languages)")
		describe(KeyExperiences, data.Experiences.IsAnswered(),
			fmt.Sprintf("experiences: %d entries", len(data.Experiences.OrZero())),
			"experiences (ask for recent job: title, company, duration)")
		describe(KeyEducations, data.Educations.IsAnswered(),
			fmt.Sprintf("educations: %d entries", len(data.Educations.OrZero())),
			"education (ask for highest degree, school, field of study)")
	}

	describe(KeyRate, data.HourlyMin.IsAnswered(),
		fmt.Sprintf("hourlyRate: %s", rateLabel(data)), "hourlyRate")
	describe(KeyEngagementTypes, data.EngagementTypes.IsAnswered(),
		fmt.Sprintf("engagementTypes: %s", engagementLabel(data.EngagementTypes)),
		"engagementTypes (full-time, part-time, or both)")
	describe(KeyRemoteOnly, data.RemoteOnly.IsAnswered(),
		fmt.Sprintf("remoteOnly: %s", stateLabel(data.RemoteOnly)),
		"remoteOnly (remote only or open to on-site)")

	if next, ok := NextField(data); ok {
		s.Next = next
	}
	return s
}

func stateLabel[T any](f types.Field[T]) string {
	if f.IsSkipped() {
		return "(skipped)"
	}
	return fmt.Sprintf("%v", f.OrZero())
}

func rateLabel(data types.CollectedData) string {
	if data.HourlyMin.IsSkipped() {
		return "(skipped)"
	}
	cur := data.Currency.OrZero()
	if cur == "" {
		cur = types.CurrencyUSD
	}
	if max, ok := data.HourlyMax.Value(); ok {
		return fmt.Sprintf("%.0f-%.0f %s/hr", data.HourlyMin.OrZero(), max, cur)
	}
	return fmt.Sprintf("%.0f+ %s/hr", data.HourlyMin.OrZero(), cur)
}

func engagementLabel(f types.Field[[]types.EngagementType]) string {
	if f.IsSkipped() {
		return "(skipped)"
	}
	kinds := f.OrZero()
	labels := make([]string, 0, len(kinds))
	for _, k := range kinds {
		labels = append(labels, string(k))
	}
	return strings.Join(labels, ", ")
}
