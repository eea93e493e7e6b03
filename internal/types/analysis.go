package types

import "time"

// AnalysisCategories holds the four named sub-scores, each 0-100.
type AnalysisCategories struct {
	SkillsBreadth     int `json:"skillsBreadth"`
	ExperienceQuality int `json:"experienceQuality"`
	RatePositioning   int `json:"ratePositioning"`
	MarketReadiness   int `json:"marketReadiness"`
}

// ProfileAnalysis is one scored analysis run. Immutable once created; a
// refresh creates a new record rather than mutating this one.
type ProfileAnalysis struct {
	ID               string             `json:"id,omitempty"`
	OverallScore     int                `json:"overallScore"`
	Categories       AnalysisCategories `json:"categories"`
	Strengths        []string           `json:"strengths"`
	Improvements     []string           `json:"improvements"`
	DetailedFeedback string             `json:"detailedFeedback"`
	CreatedAt        time.Time          `json:"createdAt,omitempty"`
}

// FeedbackSections is the fixed heading order required of DetailedFeedback.
var FeedbackSections = []string{
	"The Bottom Line",
	"Skills Assessment",
	"Experience Quality",
	"Rate Analysis",
	"Strategic Gaps",
	"Action Items",
}
