package types

// TeamMode describes whether the freelancer works alone or as a team.
type TeamMode string

// Team modes.
const (
	TeamModeSolo TeamMode = "solo"
	TeamModeTeam TeamMode = "team"
)

// ProfilePath describes how profile data is being acquired.
type ProfilePath string

// Profile acquisition paths.
const (
	PathLinkedIn  ProfilePath = "linkedin"
	PathUpwork    ProfilePath = "upwork"
	PathCV        ProfilePath = "cv"
	PathPortfolio ProfilePath = "portfolio"
	PathManual    ProfilePath = "manual"
)

// ExperienceLevel describes seniority.
type ExperienceLevel string

// Experience levels, junior to senior.
const (
	LevelInternNewGrad ExperienceLevel = "intern_new_grad"
	LevelEntry         ExperienceLevel = "entry"
	LevelMid           ExperienceLevel = "mid"
	LevelSenior        ExperienceLevel = "senior"
	LevelLead          ExperienceLevel = "lead"
	LevelDirector      ExperienceLevel = "director"
)

// ExperienceLevelLabels maps levels to display labels used in generated
// headlines and prompts.
var ExperienceLevelLabels = map[ExperienceLevel]string{
	LevelInternNewGrad: "New Grad",
	LevelEntry:         "Entry-Level",
	LevelMid:           "Mid-Level",
	LevelSenior:        "Senior",
	LevelLead:          "Lead",
	LevelDirector:      "Director",
}

// Currency is one of the five supported ISO codes.
type Currency string

// Supported currencies.
const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyCAD Currency = "CAD"
	CurrencyAUD Currency = "AUD"
)

// EngagementType is the kind of engagement the freelancer accepts.
type EngagementType string

// Engagement types.
const (
	EngagementFullTime   EngagementType = "full_time"
	EngagementPartTime   EngagementType = "part_time"
	EngagementInternship EngagementType = "internship"
)

// Skill is a single named skill.
type Skill struct {
	Name string `json:"name"`
}

// Experience is one work-history entry.
type Experience struct {
	Title      string  `json:"title"`
	Company    *string `json:"company"`
	StartDate  *string `json:"startDate"`
	EndDate    *string `json:"endDate"`
	Highlights *string `json:"highlights"`
}

// Education is one education-history entry.
type Education struct {
	School    string  `json:"school"`
	Degree    *string `json:"degree"`
	Field     *string `json:"field"`
	StartYear *string `json:"startYear"`
	EndYear   *string `json:"endYear"`
}

// CollectedData is the accumulating onboarding record. Every field is
// three-valued (unset, skipped, filled); merge policy and the completeness
// predicate live in the onboarding package. Created empty at conversation
// start, mutated once per turn, and treated as read-only once analysis is
// triggered.
type CollectedData struct {
	FullName        Field[string]           `json:"fullName"`
	TeamMode        Field[TeamMode]         `json:"teamMode"`
	ProfilePath     Field[ProfilePath]      `json:"profilePath"`
	LinkedInURL     Field[string]           `json:"linkedinUrl"`
	UpworkURL       Field[string]           `json:"upworkUrl"`
	PortfolioURL    Field[string]           `json:"portfolioUrl"`
	ExperienceLevel Field[ExperienceLevel]  `json:"experienceLevel"`
	Skills          Field[[]Skill]          `json:"skills"`
	Experiences     Field[[]Experience]     `json:"experiences"`
	Educations      Field[[]Education]      `json:"educations"`
	HourlyMin       Field[float64]          `json:"hourlyMin"`
	HourlyMax       Field[float64]          `json:"hourlyMax"`
	CurrentRateMin  Field[float64]          `json:"currentRateMin"`
	CurrentRateMax  Field[float64]          `json:"currentRateMax"`
	DreamRateMin    Field[float64]          `json:"dreamRateMin"`
	DreamRateMax    Field[float64]          `json:"dreamRateMax"`
	FixedBudgetMin  Field[float64]          `json:"fixedBudgetMin"`
	Currency        Field[Currency]         `json:"currency"`
	EngagementTypes Field[[]EngagementType] `json:"engagementTypes"`
	RemoteOnly      Field[bool]             `json:"remoteOnly"`
	TimeZones       Field[[]string]         `json:"timeZones"`
}

// SkillNames returns the collected skill names, if any.
func (d CollectedData) SkillNames() []string {
	skills, ok := d.Skills.Value()
	if !ok {
		return nil
	}
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	return names
}

// HasRateSignal reports whether any hourly rate bound has been filled.
func (d CollectedData) HasRateSignal() bool {
	return d.HourlyMin.IsFilled() || d.HourlyMax.IsFilled()
}
