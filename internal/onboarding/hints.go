package onboarding

// InputHint tells the client what input affordance to render for the field
// being elicited. Free-text is the default; structured hints let the UI
// offer choice chips or a rate slider instead of a bare text box.
type InputHint struct {
	Kind    string   `json:"kind"`
	Options []string `json:"options,omitempty"`
}

// Hint kinds.
const (
	HintText    = "text"
	HintChoice  = "choice"
	HintRate    = "rate"
	HintBoolean = "boolean"
)

// HintFor maps a target field to its input hint.
func HintFor(key FieldKey) InputHint {
	switch key {
	case KeyTeamMode:
		return InputHint{Kind: HintChoice, Options: []string{"solo", "team"}}
	case KeyProfilePath:
		return InputHint{Kind: HintChoice, Options: []string{"linkedin", "upwork", "cv", "portfolio", "manual"}}
	case KeyRate:
		return InputHint{Kind: HintRate}
	case KeyEngagementTypes:
		return InputHint{Kind: HintChoice, Options: []string{"full_time", "part_time", "internship"}}
	case KeyRemoteOnly:
		return InputHint{Kind: HintBoolean}
	case KeyExperienceLevel:
		return InputHint{Kind: HintChoice, Options: []string{
			"intern_new_grad", "entry", "mid", "senior", "lead", "director",
		}}
	default:
		return InputHint{Kind: HintText}
	}
}
