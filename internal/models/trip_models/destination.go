package trip_models

// MapDestination is one map target derived from an entry's link field.
type MapDestination struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// ResolutionRule records which tier of the link resolution policy produced the destinations.
type ResolutionRule string

const (
	RuleNone          ResolutionRule = "none"
	RuleExplicitLabel ResolutionRule = "explicit_label"
	RulePositional    ResolutionRule = "positional"
	RuleFallback      ResolutionRule = "fallback"
)
