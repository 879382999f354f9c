package domain

// Persona represents a named user archetype used to personalize which
// caution items are surfaced. The persona catalog is static: defined at
// startup, never mutated at runtime.
type Persona struct {
	Name           string         `json:"name" yaml:"name"`
	DisplayName    string         `json:"display_name" yaml:"display_name"`
	Icon           string         `json:"icon" yaml:"icon"`
	Description    string         `json:"description" yaml:"description"`
	TargetAudience string         `json:"target_audience" yaml:"target_audience"`
	RiskCategories []string       `json:"risk_categories" yaml:"risk_categories"`
	PrivacyRights  []PrivacyRight `json:"privacy_rights" yaml:"privacy_rights"`
	IsActive       bool           `json:"is_active" yaml:"is_active"`
}

// PrivacyRight is a single privacy-right fact shown when a persona is selected.
type PrivacyRight struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Actionable  bool   `json:"actionable" yaml:"actionable"`
}
