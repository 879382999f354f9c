package domain

import (
	"fmt"
	"time"
)

// Severity classifies how urgent a caution item is, ordered low < medium <
// high < critical.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Severities lists all valid severity values in ascending urgency order.
func Severities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
}

var severityRank = map[Severity]int{
	SeverityLow:      0,
	SeverityMedium:   1,
	SeverityHigh:     2,
	SeverityCritical: 3,
}

// Valid reports whether s is one of the four known severity values.
func (s Severity) Valid() bool {
	_, ok := severityRank[s]
	return ok
}

// Rank returns the urgency rank of s (low=0 .. critical=3), -1 when invalid.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return -1
}

// ParseSeverity validates a raw severity string.
func ParseSeverity(raw string) (Severity, error) {
	s := Severity(raw)
	if !s.Valid() {
		return "", &ValidationError{Field: "severity", Reason: fmt.Sprintf("unknown severity %q", raw)}
	}
	return s, nil
}

// Source identifies where a caution item was published.
type Source struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// CautionItem is a single privacy/security alert record. The caution catalog
// is static and immutable at runtime; ViewCount is display-only.
type CautionItem struct {
	ID            string    `json:"id" yaml:"id"`
	Title         string    `json:"title" yaml:"title"`
	Description   string    `json:"description" yaml:"description"`
	Content       string    `json:"content,omitempty" yaml:"content"`
	Category      string    `json:"category" yaml:"category"`
	Severity      Severity  `json:"severity" yaml:"severity"`
	Personas      []string  `json:"personas" yaml:"personas"`
	Source        Source    `json:"source" yaml:"source"`
	PublishedDate time.Time `json:"published_date" yaml:"published_date"`
	Link          string    `json:"link,omitempty" yaml:"link"`
	Tags          []string  `json:"tags" yaml:"tags"`
	ViewCount     int       `json:"view_count" yaml:"view_count"`
}

// AppliesTo reports whether the item is relevant to the named persona.
func (c CautionItem) AppliesTo(persona string) bool {
	for _, p := range c.Personas {
		if p == persona {
			return true
		}
	}
	return false
}

// CautionFilter narrows a caution query. Zero values mean "not supplied".
// Persona membership is not part of the filter: it is mandatory and comes
// from the session.
type CautionFilter struct {
	Category  string
	Severity  Severity
	StartDate time.Time
}

// Page addresses one page of a query result. Page numbers are 1-indexed.
type Page struct {
	Number int
	Limit  int
}

// DefaultPageLimit is applied when a caller supplies no limit.
const DefaultPageLimit = 20

// Pagination is the metadata returned alongside a page of results.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// PageResult is one page of matching caution items plus pagination metadata.
type PageResult struct {
	Items      []CautionItem `json:"items"`
	Pagination Pagination    `json:"pagination"`
}

// CautionStats aggregates the caution catalog. All counts are computed over
// the entire catalog, not scoped to the selected persona; see the query
// layer for why that asymmetry is intentional.
type CautionStats struct {
	BySeverity  map[Severity]int `json:"by_severity"`
	ByCategory  map[string]int   `json:"by_category"`
	RecentCount int              `json:"recent_count"`
	TotalActive int              `json:"total_active"`
}
