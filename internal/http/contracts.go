// Package http defines the JSON contracts and metrics shared by the caution
// service's HTTP surface.
package http

import (
	"time"

	"github.com/socialcaution/cautiond/internal/domain"
)

type contextKey string

// RequestIDKey is the context key under which the per-request ID is stored.
const RequestIDKey contextKey = "request_id"

// ErrorResponse is the standardized error body for all endpoints.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Code      string    `json:"code"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Error codes returned in ErrorResponse.Code. A client receiving
// CodeNoPersonaSelected is expected to route the user to persona selection
// rather than render an error banner.
const (
	CodeNotFound          = "not_found"
	CodeNoPersonaSelected = "no_persona_selected"
	CodeValidationFailed  = "validation_failed"
	CodeRateLimited       = "rate_limited"
	CodeInternalError     = "internal_error"
)

// PaginationInfo is the pagination metadata attached to list responses.
type PaginationInfo struct {
	Total    int  `json:"total"`
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	Pages    int  `json:"pages"`
	HasNext  bool `json:"has_next"`
	HasPrev  bool `json:"has_prev"`
}

// CautionsResponse is the body of GET /cautions.
type CautionsResponse struct {
	Cautions   []domain.CautionItem `json:"cautions"`
	Pagination PaginationInfo       `json:"pagination"`
	Generated  time.Time            `json:"generated"`
}

// CautionResponse is the body of GET /cautions/{id}.
type CautionResponse struct {
	Caution   domain.CautionItem `json:"caution"`
	Generated time.Time          `json:"generated"`
}

// PersonasResponse is the body of GET /personas.
type PersonasResponse struct {
	Personas  []domain.Persona `json:"personas"`
	Generated time.Time        `json:"generated"`
}

// PersonaResponse is the body of GET /personas/{name}.
type PersonaResponse struct {
	Persona   domain.Persona `json:"persona"`
	Generated time.Time      `json:"generated"`
}

// SessionPersonaResponse is the body of GET /session/persona. Selected is
// null when no persona has been chosen yet.
type SessionPersonaResponse struct {
	Selected  *domain.Persona `json:"selected"`
	Generated time.Time       `json:"generated"`
}

// SelectPersonaRequest is the body of PUT /session/persona.
type SelectPersonaRequest struct {
	Name string `json:"name"`
}

// StatsResponse is the body of GET /cautions/stats.
type StatsResponse struct {
	Stats     domain.CautionStats `json:"stats"`
	Generated time.Time           `json:"generated"`
}

// CategoriesResponse is the body of GET /categories.
type CategoriesResponse struct {
	Categories []string  `json:"categories"`
	Generated  time.Time `json:"generated"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string        `json:"status"`
	Version   string        `json:"version"`
	Timestamp time.Time     `json:"timestamp"`
	Catalog   CatalogHealth `json:"catalog"`
	Session   SessionHealth `json:"session"`
}

// CatalogHealth reports the sizes of the loaded catalogs.
type CatalogHealth struct {
	Personas int `json:"personas"`
	Cautions int `json:"cautions"`
}

// SessionHealth reports which session backend is in use.
type SessionHealth struct {
	Backend string `json:"backend"` // file, memory
	Path    string `json:"path,omitempty"`
}
