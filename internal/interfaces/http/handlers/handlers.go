// Package handlers implements the HTTP endpoint handlers of the caution
// service.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/socialcaution/cautiond/internal/domain"
	"github.com/socialcaution/cautiond/internal/feed"
	httpContracts "github.com/socialcaution/cautiond/internal/http"
)

// Handlers manages all HTTP endpoint handlers.
type Handlers struct {
	svc     *feed.Service
	version string
	session httpContracts.SessionHealth
}

// NewHandlers creates a handlers instance backed by the given query layer.
func NewHandlers(svc *feed.Service, version string, session httpContracts.SessionHealth) *Handlers {
	return &Handlers{svc: svc, version: version, session: session}
}

// writeJSON writes a JSON response with proper error handling.
func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"json_encoding_failed"}`, http.StatusInternalServerError)
	}
}

// writeError writes a standardized error response.
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	requestID := "unknown"
	if id, ok := r.Context().Value(httpContracts.RequestIDKey).(string); ok {
		requestID = id
	}

	errorResp := httpContracts.ErrorResponse{
		Error:     http.StatusText(status),
		Message:   message,
		Code:      code,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
	}

	h.writeJSON(w, status, errorResp)
}

// writeDomainError maps query layer errors onto the HTTP error taxonomy.
func (h *Handlers) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *domain.ValidationError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.writeError(w, r, http.StatusNotFound, httpContracts.CodeNotFound, err.Error())
	case errors.Is(err, domain.ErrNoPersonaSelected):
		// The client's expected response is a redirect to persona selection.
		h.writeError(w, r, http.StatusConflict, httpContracts.CodeNoPersonaSelected,
			"select a persona before querying cautions")
	case errors.As(err, &vErr):
		h.writeError(w, r, http.StatusBadRequest, httpContracts.CodeValidationFailed, vErr.Error())
	case errors.Is(err, context.DeadlineExceeded):
		h.writeError(w, r, http.StatusGatewayTimeout, httpContracts.CodeInternalError, "request timed out")
	default:
		h.writeError(w, r, http.StatusInternalServerError, httpContracts.CodeInternalError, "internal error")
	}
}

// NotFound handles 404 responses for unknown routes.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, http.StatusNotFound, "endpoint_not_found",
		"The requested endpoint does not exist")
}
