package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	httpContracts "github.com/socialcaution/cautiond/internal/http"
)

// CurrentPersona handles GET /session/persona. Selected is null when no
// persona has been chosen; that is not an error here, it is the signal the
// client uses to route to persona selection.
func (h *Handlers) CurrentPersona(w http.ResponseWriter, r *http.Request) {
	persona, err := h.svc.CurrentPersona(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, httpContracts.SessionPersonaResponse{
		Selected:  persona,
		Generated: time.Now().UTC(),
	})
}

// SelectPersona handles PUT /session/persona.
func (h *Handlers) SelectPersona(w http.ResponseWriter, r *http.Request) {
	var req httpContracts.SelectPersonaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, httpContracts.CodeValidationFailed,
			"request body must be JSON with a persona name")
		return
	}
	if req.Name == "" {
		h.writeError(w, r, http.StatusBadRequest, httpContracts.CodeValidationFailed,
			"persona name is required")
		return
	}

	persona, err := h.svc.SelectPersona(r.Context(), req.Name)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	if httpContracts.DefaultMetrics != nil {
		httpContracts.DefaultMetrics.RecordSelection(persona.Name)
	}

	h.writeJSON(w, http.StatusOK, httpContracts.PersonaResponse{
		Persona:   persona,
		Generated: time.Now().UTC(),
	})
}

// ClearPersona handles DELETE /session/persona.
func (h *Handlers) ClearPersona(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearPersona(r.Context()); err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, httpContracts.SessionPersonaResponse{
		Selected:  nil,
		Generated: time.Now().UTC(),
	})
}
