package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	httpContracts "github.com/socialcaution/cautiond/internal/http"
)

// Personas handles GET /personas, listing the selectable personas in catalog
// order.
func (h *Handlers) Personas(w http.ResponseWriter, r *http.Request) {
	personas, err := h.svc.Personas(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, httpContracts.PersonasResponse{
		Personas:  personas,
		Generated: time.Now().UTC(),
	})
}

// PersonaByName handles GET /personas/{name}.
func (h *Handlers) PersonaByName(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	persona, err := h.svc.PersonaByName(r.Context(), name)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, httpContracts.PersonaResponse{
		Persona:   persona,
		Generated: time.Now().UTC(),
	})
}
