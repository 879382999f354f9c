package handlers

import (
	"net/http"
	"time"

	httpContracts "github.com/socialcaution/cautiond/internal/http"
)

// Health handles GET /health. Catalog counts come straight from the loaded
// catalogs, without the artificial latency applied to query calls.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	response := httpContracts.HealthResponse{
		Status:    "healthy",
		Version:   h.version,
		Timestamp: time.Now().UTC(),
		Catalog: httpContracts.CatalogHealth{
			Personas: h.svc.PersonaCount(),
			Cautions: h.svc.CatalogSize(),
		},
		Session: h.session,
	}

	h.writeJSON(w, http.StatusOK, response)
}
