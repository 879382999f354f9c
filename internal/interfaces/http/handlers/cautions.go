package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/socialcaution/cautiond/internal/domain"
	httpContracts "github.com/socialcaution/cautiond/internal/http"
)

// maxPageLimit caps the page size a client can request.
const maxPageLimit = 100

// Cautions handles GET /cautions with persona-scoped filtering and
// pagination. Query parameters: page, limit, category, severity, startDate.
func (h *Handlers) Cautions(w http.ResponseWriter, r *http.Request) {
	page := domain.Page{Number: 1, Limit: domain.DefaultPageLimit}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if parsed, err := strconv.Atoi(pageStr); err == nil && parsed > 0 {
			page.Number = parsed
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= maxPageLimit {
			page.Limit = parsed
		}
	}

	var filter domain.CautionFilter
	filter.Category = r.URL.Query().Get("category")

	if sevStr := r.URL.Query().Get("severity"); sevStr != "" {
		sev, err := domain.ParseSeverity(sevStr)
		if err != nil {
			h.writeDomainError(w, r, err)
			return
		}
		filter.Severity = sev
	}

	if dateStr := r.URL.Query().Get("startDate"); dateStr != "" {
		start, err := parseDate(dateStr)
		if err != nil {
			h.writeDomainError(w, r, err)
			return
		}
		filter.StartDate = start
	}

	result, err := h.svc.QueryCautions(r.Context(), filter, page)
	if err != nil {
		h.recordQuery(err)
		h.writeDomainError(w, r, err)
		return
	}
	h.recordQuery(nil)

	h.writeJSON(w, http.StatusOK, httpContracts.CautionsResponse{
		Cautions:   result.Items,
		Pagination: paginationInfo(result.Pagination),
		Generated:  time.Now().UTC(),
	})
}

// CautionByID handles GET /cautions/{id}. Deliberately not persona scoped:
// direct links must resolve for any viewer.
func (h *Handlers) CautionByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	item, err := h.svc.CautionByID(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, httpContracts.CautionResponse{
		Caution:   item,
		Generated: time.Now().UTC(),
	})
}

// Stats handles GET /cautions/stats.
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		h.recordQuery(err)
		h.writeDomainError(w, r, err)
		return
	}
	h.recordQuery(nil)

	h.writeJSON(w, http.StatusOK, httpContracts.StatsResponse{
		Stats:     stats,
		Generated: time.Now().UTC(),
	})
}

// Categories handles GET /categories.
func (h *Handlers) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, httpContracts.CategoriesResponse{
		Categories: categories,
		Generated:  time.Now().UTC(),
	})
}

// recordQuery feeds the query counters when metrics are initialized.
func (h *Handlers) recordQuery(err error) {
	if httpContracts.DefaultMetrics == nil {
		return
	}
	switch {
	case err == nil:
		httpContracts.DefaultMetrics.RecordQuery(httpContracts.QueryResultSuccess)
	case errors.Is(err, domain.ErrNoPersonaSelected):
		httpContracts.DefaultMetrics.RecordQuery(httpContracts.QueryResultNoPersona)
	default:
		httpContracts.DefaultMetrics.RecordQuery(httpContracts.QueryResultError)
	}
}

// parseDate accepts RFC3339 timestamps and plain dates.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, &domain.ValidationError{
		Field:  "startDate",
		Reason: fmt.Sprintf("%q is not an ISO-8601 date", raw),
	}
}

// paginationInfo converts query layer pagination into the wire shape.
func paginationInfo(p domain.Pagination) httpContracts.PaginationInfo {
	return httpContracts.PaginationInfo{
		Total:    p.Total,
		Page:     p.Page,
		PageSize: p.Limit,
		Pages:    p.Pages,
		HasNext:  p.Page < p.Pages,
		HasPrev:  p.Page > 1,
	}
}
