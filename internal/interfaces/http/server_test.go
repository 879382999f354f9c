package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/socialcaution/cautiond/internal/catalog"
	"github.com/socialcaution/cautiond/internal/domain"
	"github.com/socialcaution/cautiond/internal/feed"
	httpContracts "github.com/socialcaution/cautiond/internal/http"
	"github.com/socialcaution/cautiond/internal/session"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	personas := []domain.Persona{
		{Name: "parent", DisplayName: "Parent", IsActive: true},
		{Name: "general", DisplayName: "Everyday User", IsActive: true},
	}
	cautions := []domain.CautionItem{
		{ID: "c1", Title: "Vault breach", Category: "data-breach", Severity: domain.SeverityCritical,
			Personas: []string{"general"}, PublishedDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "c2", Title: "Gallery trackers", Category: "children", Severity: domain.SeverityMedium,
			Personas: []string{"parent"}, PublishedDate: time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "c3", Title: "Game telemetry", Category: "mobile-apps", Severity: domain.SeverityHigh,
			Personas: []string{"parent"}, PublishedDate: time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)},
	}

	cat, err := catalog.New(personas, cautions)
	if err != nil {
		t.Fatalf("Failed to build catalog: %v", err)
	}
	svc := feed.NewService(cat, session.NewMemStore(), feed.Config{})

	cfg := DefaultServerConfig()
	cfg.Port = 0 // ephemeral, the test never calls Start
	cfg.RateRPS = 1000
	cfg.RateBurst = 1000

	server, err := NewServer(cfg, svc, "test", httpContracts.SessionHealth{Backend: "memory"})
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	return server
}

func doRequest(t *testing.T, server *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)
	return rr
}

func TestCautions_NoPersonaSelected(t *testing.T) {
	server := newTestServer(t)

	rr := doRequest(t, server, "GET", "/cautions", "")

	if rr.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d: %s", rr.Code, rr.Body.String())
	}

	var errResp httpContracts.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("Failed to parse error response: %v", err)
	}
	if errResp.Code != httpContracts.CodeNoPersonaSelected {
		t.Errorf("Expected code %s, got %s", httpContracts.CodeNoPersonaSelected, errResp.Code)
	}
	if errResp.RequestID == "" || errResp.RequestID == "unknown" {
		t.Errorf("Expected a request id, got %q", errResp.RequestID)
	}
}

func TestSelectThenQueryCautions(t *testing.T) {
	server := newTestServer(t)

	rr := doRequest(t, server, "PUT", "/session/persona", `{"name":"parent"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("Select persona failed: %d %s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, server, "GET", "/cautions", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp httpContracts.CautionsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(resp.Cautions) != 2 {
		t.Fatalf("Expected 2 cautions for parent, got %d", len(resp.Cautions))
	}
	if resp.Cautions[0].ID != "c2" || resp.Cautions[1].ID != "c3" {
		t.Errorf("Catalog order not preserved: %+v", resp.Cautions)
	}
	if resp.Pagination.Pages != 1 || resp.Pagination.Total != 2 {
		t.Errorf("Unexpected pagination: %+v", resp.Pagination)
	}
	if resp.Pagination.HasNext || resp.Pagination.HasPrev {
		t.Errorf("Single page must have no next/prev: %+v", resp.Pagination)
	}
}

func TestSelectPersona_UnknownName(t *testing.T) {
	server := newTestServer(t)

	rr := doRequest(t, server, "PUT", "/session/persona", `{"name":"ghost"}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", rr.Code, rr.Body.String())
	}

	// Session must remain unselected
	rr = doRequest(t, server, "GET", "/session/persona", "")
	var sessResp httpContracts.SessionPersonaResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &sessResp); err != nil {
		t.Fatalf("Failed to parse session response: %v", err)
	}
	if sessResp.Selected != nil {
		t.Errorf("Expected no selection after failed select, got %+v", sessResp.Selected)
	}
}

func TestCautions_SeverityFilterAndValidation(t *testing.T) {
	server := newTestServer(t)

	doRequest(t, server, "PUT", "/session/persona", `{"name":"parent"}`)

	rr := doRequest(t, server, "GET", "/cautions?severity=high", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	var resp httpContracts.CautionsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(resp.Cautions) != 1 || resp.Cautions[0].ID != "c3" {
		t.Errorf("Expected only c3, got %+v", resp.Cautions)
	}

	rr = doRequest(t, server, "GET", "/cautions?severity=bogus", "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad severity, got %d", rr.Code)
	}
}

func TestCautionByID_DirectLinkWithoutPersona(t *testing.T) {
	server := newTestServer(t)

	rr := doRequest(t, server, "GET", "/cautions/c1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("Direct link must bypass persona scope, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, server, "GET", "/cautions/missing", "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown id, got %d", rr.Code)
	}
}

func TestStats_CatalogWide(t *testing.T) {
	server := newTestServer(t)

	doRequest(t, server, "PUT", "/session/persona", `{"name":"parent"}`)

	rr := doRequest(t, server, "GET", "/cautions/stats", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp httpContracts.StatsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	// Stats cover the whole 3-item catalog even though parent only sees 2
	if resp.Stats.TotalActive != 3 {
		t.Errorf("Expected catalog-wide total 3, got %d", resp.Stats.TotalActive)
	}
	if resp.Stats.BySeverity[domain.SeverityCritical] != 1 {
		t.Errorf("Expected 1 critical in catalog-wide stats, got %d", resp.Stats.BySeverity[domain.SeverityCritical])
	}
}

func TestPersonas_List(t *testing.T) {
	server := newTestServer(t)

	rr := doRequest(t, server, "GET", "/personas", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if ctype := rr.Header().Get("Content-Type"); ctype != "application/json" {
		t.Errorf("Expected JSON content type, got %q", ctype)
	}

	var resp httpContracts.PersonasResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(resp.Personas) != 2 {
		t.Errorf("Expected 2 personas, got %d", len(resp.Personas))
	}
}

func TestHealth(t *testing.T) {
	server := newTestServer(t)

	rr := doRequest(t, server, "GET", "/health", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var resp httpContracts.HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("Expected healthy, got %s", resp.Status)
	}
	if resp.Catalog.Cautions != 3 || resp.Catalog.Personas != 2 {
		t.Errorf("Unexpected catalog health: %+v", resp.Catalog)
	}
}

func TestUnknownEndpoint(t *testing.T) {
	server := newTestServer(t)

	rr := doRequest(t, server, "GET", "/nope", "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown endpoint, got %d", rr.Code)
	}
}
