// Package feed is the query layer of the caution service: persona selection,
// persona-scoped caution queries, and catalog-wide stats. It is the Go
// rendition of the demo API the SocialCaution site ships in place of a real
// backend.
package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/socialcaution/cautiond/internal/catalog"
	"github.com/socialcaution/cautiond/internal/domain"
	"github.com/socialcaution/cautiond/internal/session"
)

// recentWindow is the trailing window used for CautionStats.RecentCount.
const recentWindow = 7 * 24 * time.Hour

// Config tunes service behavior.
type Config struct {
	// Latency is an artificial delay applied to every call, simulating the
	// network round-trip the original demo faked in the browser. Zero
	// disables it.
	Latency time.Duration
	// Now overrides the clock, used by stats tests. Defaults to time.Now.
	Now func() time.Time
}

// Service answers persona and caution queries against injected read-only
// catalogs, with the selected persona held in a session store.
type Service struct {
	catalog  *catalog.Catalog
	sessions session.Store
	latency  time.Duration
	now      func() time.Time
}

// NewService wires the query layer to its catalog and session store.
func NewService(cat *catalog.Catalog, sessions session.Store, cfg Config) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		catalog:  cat,
		sessions: sessions,
		latency:  cfg.Latency,
		now:      now,
	}
}

// simulate blocks for the configured artificial latency, honoring context
// cancellation. Calls either resolve or fail once; nothing is retried.
func (s *Service) simulate(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Personas lists the selectable personas in catalog order.
func (s *Service) Personas(ctx context.Context) ([]domain.Persona, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	return s.catalog.Personas(), nil
}

// PersonaByName resolves one active persona by slug.
func (s *Service) PersonaByName(ctx context.Context, name string) (domain.Persona, error) {
	if err := s.simulate(ctx); err != nil {
		return domain.Persona{}, err
	}
	return s.catalog.PersonaByName(name)
}

// SelectPersona validates the name against the active catalog, then persists
// it as the session's selected persona. A failed validation leaves the
// session untouched. Reselecting the current persona is a no-op beyond the
// write; concurrent selects are last-writer-wins.
func (s *Service) SelectPersona(ctx context.Context, name string) (domain.Persona, error) {
	if err := s.simulate(ctx); err != nil {
		return domain.Persona{}, err
	}

	persona, err := s.catalog.PersonaByName(name)
	if err != nil {
		return domain.Persona{}, err
	}

	sess, err := s.sessions.Load()
	if err != nil {
		return domain.Persona{}, fmt.Errorf("failed to load session: %w", err)
	}
	sess.Select(persona.Name)
	if err := s.sessions.Save(sess); err != nil {
		return domain.Persona{}, fmt.Errorf("failed to persist persona selection: %w", err)
	}

	log.Info().Str("persona", persona.Name).Msg("Persona selected")
	return persona, nil
}

// CurrentPersona returns the selected persona, or nil when none is selected.
// This is the one query allowed to report "no persona" without an error,
// since callers use it to decide whether to route to persona selection. A
// stored name that no longer resolves to an active persona also reads as nil.
func (s *Service) CurrentPersona(ctx context.Context) (*domain.Persona, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	sess, err := s.sessions.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if sess.SelectedPersona == "" {
		return nil, nil
	}

	persona, err := s.catalog.PersonaByName(sess.SelectedPersona)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Warn().Str("persona", sess.SelectedPersona).Msg("Stored persona no longer in catalog, treating as unselected")
			return nil, nil
		}
		return nil, err
	}
	return &persona, nil
}

// ClearPersona removes the persona selection from the session.
func (s *Service) ClearPersona(ctx context.Context) error {
	if err := s.simulate(ctx); err != nil {
		return err
	}

	sess, err := s.sessions.Load()
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	sess.Select("")
	return s.sessions.Save(sess)
}

// requirePersona resolves the selected persona or fails with
// ErrNoPersonaSelected, the precondition shared by caution queries and stats.
func (s *Service) requirePersona() (domain.Persona, error) {
	sess, err := s.sessions.Load()
	if err != nil {
		return domain.Persona{}, fmt.Errorf("failed to load session: %w", err)
	}
	if sess.SelectedPersona == "" {
		return domain.Persona{}, domain.ErrNoPersonaSelected
	}
	persona, err := s.catalog.PersonaByName(sess.SelectedPersona)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Persona{}, domain.ErrNoPersonaSelected
		}
		return domain.Persona{}, err
	}
	return persona, nil
}

// QueryCautions returns the page of caution items matching the selected
// persona and the optional filters. Filters apply in a fixed order: persona
// membership, category, severity, then startDate. Catalog order is
// preserved; results are deliberately not re-sorted by date or severity,
// matching the behavior the site's feed always had.
func (s *Service) QueryCautions(ctx context.Context, filter domain.CautionFilter, page domain.Page) (domain.PageResult, error) {
	if err := s.simulate(ctx); err != nil {
		return domain.PageResult{}, err
	}

	persona, err := s.requirePersona()
	if err != nil {
		return domain.PageResult{}, err
	}

	if filter.Severity != "" && !filter.Severity.Valid() {
		return domain.PageResult{}, &domain.ValidationError{Field: "severity", Reason: fmt.Sprintf("unknown severity %q", filter.Severity)}
	}

	var matched []domain.CautionItem
	for _, item := range s.catalog.Cautions() {
		if !item.AppliesTo(persona.Name) {
			continue
		}
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.Severity != "" && item.Severity != filter.Severity {
			continue
		}
		if !filter.StartDate.IsZero() && item.PublishedDate.Before(filter.StartDate) {
			continue
		}
		matched = append(matched, item)
	}

	return paginate(matched, page), nil
}

// paginate slices the filtered result. Page numbers are 1-indexed; a page
// past the end is an empty page, not an error.
func paginate(items []domain.CautionItem, page domain.Page) domain.PageResult {
	number := page.Number
	if number < 1 {
		number = 1
	}
	limit := page.Limit
	if limit < 1 {
		limit = domain.DefaultPageLimit
	}

	total := len(items)
	pages := (total + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}

	start := (number - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return domain.PageResult{
		Items: items[start:end],
		Pagination: domain.Pagination{
			Total: total,
			Page:  number,
			Limit: limit,
			Pages: pages,
		},
	}
}

// CautionByID resolves one caution item by id. The lookup is not persona
// scoped: direct links shared between users resolve regardless of the
// viewer's selection.
func (s *Service) CautionByID(ctx context.Context, id string) (domain.CautionItem, error) {
	if err := s.simulate(ctx); err != nil {
		return domain.CautionItem{}, err
	}
	return s.catalog.CautionByID(id)
}

// Stats aggregates the caution catalog. It requires a selected persona, but
// the counts themselves cover the ENTIRE catalog, not the persona's subset:
// the feed is personalized while the stats panel shows the full threat
// landscape. Do not change this to persona-scoped counts without a product
// decision.
func (s *Service) Stats(ctx context.Context) (domain.CautionStats, error) {
	if err := s.simulate(ctx); err != nil {
		return domain.CautionStats{}, err
	}

	if _, err := s.requirePersona(); err != nil {
		return domain.CautionStats{}, err
	}

	stats := domain.CautionStats{
		BySeverity: make(map[domain.Severity]int, 4),
		ByCategory: make(map[string]int),
	}
	for _, sev := range domain.Severities() {
		stats.BySeverity[sev] = 0
	}

	cutoff := s.now().Add(-recentWindow)
	for _, item := range s.catalog.Cautions() {
		stats.BySeverity[item.Severity]++
		stats.ByCategory[item.Category]++
		if !item.PublishedDate.Before(cutoff) {
			stats.RecentCount++
		}
		stats.TotalActive++
	}
	return stats, nil
}

// CatalogSize returns the number of caution items loaded.
func (s *Service) CatalogSize() int {
	return s.catalog.Size()
}

// PersonaCount returns the number of active personas loaded.
func (s *Service) PersonaCount() int {
	return len(s.catalog.Personas())
}

// Categories lists the distinct category tags present across the catalog.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	return s.catalog.Categories(), nil
}
