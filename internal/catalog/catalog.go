package catalog

import (
	"fmt"

	"github.com/socialcaution/cautiond/internal/domain"
)

// Catalog holds the static persona and caution data the service runs
// against. Catalogs are injected at construction and read-only afterwards;
// insertion order is preserved everywhere it is observable.
type Catalog struct {
	personas []domain.Persona
	cautions []domain.CautionItem

	personaIdx map[string]int
	cautionIdx map[string]int
}

// New validates the supplied catalogs and builds lookup indexes. Duplicate
// persona names or caution IDs, unknown severities, and caution items that
// reference undefined personas are all rejected.
func New(personas []domain.Persona, cautions []domain.CautionItem) (*Catalog, error) {
	c := &Catalog{
		personas:   personas,
		cautions:   cautions,
		personaIdx: make(map[string]int, len(personas)),
		cautionIdx: make(map[string]int, len(cautions)),
	}

	for i, p := range personas {
		if p.Name == "" {
			return nil, &domain.ValidationError{Field: "persona.name", Reason: fmt.Sprintf("persona at index %d has no name", i)}
		}
		if _, dup := c.personaIdx[p.Name]; dup {
			return nil, &domain.ValidationError{Field: "persona.name", Reason: fmt.Sprintf("duplicate persona %q", p.Name)}
		}
		c.personaIdx[p.Name] = i
	}

	for i, item := range cautions {
		if item.ID == "" {
			return nil, &domain.ValidationError{Field: "caution.id", Reason: fmt.Sprintf("caution at index %d has no id", i)}
		}
		if _, dup := c.cautionIdx[item.ID]; dup {
			return nil, &domain.ValidationError{Field: "caution.id", Reason: fmt.Sprintf("duplicate caution id %q", item.ID)}
		}
		if !item.Severity.Valid() {
			return nil, &domain.ValidationError{Field: "caution.severity", Reason: fmt.Sprintf("caution %q has unknown severity %q", item.ID, item.Severity)}
		}
		for _, name := range item.Personas {
			if _, ok := c.personaIdx[name]; !ok {
				return nil, &domain.ValidationError{Field: "caution.personas", Reason: fmt.Sprintf("caution %q references undefined persona %q", item.ID, name)}
			}
		}
		c.cautionIdx[item.ID] = i
	}

	return c, nil
}

// Personas returns the active personas in catalog order. Inactive personas
// are never selectable and never listed.
func (c *Catalog) Personas() []domain.Persona {
	out := make([]domain.Persona, 0, len(c.personas))
	for _, p := range c.personas {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out
}

// PersonaByName resolves an active persona by its slug. The match is exact
// and case-sensitive.
func (c *Catalog) PersonaByName(name string) (domain.Persona, error) {
	if i, ok := c.personaIdx[name]; ok && c.personas[i].IsActive {
		return c.personas[i], nil
	}
	return domain.Persona{}, fmt.Errorf("persona %q: %w", name, domain.ErrNotFound)
}

// Cautions returns the full caution catalog in insertion order. Callers must
// treat the slice as read-only.
func (c *Catalog) Cautions() []domain.CautionItem {
	return c.cautions
}

// CautionByID resolves a caution item by its unique id. Direct-by-id lookup
// intentionally bypasses persona scoping so shared links keep working no
// matter which persona the viewer selected.
func (c *Catalog) CautionByID(id string) (domain.CautionItem, error) {
	if i, ok := c.cautionIdx[id]; ok {
		return c.cautions[i], nil
	}
	return domain.CautionItem{}, fmt.Errorf("caution %q: %w", id, domain.ErrNotFound)
}

// Categories returns the distinct category tags present across the caution
// catalog, in first-seen order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool, len(c.cautions))
	var out []string
	for _, item := range c.cautions {
		if !seen[item.Category] {
			seen[item.Category] = true
			out = append(out, item.Category)
		}
	}
	return out
}

// Size returns the total number of caution items in the catalog.
func (c *Catalog) Size() int {
	return len(c.cautions)
}
