package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the requested persona or caution item does not exist
// in the catalog. Surfaced to callers as a terminal "not found" state.
var ErrNotFound = errors.New("not found")

// ErrNoPersonaSelected indicates a caution query or stats call was made with
// no active persona. Callers are expected to route the user to persona
// selection rather than render an error.
var ErrNoPersonaSelected = errors.New("no persona selected")

// ValidationError reports malformed input: an unknown severity, a bad page
// number, a catalog integrity violation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}
