// Package session owns the one mutable fact in the system: which persona is
// currently selected. The durable representation is a single JSON blob, the
// server-side stand-in for the browser localStorage slot the original demo
// used.
package session

import "github.com/socialcaution/cautiond/internal/domain"

// Store abstracts session persistence so the query layer can be tested
// against an in-memory fake instead of a real file.
type Store interface {
	// Load returns the persisted session, or a fresh default session when
	// nothing usable is stored. Load never fails on corrupt data.
	Load() (domain.Session, error)
	// Save atomically replaces the persisted session.
	Save(domain.Session) error
}

// DefaultSession returns the session used before anything has been saved:
// the demo user with no persona selected.
func DefaultSession() domain.Session {
	return domain.Session{
		User: domain.User{
			ID:        "demo-user",
			FirstName: "Demo",
			LastName:  "User",
			Email:     "demo@socialcaution.example",
		},
	}
}
