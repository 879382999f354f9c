package session

import (
	"sync"

	"github.com/socialcaution/cautiond/internal/domain"
)

// MemStore keeps the session in memory only. Used by tests and by
// `serve --ephemeral`, where persona selection should not outlive the
// process.
type MemStore struct {
	mu   sync.RWMutex
	sess *domain.Session
}

// NewMemStore returns an empty in-memory session store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Load() (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sess == nil {
		return DefaultSession(), nil
	}
	return *s.sess, nil
}

func (s *MemStore) Save(sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = &sess
	return nil
}
