package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/socialcaution/cautiond/internal/domain"
)

// FileStore persists the session as one JSON blob at a fixed path. Writes
// replace the whole blob, so there are no partial-write states for callers
// to reason about.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

// NewFileStore creates a file-backed session store, creating the parent
// directory if needed.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Load reads the stored session. A missing file yields the default session;
// a corrupt file is treated the same way (fail open) rather than surfacing a
// parse error, since the session is a non-critical client cache.
func (s *FileStore) Load() (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSession(), nil
		}
		return domain.Session{}, fmt.Errorf("failed to read session file: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		log.Warn().Str("path", s.path).Err(err).Msg("Session file corrupt, falling back to default session")
		return DefaultSession(), nil
	}
	return sess, nil
}

// Save serializes the full session back to the store path.
func (s *FileStore) Save(sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Path returns the location of the session blob.
func (s *FileStore) Path() string {
	return s.path
}
