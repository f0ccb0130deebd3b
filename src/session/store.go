package session

import (
	"encoding/json"
	"fmt"
	"os"
)

// FileStore persists the session between process runs so sign-in survives
// until an explicit sign-out. Saving nil clears the stored session.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Save(sess *Session) error {
	if sess == nil {
		return s.Clear()
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("Save: failed to marshal session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("Save: failed to write %s: %w", s.path, err)
	}

	return nil
}

// Load returns the stored session, or nil when none is stored.
func (s *FileStore) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("Load: failed to read %s: %w", s.path, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("Load: failed to unmarshal %s: %w", s.path, err)
	}

	return &sess, nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("Clear: failed to remove %s: %w", s.path, err)
	}

	return nil
}
