// Package session persists browser cookies between runs so subsequent
// requests can skip the login flow.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"uigen-bridge/internal/application/port/output"
	"uigen-bridge/internal/domain/entity"
)

var _ output.SessionStore = (*FileStore)(nil)

type FileStore struct {
	path   string
	logger output.LoggerPort
}

func NewFileStore(path string, logger output.LoggerPort) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Load reads the persisted session. A missing, unreadable, or corrupt
// file means "no session" (nil, nil), never a hard error: the caller
// falls back to a fresh login.
func (s *FileStore) Load() (*entity.SessionState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("Session file unreadable, treating as absent", "path", s.path, "error", err)
		}
		return nil, nil
	}

	var state entity.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.Warn("Session file corrupt, treating as absent", "path", s.path, "error", err)
		return nil, nil
	}
	return &state, nil
}

// Save overwrites the session file atomically (write to a temp file in
// the same directory, then rename) so a concurrent Load never observes a
// partial write.
func (s *FileStore) Save(state *entity.SessionState) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tmpPath := tmp.Name()

	ok := false
	defer func() {
		if !ok {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("rename session: %w", err)
	}
	ok = true
	return nil
}
