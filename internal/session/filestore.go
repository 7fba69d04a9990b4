package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tosmel2/Monivoza/internal/core"
)

// FileStore keeps the session in a single JSON file. Writes go to a
// temp file first and are renamed into place, so a crash mid-write
// leaves the previous state intact.
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store backed by the given path. The parent
// directory is created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

type fileState struct {
	AuthToken string     `json:"auth_token"`
	User      *core.User `json:"user"`
}

func (fs *FileStore) Load() (Session, bool, error) {
	f, err := os.Open(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, false, nil
		}
		return Session{}, false, fmt.Errorf("open session file: %w", err)
	}
	defer f.Close()

	var state fileState
	if err := json.NewDecoder(f).Decode(&state); err != nil {
		return Session{}, false, fmt.Errorf("decode session file: %w", err)
	}
	if state.AuthToken == "" || state.User == nil {
		return Session{}, false, nil
	}
	return Session{Token: state.AuthToken, User: *state.User}, true, nil
}

func (fs *FileStore) Save(s Session) error {
	if dir := filepath.Dir(fs.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create session directory: %w", err)
		}
	}

	tmp := fs.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create session temp file: %w", err)
	}

	user := s.User
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fileState{AuthToken: s.Token, User: &user}); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode session: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close session temp file: %w", err)
	}

	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (fs *FileStore) Clear() error {
	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
