package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

type (
	// Store is the durable storage of the single session record; the local
	// storage analog of the web client. Implementations must be safe for
	// concurrent use within one process; cross-process writes are last-wins.
	Store interface {
		// Load returns the stored session, or nil when absent.
		// Corrupt records are discarded, never surfaced as an error.
		Load() *User
		Save(usr User) error
		Clear() error
		// Token reads the current token straight from storage so that callers
		// always see the freshest value, even when another part of the app
		// logged in after they were constructed.
		Token() string
	}

	fileStore struct {
		mu   sync.Mutex
		path string
	}
)

var _ Store = (*fileStore)(nil)

// NewFileStore persists the session record as a single JSON file at path.
func NewFileStore(path string) Store {
	return &fileStore{path: path}
}

func (s *fileStore) Load() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *fileStore) load() *User {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	usr := new(User)
	if err := json.Unmarshal(data, usr); err != nil {
		// corrupt storage must never crash the app; treat as logged out
		return nil
	}
	return usr
}

func (s *fileStore) Save(usr User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(usr, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshalling session")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "creating session dir")
	}

	// write-then-rename so readers never observe a half-written record
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "writing session")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "committing session")
	}
	return nil
}

func (s *fileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "clearing session")
	}
	return nil
}

func (s *fileStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if usr := s.load(); usr != nil {
		return usr.Token
	}
	return ""
}
