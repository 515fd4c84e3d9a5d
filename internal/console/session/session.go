package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store persists the admin bearer token between console runs. It is the
// only client-side state that survives a restart.
type Store struct {
	path string

	mu    sync.Mutex
	token string
}

type sessionFile struct {
	Token string `json:"token"`
}

func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath places the session file under the user's home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".bgmsons", "session.json"), nil
}

// Load reads the persisted token. A missing file is not an error; it
// just means nobody is logged in.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.token = ""
			return nil
		}
		return err
	}

	var f sessionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	s.token = f.Token
	return nil
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// SetToken stores the token and persists it immediately.
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(sessionFile{Token: token})
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return err
	}
	s.token = token
	return nil
}

// Clear purges the token, both in memory and on disk. Used on logout
// and whenever the server rejects the session.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
