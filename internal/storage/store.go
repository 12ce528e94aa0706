package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// Store manages the durable client-local state file. It holds the token pair,
// the remember-me convenience entries and the language preference under the
// shared key names in keys.go.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store backed by a JSON file under baseDir.
// If baseDir is empty, uses ~/.vendorctl/
func NewStore(baseDir string) (*Store, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".vendorctl")
	}

	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	store := &Store{path: filepath.Join(baseDir, "state.json")}

	log.Debug().Str("path", store.path).Msg("state store initialized")

	return store, nil
}

// Dir returns the directory holding the state file.
func (s *Store) Dir() string {
	return filepath.Dir(s.path)
}

// SetTokens overwrites both tokens in a single save so other readers never
// observe one without the other.
func (s *Store) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.load()
	state[KeyAuthToken] = access
	state[KeyRefreshToken] = refresh
	return s.save(state)
}

// AccessToken returns the stored access token, or "" when absent. A token
// pair missing either half reads as absent.
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.load()
	if state[KeyAuthToken] == "" || state[KeyRefreshToken] == "" {
		return ""
	}
	return state[KeyAuthToken]
}

// RefreshToken returns the stored refresh token, or "" when absent.
func (s *Store) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.load()
	if state[KeyAuthToken] == "" || state[KeyRefreshToken] == "" {
		return ""
	}
	return state[KeyRefreshToken]
}

// ClearTokens removes both tokens. Idempotent.
func (s *Store) ClearTokens() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.load()
	delete(state, KeyAuthToken)
	delete(state, KeyRefreshToken)
	return s.save(state)
}

// SetRememberedIdentifier persists the login identifier for pre-filling the
// next login. Convenience state only, not a credential.
func (s *Store) SetRememberedIdentifier(identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.load()
	state[KeyRememberMe] = "true"
	state[KeyUserEmail] = identifier
	return s.save(state)
}

// RememberedIdentifier returns the remembered identifier and whether
// remember-me is set.
func (s *Store) RememberedIdentifier() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.load()
	if state[KeyRememberMe] != "true" {
		return "", false
	}
	return state[KeyUserEmail], true
}

// ClearRememberedIdentifier removes the remember-me entries. Idempotent.
func (s *Store) ClearRememberedIdentifier() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.load()
	delete(state, KeyRememberMe)
	delete(state, KeyUserEmail)
	return s.save(state)
}

// SetLanguage persists the locale code.
func (s *Store) SetLanguage(lang string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.load()
	state[KeyLanguage] = lang
	return s.save(state)
}

// Language returns the stored locale code, or "" when unset.
func (s *Store) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()[KeyLanguage]
}

// load reads the state file. A missing or unreadable file reads as empty
// state so getters never fail.
func (s *Store) load() map[string]string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", s.path).Msg("failed to read state file")
		}
		return map[string]string{}
	}

	var state map[string]string
	if err := json.Unmarshal(data, &state); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("failed to parse state file")
		return map[string]string{}
	}
	if state == nil {
		state = map[string]string{}
	}

	return state
}

// save writes the state file atomically via a temp file rename.
func (s *Store) save(state map[string]string) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save state: %w", err)
	}

	return nil
}
