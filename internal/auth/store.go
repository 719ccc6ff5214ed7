// Package auth holds the session store: access/refresh tokens and the
// cached user profile. Consumers depend on the Store interface, never on
// ambient storage, so tests substitute an in-memory store.
package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Tokens is the bearer token pair issued by the auth endpoints.
type Tokens struct {
	Access  string `json:"amx_access"`
	Refresh string `json:"amx_refresh"`
}

// Profile is the cached user profile.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Store is the injectable session store. Writes are last-write-wins;
// there is no cross-process locking.
type Store interface {
	Tokens() Tokens
	SetTokens(Tokens)
	Profile() (Profile, bool)
	SetProfile(Profile)
	Clear()
}

// LoggedIn reports whether the store holds an access token. A profile
// may arrive later over push.
func LoggedIn(s Store) bool {
	return s.Tokens().Access != ""
}

// MemStore is an in-memory Store for tests and ephemeral sessions.
type MemStore struct {
	mu         sync.Mutex
	tokens     Tokens
	profile    Profile
	hasProfile bool
}

func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Tokens() Tokens {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens
}

func (s *MemStore) SetTokens(t Tokens) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = t
}

func (s *MemStore) Profile() (Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile, s.hasProfile
}

func (s *MemStore) SetProfile(p Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
	s.hasProfile = true
}

func (s *MemStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = Tokens{}
	s.profile = Profile{}
	s.hasProfile = false
}

// fileState is the on-disk layout; key names match the web client's.
type fileState struct {
	Access  string   `json:"amx_access,omitempty"`
	Refresh string   `json:"amx_refresh,omitempty"`
	Profile *Profile `json:"amx_profile,omitempty"`
}

// FileStore persists the session to a credentials file (0600).
type FileStore struct {
	mu    sync.Mutex
	path  string
	state fileState
}

// NewFileStore opens (or lazily creates) the credentials file at path.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	if err := json.Unmarshal(raw, &s.state); err != nil {
		return nil, fmt.Errorf("parse credentials %s: %w", path, err)
	}
	return s, nil
}

func (s *FileStore) Tokens() Tokens {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Tokens{Access: s.state.Access, Refresh: s.state.Refresh}
}

func (s *FileStore) SetTokens(t Tokens) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Access = t.Access
	s.state.Refresh = t.Refresh
	s.persist()
}

func (s *FileStore) Profile() (Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Profile == nil {
		return Profile{}, false
	}
	return *s.state.Profile, true
}

func (s *FileStore) SetProfile(p Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Profile = &p
	s.persist()
}

func (s *FileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fileState{}
	s.persist()
}

// persist writes the state out; callers hold the lock. Write failures
// leave the in-memory session intact.
func (s *FileStore) persist() {
	raw, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return
	}
	_ = os.MkdirAll(filepath.Dir(s.path), 0o700)
	_ = os.WriteFile(s.path, raw, 0o600)
}
