package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session mirrors the backend's auth response. The token is opaque to the
// client apart from its expiry claim.
type Session struct {
	Token string `json:"token"`
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Roles string `json:"roles"`
}

// Store is the process-wide session holder. It is hydrated once at startup,
// replaced wholesale by login/signup and cleared by logout. Fields are never
// mutated in place.
type Store struct {
	path    string
	mu      sync.RWMutex
	current *Session
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load hydrates the store from the session file. A missing file means no
// session and is not an error.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return fmt.Errorf("parse session file: %w", err)
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()
	return nil
}

// Set replaces the session and persists it.
func (s *Store) Set(sess Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()
	return nil
}

// Clear drops the session and removes the file.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// Current returns a copy of the session, or nil when not authenticated.
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	sess := *s.current
	return &sess
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

func (s *Store) IsAdmin() bool {
	sess := s.Current()
	if sess == nil {
		return false
	}
	return hasRole(sess.Roles, "ROLE_ADMIN")
}

// Expired reports whether the stored token carries an exp claim in the past.
// Tokens without parsable claims are treated as non-expiring; the backend is
// the authority and will answer 401 either way.
func (s *Store) Expired() bool {
	token := s.Token()
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

func hasRole(roles, want string) bool {
	for _, role := range strings.Split(roles, ",") {
		if strings.TrimSpace(role) == want {
			return true
		}
	}
	return false
}
