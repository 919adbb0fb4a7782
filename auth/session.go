// Package auth keeps the signed-in user's session and issues/verifies the
// bearer tokens used by the API.
package auth

import (
	"errors"
	"log"
	"sync"
)

// StorageKey is the fixed key sessions are persisted under.
const StorageKey = "stockchef_auth"

// ErrNoSession is returned by stores that hold nothing yet.
var ErrNoSession = errors.New("no session")

// State is what a session remembers about the signed-in user.
type State struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
}

// LoggedIn reports whether the state carries a token.
func (s State) LoggedIn() bool { return s.Token != "" }

// Store persists a State. Load returns ErrNoSession when nothing is stored.
type Store interface {
	Load() (State, error)
	Save(State) error
	Clear() error
}

// Session is the in-process view of the persisted state. It is hydrated
// once from its Store, written back on every change and cleared on logout
// or when the API rejects the token.
type Session struct {
	mu    sync.RWMutex
	store Store
	state State
}

// NewSession hydrates a session from store. A missing or unreadable state
// starts signed out.
func NewSession(store Store) *Session {
	s := &Session{store: store}
	st, err := store.Load()
	switch {
	case err == nil:
		s.state = st
	case errors.Is(err, ErrNoSession):
	default:
		log.Printf("session: discarding unreadable state: %v", err)
	}
	return s
}

// State returns a copy of the current state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) Token() string { return s.State().Token }

func (s *Session) Role() Role { return s.State().Role }

// Set replaces the state and persists it.
func (s *Session) Set(st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
	return s.store.Save(st)
}

// Clear signs out and removes the persisted state.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
	return s.store.Clear()
}

// HasRole reports whether the signed-in user has one of roles.
func (s *Session) HasRole(roles ...Role) bool {
	r := s.Role()
	if r == "" {
		return false
	}
	for _, want := range roles {
		if r == want {
			return true
		}
	}
	return false
}
