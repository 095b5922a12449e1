// Package session holds the per-user Session/Profile Context: the signed-in
// identity, the cached profile, the chosen role and per-screen view state.
// A session is created at sign-in and torn down at sign-out.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"landlink/entities"
)

var (
	ErrNoSession   = errors.New("no active session")
	ErrBusy        = errors.New("operation already in progress")
	ErrInvalidRole = errors.New("role must be farmer or landowner")
)

// ProfileLoader is the slice of the profile repository a session needs.
type ProfileLoader interface {
	FindProfile(ctx context.Context, id string) (*entities.Profile, error)
}

type Session struct {
	uid    string
	loader ProfileLoader

	mu      sync.RWMutex
	profile *entities.Profile
	role    entities.Role
	editing map[string]bool
	busy    map[string]bool
}

func newSession(uid string, loader ProfileLoader) *Session {
	return &Session{uid: uid, loader: loader, editing: map[string]bool{}, busy: map[string]bool{}}
}

func (s *Session) UserID() string { return s.uid }

// Profile returns a copy of the cached profile, or nil if none exists yet.
func (s *Session) Profile() *entities.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// Refresh reloads the cached profile from the backend.
func (s *Session) Refresh(ctx context.Context) error {
	p, err := s.loader.FindProfile(ctx, s.uid)
	if err != nil {
		return fmt.Errorf("refresh profile: %w", err)
	}
	s.mu.Lock()
	s.profile = p
	if s.role == "" && p != nil {
		s.role = p.Role
	}
	s.mu.Unlock()
	return nil
}

func (s *Session) Role() entities.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

func (s *Session) SelectRole(r entities.Role) error {
	if r != entities.RoleFarmer && r != entities.RoleLandowner {
		return ErrInvalidRole
	}
	s.mu.Lock()
	s.role = r
	s.mu.Unlock()
	return nil
}

// Begin marks op as in flight. The returned func releases it; a second Begin
// for the same op before release fails with ErrBusy.
func (s *Session) Begin(op string) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy[op] {
		return nil, fmt.Errorf("%s: %w", op, ErrBusy)
	}
	s.busy[op] = true
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.busy, op)
			s.mu.Unlock()
		})
	}, nil
}

func (s *Session) Busy(op string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy[op]
}

// ToggleEditing flips the edit mode of a dashboard view and returns the new state.
func (s *Session) ToggleEditing(view string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing[view] = !s.editing[view]
	return s.editing[view]
}

func (s *Session) SetEditing(view string, on bool) {
	s.mu.Lock()
	s.editing[view] = on
	s.mu.Unlock()
}

func (s *Session) Editing(view string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.editing[view]
}
