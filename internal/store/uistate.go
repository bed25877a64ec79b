package store

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
)

// AuthMode selects which form the auth modal shows.
type AuthMode string

const (
	AuthModeLogin  AuthMode = "login"
	AuthModeSignup AuthMode = "signup"
)

// DefaultAuthMode is the mode a fresh UIState starts in.
const DefaultAuthMode = AuthModeLogin

// ErrInvalidAuthMode is returned by ParseAuthMode for unknown modes.
var ErrInvalidAuthMode = errors.New("invalid auth mode")

// ParseAuthMode converts s into an AuthMode. Matching is case-insensitive
// and ignores surrounding whitespace.
func ParseAuthMode(s string) (AuthMode, error) {
	switch AuthMode(strings.ToLower(strings.TrimSpace(s))) {
	case AuthModeLogin:
		return AuthModeLogin, nil
	case AuthModeSignup:
		return AuthModeSignup, nil
	default:
		return "", fmt.Errorf("%w: %q (expected %q or %q)", ErrInvalidAuthMode, s, AuthModeLogin, AuthModeSignup)
	}
}

// User is the identity of the signed-in user. Its shape belongs to whoever
// sets it; a nil User means nobody is signed in.
type User map[string]any

// UIState is the authentication UI state of one client.
//
// AuthMode only matters while ShowAuthModal is true. Nothing here enforces
// that; callers assign the values directly.
type UIState struct {
	User          *Value[User]
	ShowAuthModal *Value[bool]
	AuthMode      *Value[AuthMode]
}

// NewUIState returns state with no user, the modal hidden and login mode.
func NewUIState() *UIState {
	return &UIState{
		User:          NewValue[User](nil),
		ShowAuthModal: NewValue(false),
		AuthMode:      NewValue(DefaultAuthMode),
	}
}

// OpenAuthModal switches to mode and shows the modal.
func (s *UIState) OpenAuthModal(mode AuthMode) {
	s.AuthMode.Set(mode)
	s.ShowAuthModal.Set(true)
}

// CloseAuthModal hides the modal. The mode is left as is.
func (s *UIState) CloseAuthModal() {
	s.ShowAuthModal.Set(false)
}

// Snapshot is a point-in-time copy of a UIState.
type Snapshot struct {
	User          User     `json:"user"`
	ShowAuthModal bool     `json:"show_auth_modal"`
	AuthMode      AuthMode `json:"auth_mode"`
}

// Snapshot reads all three values.
func (s *UIState) Snapshot() Snapshot {
	return Snapshot{
		User:          s.User.Get(),
		ShowAuthModal: s.ShowAuthModal.Get(),
		AuthMode:      s.AuthMode.Get(),
	}
}

// Restore writes every field of snap back into the state, notifying
// subscribers of each value.
func (s *UIState) Restore(snap Snapshot) {
	mode := snap.AuthMode
	if mode == "" {
		mode = DefaultAuthMode
	}
	s.User.Set(snap.User)
	s.AuthMode.Set(mode)
	s.ShowAuthModal.Set(snap.ShowAuthModal)
}

// Subscribe calls fn with a fresh Snapshot whenever any of the three values
// changes, and once immediately.
func (s *UIState) Subscribe(fn func(Snapshot)) Unsubscribe {
	var ready atomic.Bool
	changed := func() {
		if ready.Load() {
			fn(s.Snapshot())
		}
	}

	unsubUser := s.User.Subscribe(func(User) { changed() })
	unsubModal := s.ShowAuthModal.Subscribe(func(bool) { changed() })
	unsubMode := s.AuthMode.Subscribe(func(AuthMode) { changed() })

	ready.Store(true)
	fn(s.Snapshot())

	return func() {
		unsubUser()
		unsubModal()
		unsubMode()
	}
}
