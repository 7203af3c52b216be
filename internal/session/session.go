// Copyright (c) 2026 Keymaster Team
// Usersession - in-memory user login state
// This source code is licensed under the MIT license found in the LICENSE file.

// Package session holds the in-memory login state of a single user and
// notifies registered observers whenever that state changes.
//
// Credential checking happens elsewhere; a UserSession only records the
// outcome. It is safe to read from multiple goroutines, but writers are
// expected to be serialized by the owner.
package session

import (
	"fmt"
	"sync"

	"github.com/toeirei/usersession/internal/logging"
	"github.com/toeirei/usersession/util/slicest"
)

// State is a point-in-time copy of a session.
type State struct {
	LoggedIn bool
	Username string
}

func (s State) String() string {
	if !s.LoggedIn {
		return "logged out"
	}
	return fmt.Sprintf("logged in as %q", s.Username)
}

type observer struct {
	id uint64
	fn func()
}

// UserSession records whether a user is logged in and as whom.
// The zero value is a logged out session with no observers.
type UserSession struct {
	mu    sync.RWMutex
	state State
	// observers is copy-on-write; notify works on the slice header taken
	// under the lock.
	observers []observer
	nextID    uint64
}

// New returns a logged out session.
func New() *UserSession {
	return &UserSession{}
}

// IsLoggedIn reports whether a user has been set since the last logout.
func (s *UserSession) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.LoggedIn
}

// Username returns the current user, or "" when logged out.
func (s *UserSession) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Username
}

// Snapshot returns the login flag and username as one consistent value.
func (s *UserSession) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SetUser marks username as logged in and notifies observers.
// Any string is accepted, including "".
func (s *UserSession) SetUser(username string) {
	s.apply(State{LoggedIn: true, Username: username})
}

// Logout clears the user and notifies observers. Observers are notified
// even when the session was already logged out.
func (s *UserSession) Logout() {
	s.apply(State{})
}

func (s *UserSession) apply(next State) {
	s.mu.Lock()
	s.state = next
	observers := s.observers
	s.mu.Unlock()

	logging.Debugf("session %s, notifying %d observer(s)", next, len(observers))
	notify(observers)
}

// notify calls every observer in registration order. A panicking observer
// stops the remaining ones and the panic reaches the caller.
func notify(observers []observer) {
	for _, o := range observers {
		o.fn()
	}
}

// OnChange registers fn to be called after every SetUser and Logout.
// Observers run synchronously on the caller's goroutine, in registration
// order. The returned cancel func removes fn; calling it again is a no-op.
// A nil fn is ignored.
func (s *UserSession) OnChange(fn func()) (cancel func()) {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	observers := make([]observer, len(s.observers), len(s.observers)+1)
	copy(observers, s.observers)
	s.observers = append(observers, observer{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

func (s *UserSession) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = slicest.Filter(s.observers, func(o observer) bool {
		return o.id != id
	})
}

// Observers returns the number of registered observers.
func (s *UserSession) Observers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}
