package session

import "sync"

// State is the authentication state visible to the rest of the process.
type State struct {
	// User is the signed-in operator, nil when unauthenticated.
	User *User
	// Loading is true while an auth-affecting operation is in flight.
	Loading bool
	// Err holds the last auth-operation failure message, "" when clear.
	Err string
	// Initialized becomes true once the identity-provider listener has
	// fired at least once (or a stored user has been adopted). It never
	// reverts; route guarding waits for it before redirecting.
	Initialized bool
}

// Store is the single source of truth for authentication state. All
// mutation goes through the transitions below; no caller touches the
// fields directly. Racing operations are resolved last-write-wins: the
// store does not queue or serialize them, callers are expected to issue
// at most one auth operation at a time.
type Store struct {
	mu    sync.Mutex
	state State
	subs  map[int]func(State)
	next  int
}

func NewStore() *Store {
	return &Store{subs: make(map[int]func(State))}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetUser replaces the user wholesale and marks the store initialized.
// This is the only transition besides Begin/Succeed that is allowed to
// flip Initialized.
func (s *Store) SetUser(u *User) {
	s.mu.Lock()
	s.state.User = u
	s.state.Initialized = true
	s.state.Loading = false
	s.state.Err = ""
	s.notifyLocked()
}

// SetInitialized marks the store initialized without touching the user.
// Used when the identity provider reports a live session but no stored
// user can be adopted, so the operator must re-login.
func (s *Store) SetInitialized() {
	s.mu.Lock()
	s.state.Initialized = true
	s.state.Loading = false
	s.notifyLocked()
}

// ClearError drops the last failure message.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.state.Err = ""
	s.notifyLocked()
}

// Begin opens an async operation bracket: loading on, error cleared.
func (s *Store) Begin() {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Err = ""
	s.notifyLocked()
}

// Succeed closes an operation bracket with a result. Login and register
// pass markInitialized so a first successful auth also settles the
// store; logout passes a nil user.
func (s *Store) Succeed(u *User, markInitialized bool) {
	s.mu.Lock()
	s.state.User = u
	s.state.Loading = false
	s.state.Err = ""
	if markInitialized {
		s.state.Initialized = true
	}
	s.notifyLocked()
}

// Fail closes an operation bracket with a failure message. The user is
// left as-is: a failed profile update must not sign the operator out.
func (s *Store) Fail(msg string) {
	s.mu.Lock()
	s.state.Loading = false
	s.state.Err = msg
	s.notifyLocked()
}

// Subscribe registers a listener called with a state snapshot after
// every transition. The returned function removes the listener.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// notifyLocked releases the lock and fans the snapshot out to the
// subscribers. Listeners run on the mutating goroutine.
func (s *Store) notifyLocked() {
	st := s.state
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(st)
	}
}
