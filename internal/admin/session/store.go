package session

import (
	"context"
	"errors"
	"sync"

	"github.com/transellia/admin-console/internal/admin/models"
	"github.com/transellia/admin-console/internal/logging"
)

var ErrIncompleteSession = errors.New("session requires both user and token")

// Snapshot is a point-in-time copy of the session state. An empty Token means
// "no token".
type Snapshot struct {
	User            *models.User
	Token           string
	IsAuthenticated bool
	IsLoading       bool
}

// Store owns the session state. It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	state     Snapshot
	persister Persister
	logger    logging.Logger
	initOnce  sync.Once

	listenersMu sync.Mutex
	listeners   map[int]func(Snapshot)
	nextID      int
}

// NewStore returns an empty, logged-out store that is still loading.
func NewStore(p Persister, logger logging.Logger) *Store {
	return &Store{
		state:     Snapshot{IsLoading: true},
		persister: p,
		logger:    logger.With("component", "session"),
		listeners: make(map[int]func(Snapshot)),
	}
}

// Init rehydrates the store from the persister. Only the first call does any
// work; IsLoading is false afterwards whatever the outcome.
func (s *Store) Init(ctx context.Context) {
	s.initOnce.Do(func() { s.rehydrate(ctx) })
}

func (s *Store) rehydrate(ctx context.Context) {
	p, err := s.persister.Load(ctx)

	s.mu.Lock()
	restored := err == nil && p != nil && p.complete()
	if restored {
		u := *p.User
		s.state.User = &u
		s.state.Token = *p.Token
		s.state.IsAuthenticated = true
	}
	s.state.IsLoading = false
	snap := s.copyLocked()
	s.mu.Unlock()

	switch {
	case err != nil:
		s.logger.Warn(ctx, "persisted session unreadable, starting logged out", "error", err)
	case p == nil:
		s.logger.Debug(ctx, "no persisted session")
	case !restored:
		s.logger.Info(ctx, "persisted session incomplete, starting logged out")
	default:
		s.logger.Info(ctx, "session restored", "user", snap.User.Email)
	}

	s.notify(snap)
}

// Login atomically stores user and token and marks the session authenticated
// and not loading. An empty token is rejected with ErrIncompleteSession and
// leaves the state untouched.
func (s *Store) Login(ctx context.Context, user models.User, token string) error {
	if token == "" {
		return ErrIncompleteSession
	}
	s.update(ctx, true, func(st *Snapshot) {
		st.User = &user
		st.Token = token
		st.IsAuthenticated = true
		st.IsLoading = false
	})
	return nil
}

// Logout atomically clears the identity. Calling it repeatedly is harmless.
func (s *Store) Logout(ctx context.Context) {
	s.update(ctx, true, func(st *Snapshot) {
		*st = Snapshot{}
	})
}

// SetLoading toggles the loading flag. It is never persisted.
func (s *Store) SetLoading(loading bool) {
	s.update(context.Background(), false, func(st *Snapshot) {
		st.IsLoading = loading
	})
}

// SetUser replaces the user (nil clears it) and recomputes IsAuthenticated.
func (s *Store) SetUser(ctx context.Context, user *models.User) {
	s.update(ctx, true, func(st *Snapshot) {
		if user == nil {
			st.User = nil
		} else {
			u := *user
			st.User = &u
		}
		st.IsAuthenticated = st.User != nil && st.Token != ""
	})
}

// SetToken replaces the token ("" clears it) and recomputes IsAuthenticated.
func (s *Store) SetToken(ctx context.Context, token string) {
	s.update(ctx, true, func(st *Snapshot) {
		st.Token = token
		st.IsAuthenticated = st.User != nil && st.Token != ""
	})
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

// Token returns the current bearer token or "".
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// Subscribe registers fn to be called with the new snapshot after every
// mutation. The returned function unregisters it.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, id)
		s.listenersMu.Unlock()
	}
}

// update applies fn under the write lock. Persisting happens under the same
// lock so the stored snapshot always follows mutation order.
func (s *Store) update(ctx context.Context, persist bool, fn func(*Snapshot)) {
	s.mu.Lock()
	fn(&s.state)
	snap := s.copyLocked()
	if persist {
		if err := s.persister.Save(ctx, toPersisted(snap)); err != nil {
			s.logger.Error(ctx, "failed to persist session", "error", err)
		}
	}
	s.mu.Unlock()

	s.notify(snap)
}

func (s *Store) copyLocked() Snapshot {
	snap := s.state
	if s.state.User != nil {
		u := *s.state.User
		snap.User = &u
	}
	return snap
}

func (s *Store) notify(snap Snapshot) {
	s.listenersMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenersMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
