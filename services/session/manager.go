package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"acadport/services/record"
)

// ErrSignedOut rejects a token issued before its user signed out.
var ErrSignedOut = errors.New("signed out, sign in again")

type Manager interface {
	// Open starts a new session for p, closing any session p already had. It is
	// the sign-in path and lifts an earlier sign-out.
	Open(p Principal) *Session
	// Ensure returns the open session of p, opening one if there is none. Tokens
	// issued before the last SignOut of p are refused with ErrSignedOut.
	Ensure(p Principal) (*Session, error)
	Get(uid string) (*Session, bool)
	// Close ends the session of uid. It reports whether there was one.
	Close(uid string) bool
	// SignOut closes the session of uid and refuses the tokens issued so far.
	SignOut(uid string) bool
	CloseAll()
}

type manager struct {
	ctx   context.Context
	store record.Store
	opts  Options

	mu        sync.Mutex
	sessions  map[string]*Session
	signedOut map[string]time.Time
}

var _ Manager = (*manager)(nil)

// NewManager creates a manager whose sessions subscribe to store for as long as
// ctx is alive.
func NewManager(ctx context.Context, store record.Store, opts Options) Manager {
	return &manager{
		ctx:      ctx,
		store:    store,
		opts:      opts,
		sessions:  make(map[string]*Session),
		signedOut: make(map[string]time.Time),
	}
}

func (m *manager) Open(p Principal) *Session {
	m.mu.Lock()
	prev := m.sessions[p.UID]
	s := Open(m.ctx, m.store, p, m.opts)
	m.sessions[p.UID] = s
	delete(m.signedOut, p.UID)
	m.mu.Unlock()

	if prev != nil {
		prev.Close()
	}
	return s
}

func (m *manager) Ensure(p Principal) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cutoff, ok := m.signedOut[p.UID]; ok && !p.IssuedAt.After(cutoff) {
		return nil, ErrSignedOut
	}
	if s, ok := m.sessions[p.UID]; ok {
		return s, nil
	}
	s := Open(m.ctx, m.store, p, m.opts)
	m.sessions[p.UID] = s
	return s, nil
}

func (m *manager) Get(uid string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[uid]
	return s, ok
}

func (m *manager) Close(uid string) bool {
	m.mu.Lock()
	s, ok := m.sessions[uid]
	delete(m.sessions, uid)
	m.mu.Unlock()

	if ok {
		s.Close()
	}
	return ok
}

func (m *manager) SignOut(uid string) bool {
	now := time.Now
	if m.opts.Now != nil {
		now = m.opts.Now
	}
	m.mu.Lock()
	m.signedOut[uid] = now()
	m.mu.Unlock()
	return m.Close(uid)
}

func (m *manager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
