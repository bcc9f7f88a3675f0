package session

import (
	"sync"
	"time"
)

// Store keeps one Session per token so an invalidation outlives the request
// that caused it. Entries unseen for the idle period are forgotten; after that
// a logged-out token is accepted again and the backend decides.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*storedSession
	idle     time.Duration
	now      func() time.Time
}

type storedSession struct {
	sess     *Session
	lastSeen time.Time
}

func NewStore(idle time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*storedSession),
		idle:     idle,
		now:      time.Now,
	}
}

// Resolve returns the Session for token, creating it on first sight. The
// returned Session may already be invalid; callers check Valid.
func (s *Store) Resolve(token string) (*Session, error) {
	fresh, err := New(token)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if stored, ok := s.sessions[fresh.Fingerprint()]; ok {
		stored.lastSeen = now
		return stored.sess, nil
	}
	fresh.now = s.now
	s.sessions[fresh.Fingerprint()] = &storedSession{sess: fresh, lastSeen: now}
	return fresh, nil
}

// Sweep forgets sessions that expired or have been idle too long and reports
// how many were dropped.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	dropped := 0
	for fp, stored := range s.sessions {
		exp := stored.sess.ExpiresAt()
		expired := !exp.IsZero() && !now.Before(exp)
		if expired || (s.idle > 0 && now.Sub(stored.lastSeen) >= s.idle) {
			delete(s.sessions, fp)
			dropped++
		}
	}
	return dropped
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
