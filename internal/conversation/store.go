package conversation

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"pluvio/internal/domain"
)

const (
	// MaxExchanges caps per-session history at the most recent 5 exchanges
	// (10 turns).
	MaxExchanges = 5

	// SessionTimeout is the idle period after which a session is evicted.
	SessionTimeout = 30 * time.Minute

	// DefaultSessionID is the shared session used when a caller supplies no
	// id. Callers requiring isolation must supply distinct ids.
	DefaultSessionID = "default"
)

// EvictionListener is notified when a session is evicted, so dependent state
// (pending confirmations) can expire with it.
type EvictionListener func(sessionID string)

type session struct {
	turns    []domain.Turn
	lastSeen time.Time
}

// Store is the rolling per-session dialogue window fed into generation
// prompts. It is explicitly constructed and injected; tests get isolation
// via fresh instances.
type Store struct {
	mu        sync.Mutex
	sessions  map[string]*session
	now       func() time.Time
	listeners []EvictionListener
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// SetClock overrides the store's time source. Used by tests.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// OnEviction registers a listener called (outside the lock is not guaranteed;
// listeners must not call back into the store) whenever a session expires.
func (s *Store) OnEviction(fn EvictionListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func normalize(sessionID string) string {
	if sessionID == "" {
		return DefaultSessionID
	}
	return sessionID
}

// AddTurn appends a turn with a server-assigned timestamp. Every write sweeps
// idle sessions; the sweep is O(active sessions) and never suspends.
func (s *Store) AddTurn(role domain.Role, content, intent, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	id := normalize(sessionID)
	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{}
		s.sessions[id] = sess
	}
	sess.turns = append(sess.turns, domain.Turn{
		Role:      role,
		Content:   content,
		Intent:    intent,
		Timestamp: now,
	})
	sess.lastSeen = now

	if max := MaxExchanges * 2; len(sess.turns) > max {
		sess.turns = append(sess.turns[:0:0], sess.turns[len(sess.turns)-max:]...)
	}
}

// RecentTurns returns the most recent count exchanges (one exchange = a user
// turn plus its paired assistant turn) in chronological order.
func (s *Store) RecentTurns(count int, sessionID string) []domain.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[normalize(sessionID)]
	if !ok || s.now().Sub(sess.lastSeen) > SessionTimeout {
		return nil
	}
	n := count * 2
	if n >= len(sess.turns) {
		return append([]domain.Turn(nil), sess.turns...)
	}
	return append([]domain.Turn(nil), sess.turns[len(sess.turns)-n:]...)
}

// FormatForContext renders the last 5 exchanges as a flat transcript for
// inclusion in a generation prompt, or "" if the session has no history.
func (s *Store) FormatForContext(sessionID string) string {
	turns := s.RecentTurns(MaxExchanges, sessionID)
	if len(turns) == 0 {
		return ""
	}
	var b strings.Builder
	for _, t := range turns {
		label := "User"
		if t.Role == domain.RoleAssistant {
			label = "Assistant"
		}
		fmt.Fprintf(&b, "%s: %s\n", label, t.Content)
	}
	return b.String()
}

// ClearSession deletes a session's history immediately.
func (s *Store) ClearSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, normalize(sessionID))
}

func (s *Store) sweepLocked(now time.Time) {
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > SessionTimeout {
			delete(s.sessions, id)
			for _, fn := range s.listeners {
				fn(id)
			}
		}
	}
}
