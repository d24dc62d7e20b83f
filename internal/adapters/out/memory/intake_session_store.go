// Package memory provides in-process stores for the ephemeral per-user state
// of the chat dialogue: wizard sessions and administrator input slots.
// The state is lost on restart, which only drops unfinished dialogues.
package memory

import (
	"sync"
	"time"

	"workshop/internal/core/domain/model/intake"
	"workshop/internal/core/ports"
)

var _ ports.IntakeSessionStore = (*IntakeSessionStore)(nil)

// IntakeSessionStore keeps one wizard session per user. Sessions older than
// the ttl are treated as abandoned and dropped on access.
type IntakeSessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*intake.Session
	ttl      time.Duration
	now      func() time.Time
}

func NewIntakeSessionStore(ttl time.Duration, now func() time.Time) *IntakeSessionStore {
	return &IntakeSessionStore{
		sessions: make(map[int64]*intake.Session),
		ttl:      ttl,
		now:      now,
	}
}

func (s *IntakeSessionStore) Load(userID int64) (*intake.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && s.now().Sub(session.StartedAt()) > s.ttl {
		delete(s.sessions, userID)
		return nil, false
	}
	return session, true
}

func (s *IntakeSessionStore) Save(session *intake.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.UserID()] = session
}

func (s *IntakeSessionStore) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
