package ui

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionStore keeps UI sessions in memory until they are idle for longer than the TTL.
// Sessions are never persisted.
type SessionStore struct {
	sessions *cache.Cache
	pipeline Pipeline
	mu       sync.Mutex
}

func NewSessionStore(pipeline Pipeline, ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: cache.New(ttl, ttl/2),
		pipeline: pipeline,
	}
}

// Create starts a session under a fresh random identifier.
func (s *SessionStore) Create() *Session {
	session := NewSession(uuid.NewString(), s.pipeline)
	s.sessions.SetDefault(session.ID(), session)
	return session
}

// Get returns a live session and extends its lifetime.
func (s *SessionStore) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}

	item, ok := s.sessions.Get(id)
	if !ok {
		return nil, false
	}

	session := item.(*Session)
	s.sessions.SetDefault(id, session)
	return session, true
}

// GetOrCreate returns the session stored under id, creating it when missing.
func (s *SessionStore) GetOrCreate(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.Get(id); ok {
		return session
	}

	session := NewSession(id, s.pipeline)
	s.sessions.SetDefault(id, session)
	return session
}

func (s *SessionStore) Delete(id string) {
	s.sessions.Delete(id)
}

func (s *SessionStore) Len() int {
	return s.sessions.ItemCount()
}
