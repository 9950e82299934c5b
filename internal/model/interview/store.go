package interview

import (
	"sync"
	"time"
)

// SessionStore exposes keyed session storage to the session service. Any
// keyed backend can implement it; the in-memory store below is the default.
type SessionStore interface {
	Get(id string) (*Session, bool)
	Put(session *Session)
	Delete(id string)
	List() []*Session
	PruneExpired() int
}

// MemoryStore implements SessionStore with a TTL-checked map. Sessions past
// the TTL read as absent and are removed lazily.
type MemoryStore struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]*Session
}

// NewMemoryStore returns an empty store whose sessions expire ttl after
// creation. A non-positive ttl disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:   ttl,
		items: make(map[string]*Session),
	}
}

func (s *MemoryStore) expired(session *Session) bool {
	return s.ttl > 0 && time.Since(session.CreatedAt) > s.ttl
}

// Get returns the session if present and not expired.
func (s *MemoryStore) Get(id string) (*Session, bool) {
	s.mu.RLock()
	session, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.expired(session) {
		s.Delete(id)
		return nil, false
	}
	return session, true
}

// Put stores or replaces the session.
func (s *MemoryStore) Put(session *Session) {
	s.mu.Lock()
	s.items[session.ID] = session
	s.mu.Unlock()
}

// Delete removes the session if present.
func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}

// List returns all live sessions.
func (s *MemoryStore) List() []*Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Session, 0, len(s.items))
	for _, session := range s.items {
		if !s.expired(session) {
			out = append(out, session)
		}
	}
	return out
}

// PruneExpired drops expired sessions and reports how many were removed.
func (s *MemoryStore) PruneExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, session := range s.items {
		if s.expired(session) {
			delete(s.items, id)
			removed++
		}
	}
	return removed
}
