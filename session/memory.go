package session

import (
	"context"
	"sync"
	"time"

	"github.com/nijaru/yt-blog/errors"
)

// MemoryStore keeps sessions in process memory. Entries idle for longer than
// the TTL are dropped on access and by Sweep.
type MemoryStore struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions:  make(map[string]*Session),
		ttl:       ttl,
		now:       time.Now,
		lastSweep: time.Now(),
	}
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	const op = "session.MemoryStore.Get"

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, errors.NotFound(op, nil, "session not found")
	}
	if m.expired(s) {
		delete(m.sessions, id)
		return nil, errors.NotFound(op, nil, "session expired")
	}
	return s.clone(), nil
}

func (m *MemoryStore) Save(ctx context.Context, s *Session) error {
	const op = "session.MemoryStore.Save"
	if s == nil || s.ID == "" {
		return errors.InvalidInput(op, nil, "session id is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c := s.clone()
	c.UpdatedAt = m.now()
	s.UpdatedAt = c.UpdatedAt
	m.sessions[s.ID] = c

	if m.now().Sub(m.lastSweep) > m.ttl {
		m.sweepLocked()
	}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

// Sweep removes expired sessions and reports how many were dropped.
func (m *MemoryStore) Sweep(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweepLocked(), nil
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *MemoryStore) sweepLocked() int {
	removed := 0
	for id, s := range m.sessions {
		if m.expired(s) {
			delete(m.sessions, id)
			removed++
		}
	}
	m.lastSweep = m.now()
	return removed
}

func (m *MemoryStore) expired(s *Session) bool {
	return m.ttl > 0 && m.now().Sub(s.UpdatedAt) > m.ttl
}
