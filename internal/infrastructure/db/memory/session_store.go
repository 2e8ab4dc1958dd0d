// Package memory is an in-process credential store for development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/garimobility/admin-dashboard/internal/core/domain"
	"github.com/garimobility/admin-dashboard/internal/infrastructure/db"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// SessionStore keeps encoded sessions in a map guarded by a mutex.
type SessionStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{entries: make(map[string]entry), now: time.Now}
}

func (m *SessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	key := db.SessionKey(id)

	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if !m.now().Before(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, domain.ErrSessionNotFound
	}
	return db.DecodeSession(e.data)
}

func (m *SessionStore) Set(_ context.Context, s *domain.Session, ttl time.Duration) error {
	data, err := db.EncodeSession(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.entries[db.SessionKey(s.ID)] = entry{data: data, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *SessionStore) Clear(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.entries, db.SessionKey(id))
	m.mu.Unlock()
	return nil
}

func (m *SessionStore) Ping(context.Context) error { return nil }

// Len reports the number of stored sessions, expired ones included.
func (m *SessionStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
