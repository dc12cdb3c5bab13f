// Package session holds the admin's bearer token and profile.
//
// Callers receive a Store explicitly instead of reading global state, so the
// same client code runs against the CLI's config file, a browser cookie or memory.
package session

import (
	"sync"

	"visitor-cli/pkg/models"
)

// Session is the authenticated admin's token and profile.
type Session struct {
	Token string
	User  models.User
}

// Store persists at most one active session.
type Store interface {
	Load() Session
	Save(Session) error
	Clear() error
}

// MemoryStore keeps the session in process memory.
type MemoryStore struct {
	mu  sync.Mutex
	cur Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur
}

func (m *MemoryStore) Save(s Session) error {
	m.mu.Lock()
	m.cur = s
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Clear() error {
	return m.Save(Session{})
}
