package session

import (
	"context"
	"fmt"
	"sync"

	"signal-relay/internal/domain"
)

// MemoryStore keeps sessions in a process-local map. It backs deployments
// without Redis and every test that needs a store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]domain.Session)}
}

func (s *MemoryStore) Create(_ context.Context, sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[sess.Key]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateSession, sess.Key)
	}
	s.sessions[sess.Key] = sess
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, exists := s.sessions[key]
	if !exists {
		return domain.Session{}, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, key)
	}
	return sess, nil
}

func (s *MemoryStore) SetCurrentView(_ context.Context, key string, view domain.View) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, exists := s.sessions[key]
	if !exists {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, key)
	}
	sess.CurrentView = view
	s.sessions[key] = sess
	return nil
}
