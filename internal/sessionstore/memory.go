package sessionstore

import (
	"context"
	"sync"

	"github.com/quizlab/quizlab-backend/internal/quiz"
)

// MemoryStore is the in-process Store implementation and the default
// backend. Sessions are isolated by identity; the lock only guards the
// map itself.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*quiz.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*quiz.Session),
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*quiz.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, quiz.ErrSessionNotFound
	}
	return session, nil
}

func (s *MemoryStore) Put(_ context.Context, session *quiz.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions), nil
}
