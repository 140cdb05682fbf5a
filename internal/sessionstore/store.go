// Package sessionstore holds active quiz sessions by id. There is no
// ambient global registry; whoever creates sessions owns a Store.
package sessionstore

import (
	"context"

	"github.com/quizlab/quizlab-backend/internal/quiz"
)

// Store is the session registry capability: get, put, delete by id.
// Implementations return quiz.ErrSessionNotFound for unknown ids.
type Store interface {
	Get(ctx context.Context, id string) (*quiz.Session, error)
	// Put stores the session's current state. Callers must Put after
	// every mutation so stores that serialize (redis) stay current.
	Put(ctx context.Context, s *quiz.Session) error
	Delete(ctx context.Context, id string) error
	// Count returns the number of live sessions.
	Count(ctx context.Context) (int, error)
}
