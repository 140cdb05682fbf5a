package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizlab/quizlab-backend/internal/quiz"
)

// SessionRepository archives completed quiz sessions.
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Save writes one completed session and its answers in a single
// transaction. Saving the same session twice replaces the earlier archive.
func (r *SessionRepository) Save(ctx context.Context, s *quiz.Session) error {
	if !s.IsCompleted() {
		return quiz.ErrNotCompleted
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO quiz_sessions (id, question_count, score, accuracy, started_at, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET
		   question_count = EXCLUDED.question_count,
		   score          = EXCLUDED.score,
		   accuracy       = EXCLUDED.accuracy,
		   started_at     = EXCLUDED.started_at,
		   completed_at   = EXCLUDED.completed_at`,
		s.ID, len(s.Questions), s.Score(), s.Accuracy(), s.StartedAt, s.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM session_answers WHERE session_id = $1`, s.ID); err != nil {
		return fmt.Errorf("clear answers: %w", err)
	}

	for i, a := range s.Answers {
		_, err := tx.Exec(ctx,
			`INSERT INTO session_answers (session_id, position, question_id, selected, correct, answered_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			s.ID, i, a.QuestionID, a.Selected, a.Correct, a.AnsweredAt,
		)
		if err != nil {
			return fmt.Errorf("insert answer %d: %w", i, err)
		}
	}

	return tx.Commit(ctx)
}
