package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/quizlab/quizlab-backend/internal/config"
	"github.com/quizlab/quizlab-backend/internal/model"
	"github.com/quizlab/quizlab-backend/internal/quiz"
	"github.com/quizlab/quizlab-backend/internal/sessionstore"
)

// ErrNoQuestionsAvailable means no stored questions match the requested
// filters, so a session cannot be created.
var ErrNoQuestionsAvailable = errors.New("no questions match the requested filters")

const statsCacheTTL = 30 * time.Second

// QuestionSource is the storage capability the quiz service consumes.
type QuestionSource interface {
	List(ctx context.Context, filter model.QuestionFilter) ([]model.Question, error)
	Count(ctx context.Context) (int, error)
	CountByGenre(ctx context.Context) (map[string]int, error)
}

// AnswerOutcome is what answering the current question reports back.
type AnswerOutcome struct {
	IsCorrect bool    `json:"is_correct"`
	Score     int     `json:"score"`
	Accuracy  float64 `json:"accuracy"`
	Completed bool    `json:"completed"`
	// Results is populated when this answer completed the session.
	Results *quiz.SessionResults `json:"results,omitempty"`
}

// QuizStats is the aggregated admin stats payload.
type QuizStats struct {
	TotalQuestions   int            `json:"total_questions"`
	QuestionsByGenre map[string]int `json:"questions_by_genre"`
	ActiveSessions   int            `json:"active_sessions"`
}

// QuizService drives quiz sessions: creation, answering, results, and
// retry of missed questions. Session state lives in the injected store;
// completed sessions are queued for archival by the persistence worker.
type QuizService struct {
	questions      QuestionSource
	sessions       sessionstore.Store
	rdb            *redis.Client
	shuffleDefault bool
	log            zerolog.Logger
}

// NewQuizService creates a new QuizService. rdb may be nil, which disables
// session archival and stats caching.
func NewQuizService(questions QuestionSource, sessions sessionstore.Store, rdb *redis.Client, shuffleDefault bool, log zerolog.Logger) *QuizService {
	return &QuizService{
		questions:      questions,
		sessions:       sessions,
		rdb:            rdb,
		shuffleDefault: shuffleDefault,
		log:            log.With().Str("component", "quiz_service").Logger(),
	}
}

// CreateSession draws up to req.Count matching questions from storage and
// starts a new active session over them.
func (s *QuizService) CreateSession(ctx context.Context, req model.CreateSessionRequest) (*quiz.Session, error) {
	questions, err := s.questions.List(ctx, model.QuestionFilter{
		Genre:      req.Genre,
		Difficulty: req.Difficulty,
		Limit:      req.Count,
		Shuffle:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestionsAvailable
	}

	shuffle := s.shuffleDefault
	if req.Shuffle != nil {
		shuffle = *req.Shuffle
	}
	if shuffle {
		questions = quiz.ShuffleAll(questions)
	}

	session, err := quiz.NewSession(questions)
	if err != nil {
		return nil, err
	}
	session.Shuffled = shuffle

	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	s.log.Info().
		Str("session_id", session.ID).
		Int("questions", len(questions)).
		Bool("shuffled", shuffle).
		Msg("Session created")
	return session, nil
}

// CurrentQuestion returns the question awaiting an answer, or false when
// the session is completed.
func (s *QuizService) CurrentQuestion(ctx context.Context, sessionID string) (*quiz.Session, *model.Question, bool, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, false, err
	}
	q, ok := session.CurrentQuestion()
	return session, q, ok, nil
}

// Answer records one response for the session's current question. When the
// answer completes the session, the outcome carries the full results and
// the session is queued for archival.
func (s *QuizService) Answer(ctx context.Context, sessionID string, selected int) (*AnswerOutcome, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	answer, err := session.RecordAnswer(selected)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	outcome := &AnswerOutcome{
		IsCorrect: answer.Correct,
		Score:     session.Score(),
		Accuracy:  session.Accuracy(),
		Completed: session.IsCompleted(),
	}

	if session.IsCompleted() {
		if results, err := quiz.Results(session); err == nil {
			outcome.Results = results
		}
		s.enqueueForArchival(ctx, session)
	}
	return outcome, nil
}

// Results returns the statistics of a completed session.
func (s *QuizService) Results(ctx context.Context, sessionID string) (*quiz.SessionResults, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return quiz.Results(session)
}

// RetryWrong builds a fresh session over exactly the questions missed in
// the source session and consumes the source: its results are final, so it
// is removed from the store.
func (s *QuizService) RetryWrong(ctx context.Context, sessionID string) (*quiz.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	retry, err := quiz.BuildRetrySession(session, session.Shuffled)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Put(ctx, retry); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		s.log.Warn().Err(err).Str("session_id", session.ID).Msg("Failed to drop consumed session")
	}

	s.log.Info().
		Str("source_session_id", session.ID).
		Str("retry_session_id", retry.ID).
		Int("questions", len(retry.Questions)).
		Msg("Retry session created")
	return retry, nil
}

// ListQuestions retrieves stored questions for admin display.
func (s *QuizService) ListQuestions(ctx context.Context, filter model.QuestionFilter) ([]model.Question, error) {
	return s.questions.List(ctx, filter)
}

// Stats returns aggregate question and session counts, cached briefly when
// redis is available.
func (s *QuizService) Stats(ctx context.Context) (*QuizStats, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, config.CacheKey.QuestionStatsKey()).Result(); err == nil {
			var cached QuizStats
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	total, err := s.questions.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	byGenre, err := s.questions.CountByGenre(ctx)
	if err != nil {
		return nil, fmt.Errorf("count by genre: %w", err)
	}
	active, err := s.sessions.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}

	stats := &QuizStats{
		TotalQuestions:   total,
		QuestionsByGenre: byGenre,
		ActiveSessions:   active,
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.rdb.Set(ctx, config.CacheKey.QuestionStatsKey(), raw, statsCacheTTL).Err(); err != nil {
				s.log.Warn().Err(err).Msg("Failed to cache question stats")
			}
		}
	}
	return stats, nil
}

// enqueueForArchival pushes a completed session onto the persistence queue.
// Archival is best-effort; a queue failure is logged, not surfaced to the
// answering caller.
func (s *QuizService) enqueueForArchival(ctx context.Context, session *quiz.Session) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(session)
	if err != nil {
		s.log.Error().Err(err).Str("session_id", session.ID).Msg("Failed to encode session for archival")
		return
	}
	if err := s.rdb.LPush(ctx, config.WorkerKey.PersistSessionsQueue, raw).Err(); err != nil {
		s.log.Error().Err(err).Str("session_id", session.ID).Msg("Failed to enqueue session for archival")
	}
}
