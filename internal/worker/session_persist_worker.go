package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/quizlab/quizlab-backend/internal/config"
	"github.com/quizlab/quizlab-backend/internal/quiz"
)

const (
	SessionPollTimeout = 1 * time.Second
)

// SessionSaver archives one completed session.
type SessionSaver interface {
	Save(ctx context.Context, s *quiz.Session) error
}

// SessionPersistWorker drains the completed-session queue into storage.
// The quiz service pushes sessions as JSON on completion; this worker is
// the only storage writer for sessions.
type SessionPersistWorker struct {
	saver SessionSaver
	rdb   *redis.Client
	log   zerolog.Logger

	// retried tracks sessions whose save already failed once, so a bad
	// payload cannot cycle through the queue forever.
	retried map[string]struct{}
}

func NewSessionPersistWorker(saver SessionSaver, rdb *redis.Client, log zerolog.Logger) *SessionPersistWorker {
	return &SessionPersistWorker{
		saver:   saver,
		rdb:     rdb,
		log:     log.With().Str("component", "session_persist_worker").Logger(),
		retried: make(map[string]struct{}),
	}
}

func (w *SessionPersistWorker) Start(ctx context.Context) {
	w.log.Info().Msg("SessionPersistWorker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested")
			return
		default:
			item, err := w.rdb.BLPop(ctx, SessionPollTimeout, config.WorkerKey.PersistSessionsQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}
			w.persist(ctx, []byte(item[1]))
		}
	}
}

// persist saves one queued session. The first failure re-queues the
// payload; a second failure drops it with an error log.
func (w *SessionPersistWorker) persist(ctx context.Context, payload []byte) {
	var session quiz.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		w.log.Error().Err(err).Msg("Invalid JSON payload")
		return
	}

	if err := w.saver.Save(ctx, &session); err != nil {
		if _, seen := w.retried[session.ID]; seen {
			delete(w.retried, session.ID)
			w.log.Error().Err(err).Str("session_id", session.ID).Msg("Dropping session after second save failure")
			return
		}
		w.retried[session.ID] = struct{}{}
		w.log.Warn().Err(err).Str("session_id", session.ID).Msg("Save failed, re-queueing session")
		if err := w.rdb.RPush(ctx, config.WorkerKey.PersistSessionsQueue, payload).Err(); err != nil {
			w.log.Error().Err(err).Str("session_id", session.ID).Msg("Re-queue failed")
		}
		return
	}

	delete(w.retried, session.ID)
	w.log.Debug().Str("session_id", session.ID).Msg("Session archived")
}
