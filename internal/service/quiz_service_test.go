package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/quizlab/quizlab-backend/internal/config"
	"github.com/quizlab/quizlab-backend/internal/model"
	"github.com/quizlab/quizlab-backend/internal/quiz"
	"github.com/quizlab/quizlab-backend/internal/sessionstore"
)

// fakeQuestionSource serves a fixed question set and applies the filter the
// way the real repository does, minus the random ordering.
type fakeQuestionSource struct {
	questions  []model.Question
	countCalls int
}

func (f *fakeQuestionSource) List(_ context.Context, filter model.QuestionFilter) ([]model.Question, error) {
	var out []model.Question
	for _, q := range f.questions {
		if filter.Genre != "" && q.Genre != filter.Genre {
			continue
		}
		if filter.Difficulty != "" && q.Difficulty != filter.Difficulty {
			continue
		}
		out = append(out, q)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeQuestionSource) Count(_ context.Context) (int, error) {
	f.countCalls++
	return len(f.questions), nil
}

func (f *fakeQuestionSource) CountByGenre(_ context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, q := range f.questions {
		counts[q.Genre]++
	}
	return counts, nil
}

func quizTestQuestions(t *testing.T, n int) []model.Question {
	t.Helper()
	questions := make([]model.Question, n)
	for i := range questions {
		q, err := model.NewQuestion(
			fmt.Sprintf("Which element has atomic number %d?", i+1),
			[]string{"Hydrogen", "Helium", "Lithium", "Beryllium"},
			i%model.OptionCount,
		)
		if err != nil {
			t.Fatalf("NewQuestion: %v", err)
		}
		q.ID = i + 1
		q.Genre = "science"
		q.Difficulty = "easy"
		questions[i] = *q
	}
	return questions
}

func newQuizService(t *testing.T, n int) (*QuizService, *fakeQuestionSource, sessionstore.Store) {
	t.Helper()
	source := &fakeQuestionSource{questions: quizTestQuestions(t, n)}
	store := sessionstore.NewMemoryStore()
	svc := NewQuizService(source, store, nil, false, zerolog.Nop())
	return svc, source, store
}

func TestCreateSession(t *testing.T) {
	svc, _, store := newQuizService(t, 5)

	session, err := svc.CreateSession(context.Background(), model.CreateSessionRequest{Count: 3})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if len(session.Questions) != 3 {
		t.Errorf("session has %d questions, want 3", len(session.Questions))
	}
	if session.Shuffled {
		t.Error("Shuffled = true with shuffle default off")
	}

	stored, err := store.Get(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("session not in store: %v", err)
	}
	if stored.ID != session.ID {
		t.Errorf("stored id = %q, want %q", stored.ID, session.ID)
	}
}

func TestCreateSessionFilterMismatch(t *testing.T) {
	svc, _, _ := newQuizService(t, 5)

	_, err := svc.CreateSession(context.Background(), model.CreateSessionRequest{
		Count: 3,
		Genre: "history",
	})
	if !errors.Is(err, ErrNoQuestionsAvailable) {
		t.Fatalf("err = %v, want ErrNoQuestionsAvailable", err)
	}
}

func TestCreateSessionFewerThanRequested(t *testing.T) {
	svc, _, _ := newQuizService(t, 2)

	session, err := svc.CreateSession(context.Background(), model.CreateSessionRequest{Count: 10})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if len(session.Questions) != 2 {
		t.Errorf("session has %d questions, want all 2 available", len(session.Questions))
	}
}

func TestCreateSessionShuffleOverride(t *testing.T) {
	svc, _, _ := newQuizService(t, 3)

	shuffle := true
	session, err := svc.CreateSession(context.Background(), model.CreateSessionRequest{
		Count:   3,
		Shuffle: &shuffle,
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if !session.Shuffled {
		t.Error("Shuffled = false after explicit override")
	}
	elements := []string{"Hydrogen", "Helium", "Lithium", "Beryllium"}
	for i, q := range session.Questions {
		if want := elements[(q.ID-1)%model.OptionCount]; q.Options[q.CorrectIndex] != want {
			t.Errorf("question %d: correct text = %q, want %q", i, q.Options[q.CorrectIndex], want)
		}
	}
}

func TestAnswerFlow(t *testing.T) {
	svc, _, _ := newQuizService(t, 2)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, model.CreateSessionRequest{Count: 2})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	_, q, ok, err := svc.CurrentQuestion(ctx, session.ID)
	if err != nil || !ok {
		t.Fatalf("CurrentQuestion: ok=%v err=%v", ok, err)
	}

	outcome, err := svc.Answer(ctx, session.ID, q.CorrectIndex)
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !outcome.IsCorrect || outcome.Completed {
		t.Errorf("outcome = %+v, want correct and not completed", outcome)
	}
	if outcome.Results != nil {
		t.Error("Results set before completion")
	}

	_, q, _, err = svc.CurrentQuestion(ctx, session.ID)
	if err != nil {
		t.Fatalf("CurrentQuestion: %v", err)
	}
	wrong := (q.CorrectIndex + 1) % model.OptionCount
	outcome, err = svc.Answer(ctx, session.ID, wrong)
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if outcome.IsCorrect || !outcome.Completed {
		t.Errorf("outcome = %+v, want incorrect and completed", outcome)
	}
	if outcome.Results == nil {
		t.Fatal("Results missing on completing answer")
	}
	if outcome.Results.Score != 1 || outcome.Results.Total != 2 {
		t.Errorf("results = %d/%d, want 1/2", outcome.Results.Score, outcome.Results.Total)
	}

	// Progress survived the store round trips.
	results, err := svc.Results(ctx, session.ID)
	if err != nil {
		t.Fatalf("Results: %v", err)
	}
	if results.Score != 1 {
		t.Errorf("Score = %d, want 1", results.Score)
	}
}

func TestAnswerUnknownSession(t *testing.T) {
	svc, _, _ := newQuizService(t, 2)

	_, err := svc.Answer(context.Background(), "no-such-session", 0)
	if !errors.Is(err, quiz.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestAnswerCompletedSession(t *testing.T) {
	svc, _, _ := newQuizService(t, 1)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, model.CreateSessionRequest{Count: 1})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if _, err := svc.Answer(ctx, session.ID, 0); err != nil {
		t.Fatalf("Answer: %v", err)
	}

	if _, err := svc.Answer(ctx, session.ID, 0); !errors.Is(err, quiz.ErrSessionCompleted) {
		t.Fatalf("err = %v, want ErrSessionCompleted", err)
	}
}

func TestRetryWrongConsumesSource(t *testing.T) {
	svc, _, store := newQuizService(t, 2)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, model.CreateSessionRequest{Count: 2})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	for range session.Questions {
		_, q, _, err := svc.CurrentQuestion(ctx, session.ID)
		if err != nil {
			t.Fatalf("CurrentQuestion: %v", err)
		}
		if _, err := svc.Answer(ctx, session.ID, (q.CorrectIndex+1)%model.OptionCount); err != nil {
			t.Fatalf("Answer: %v", err)
		}
	}

	retry, err := svc.RetryWrong(ctx, session.ID)
	if err != nil {
		t.Fatalf("RetryWrong: %v", err)
	}
	if len(retry.Questions) != 2 {
		t.Errorf("retry has %d questions, want 2", len(retry.Questions))
	}

	if _, err := store.Get(ctx, session.ID); !errors.Is(err, quiz.ErrSessionNotFound) {
		t.Errorf("source session still in store: err = %v", err)
	}
	if _, err := store.Get(ctx, retry.ID); err != nil {
		t.Errorf("retry session not in store: %v", err)
	}
}

func TestRetryWrongActiveSession(t *testing.T) {
	svc, _, _ := newQuizService(t, 2)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, model.CreateSessionRequest{Count: 2})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if _, err := svc.RetryWrong(ctx, session.ID); !errors.Is(err, quiz.ErrNotCompleted) {
		t.Fatalf("err = %v, want ErrNotCompleted", err)
	}
}

func TestAnswerEnqueuesCompletedSession(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	source := &fakeQuestionSource{questions: quizTestQuestions(t, 1)}
	svc := NewQuizService(source, sessionstore.NewMemoryStore(), rdb, false, zerolog.Nop())
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, model.CreateSessionRequest{Count: 1})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if _, err := svc.Answer(ctx, session.ID, 0); err != nil {
		t.Fatalf("Answer: %v", err)
	}

	raw, err := mr.Lpop(config.WorkerKey.PersistSessionsQueue)
	if err != nil {
		t.Fatalf("archival queue empty: %v", err)
	}
	var archived quiz.Session
	if err := json.Unmarshal([]byte(raw), &archived); err != nil {
		t.Fatalf("decode archived session: %v", err)
	}
	if archived.ID != session.ID || !archived.IsCompleted() {
		t.Errorf("archived = %+v, want completed session %s", archived, session.ID)
	}
}

func TestStatsCaching(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	source := &fakeQuestionSource{questions: quizTestQuestions(t, 4)}
	store := sessionstore.NewMemoryStore()
	svc := NewQuizService(source, store, rdb, false, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.CreateSession(ctx, model.CreateSessionRequest{Count: 2}); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalQuestions != 4 {
		t.Errorf("TotalQuestions = %d, want 4", stats.TotalQuestions)
	}
	if stats.QuestionsByGenre["science"] != 4 {
		t.Errorf("QuestionsByGenre = %v, want science:4", stats.QuestionsByGenre)
	}
	if stats.ActiveSessions != 1 {
		t.Errorf("ActiveSessions = %d, want 1", stats.ActiveSessions)
	}

	// Second call inside the TTL is served from cache, not storage.
	callsBefore := source.countCalls
	cached, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if cached.TotalQuestions != 4 {
		t.Errorf("cached TotalQuestions = %d, want 4", cached.TotalQuestions)
	}
	if source.countCalls != callsBefore {
		t.Errorf("cached Stats hit the question source")
	}
	if !mr.Exists(config.CacheKey.QuestionStatsKey()) {
		t.Error("stats cache key missing in redis")
	}
}
