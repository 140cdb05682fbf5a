package quiz

import (
	"errors"
	"fmt"
	"testing"

	"github.com/quizlab/quizlab-backend/internal/model"
)

// makeQuestions builds n valid questions whose correct answer cycles
// through the option positions.
func makeQuestions(t *testing.T, n int) []model.Question {
	t.Helper()
	questions := make([]model.Question, n)
	for i := range questions {
		q, err := model.NewQuestion(
			fmt.Sprintf("What is the answer to question %d?", i+1),
			[]string{"north", "east", "south", "west"},
			i%model.OptionCount,
		)
		if err != nil {
			t.Fatalf("NewQuestion: %v", err)
		}
		q.ID = i + 1
		q.Genre = "geography"
		questions[i] = *q
	}
	return questions
}

func TestNewSessionRequiresQuestions(t *testing.T) {
	if _, err := NewSession(nil); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("err = %v, want ErrNoQuestions", err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	s, err := NewSession(makeQuestions(t, 3))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if s.ID == "" {
		t.Error("session has no id")
	}
	if s.IsCompleted() {
		t.Fatal("fresh session reports completed")
	}

	for i := 0; i < 3; i++ {
		q, ok := s.CurrentQuestion()
		if !ok {
			t.Fatalf("no current question at index %d", i)
		}
		if q.ID != i+1 {
			t.Errorf("current question id = %d, want %d", q.ID, i+1)
		}
		if _, err := s.RecordAnswer(q.CorrectIndex); err != nil {
			t.Fatalf("RecordAnswer: %v", err)
		}
	}

	if !s.IsCompleted() {
		t.Error("session not completed after answering every question")
	}
	if s.CompletedAt == nil {
		t.Error("CompletedAt not set on completion")
	}
	if _, ok := s.CurrentQuestion(); ok {
		t.Error("completed session still serves a current question")
	}
	if s.Score() != 3 {
		t.Errorf("Score = %d, want 3", s.Score())
	}
}

func TestRecordAnswerScoring(t *testing.T) {
	s, err := NewSession(makeQuestions(t, 3))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	// Correct, wrong, correct: correct answers are at indices 0, 1, 2.
	answers := []int{0, 3, 2}
	wantCorrect := []bool{true, false, true}
	for i, sel := range answers {
		a, err := s.RecordAnswer(sel)
		if err != nil {
			t.Fatalf("RecordAnswer(%d): %v", sel, err)
		}
		if a.Correct != wantCorrect[i] {
			t.Errorf("answer %d: Correct = %v, want %v", i, a.Correct, wantCorrect[i])
		}
	}

	if s.Score() != 2 {
		t.Errorf("Score = %d, want 2", s.Score())
	}
	if acc := s.Accuracy(); acc < 66.6 || acc > 66.7 {
		t.Errorf("Accuracy = %v, want ~66.67", acc)
	}

	wrong := s.WrongAnswers()
	if len(wrong) != 1 {
		t.Fatalf("WrongAnswers = %d entries, want 1", len(wrong))
	}
	if wrong[0].Question.ID != 2 || wrong[0].Selected != 3 || wrong[0].CorrectIndex != 1 {
		t.Errorf("wrong answer = %+v, want question 2 selected 3 correct 1", wrong[0])
	}
}

func TestRecordAnswerOnCompletedSession(t *testing.T) {
	s, err := NewSession(makeQuestions(t, 1))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if _, err := s.RecordAnswer(0); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}

	if _, err := s.RecordAnswer(0); !errors.Is(err, ErrSessionCompleted) {
		t.Fatalf("err = %v, want ErrSessionCompleted", err)
	}
	if len(s.Answers) != 1 {
		t.Errorf("rejected answer mutated state: %d answers", len(s.Answers))
	}
}

func TestRecordAnswerRejectsOutOfRange(t *testing.T) {
	s, err := NewSession(makeQuestions(t, 2))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	for _, sel := range []int{-1, model.OptionCount} {
		if _, err := s.RecordAnswer(sel); !errors.Is(err, ErrInvalidOption) {
			t.Errorf("RecordAnswer(%d) err = %v, want ErrInvalidOption", sel, err)
		}
	}
	if len(s.Answers) != 0 {
		t.Errorf("rejected answers mutated state: %d answers", len(s.Answers))
	}
	if s.IsCompleted() {
		t.Error("session completed by rejected answers")
	}
}

func TestAccuracyEmptySession(t *testing.T) {
	s, err := NewSession(makeQuestions(t, 2))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if acc := s.Accuracy(); acc != 0 {
		t.Errorf("Accuracy = %v before any answers, want 0", acc)
	}
}
