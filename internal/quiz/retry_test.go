package quiz

import (
	"errors"
	"testing"
)

func TestBuildRetrySessionRequiresCompletion(t *testing.T) {
	s, err := NewSession(makeQuestions(t, 2))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if _, err := BuildRetrySession(s, false); !errors.Is(err, ErrNotCompleted) {
		t.Fatalf("err = %v, want ErrNotCompleted", err)
	}
}

func TestBuildRetrySessionPerfectScore(t *testing.T) {
	s := completedSession(t, makeQuestions(t, 3), []bool{true, true, true})
	if _, err := BuildRetrySession(s, false); !errors.Is(err, ErrNoWrongAnswers) {
		t.Fatalf("err = %v, want ErrNoWrongAnswers", err)
	}
}

func TestBuildRetrySessionScopesToMisses(t *testing.T) {
	source := completedSession(t, makeQuestions(t, 4), []bool{false, true, false, true})

	retry, err := BuildRetrySession(source, false)
	if err != nil {
		t.Fatalf("BuildRetrySession: %v", err)
	}

	if retry.ID == source.ID {
		t.Error("retry session reused the source id")
	}
	if retry.IsCompleted() {
		t.Error("retry session starts completed")
	}
	if len(retry.Answers) != 0 {
		t.Errorf("retry session has %d answers, want 0", len(retry.Answers))
	}

	// Missed questions 1 and 3, in miss order.
	if len(retry.Questions) != 2 {
		t.Fatalf("retry has %d questions, want 2", len(retry.Questions))
	}
	if retry.Questions[0].ID != 1 || retry.Questions[1].ID != 3 {
		t.Errorf("retry questions = [%d %d], want [1 3]",
			retry.Questions[0].ID, retry.Questions[1].ID)
	}
	if retry.Shuffled {
		t.Error("Shuffled = true, want false")
	}
}

func TestBuildRetrySessionSingleMiss(t *testing.T) {
	source := completedSession(t, makeQuestions(t, 3), []bool{true, true, false})

	retry, err := BuildRetrySession(source, false)
	if err != nil {
		t.Fatalf("BuildRetrySession: %v", err)
	}
	if len(retry.Questions) != 1 || retry.Questions[0].ID != 3 {
		t.Fatalf("retry questions = %+v, want only question 3", retry.Questions)
	}
}

func TestBuildRetrySessionShuffle(t *testing.T) {
	source := completedSession(t, makeQuestions(t, 3), []bool{false, false, false})

	retry, err := BuildRetrySession(source, true)
	if err != nil {
		t.Fatalf("BuildRetrySession: %v", err)
	}
	if !retry.Shuffled {
		t.Error("Shuffled = false, want true")
	}
	for i, q := range retry.Questions {
		orig := source.Questions[i]
		if q.ID != orig.ID {
			t.Errorf("question order changed at %d", i)
		}
		if q.Options[q.CorrectIndex] != orig.Options[orig.CorrectIndex] {
			t.Errorf("question %d: correct text drifted after shuffle", i)
		}
	}
}
