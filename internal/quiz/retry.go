package quiz

import "github.com/quizlab/quizlab-backend/internal/model"

// BuildRetrySession creates a fresh active session scoped to exactly the
// questions missed in the source session, in the order they were missed.
// It fails if the source is not completed or has nothing wrong. When
// shuffle is set, option order is re-permuted the same way session
// creation does it.
func BuildRetrySession(source *Session, shuffle bool) (*Session, error) {
	if !source.IsCompleted() {
		return nil, ErrNotCompleted
	}

	wrong := source.WrongAnswers()
	if len(wrong) == 0 {
		return nil, ErrNoWrongAnswers
	}

	questions := make([]model.Question, len(wrong))
	for i, w := range wrong {
		questions[i] = w.Question
	}
	if shuffle {
		questions = ShuffleAll(questions)
	}

	session, err := NewSession(questions)
	if err != nil {
		return nil, err
	}
	session.Shuffled = shuffle
	return session, nil
}
