package quiz

import "errors"

// Session precondition errors. These are rejected synchronously and never
// mutate session state.
var (
	ErrNoQuestions      = errors.New("session requires at least one question")
	ErrSessionCompleted = errors.New("session is already completed")
	ErrInvalidOption    = errors.New("selected option is out of range")
	ErrNotCompleted     = errors.New("session is not completed yet")
	ErrNoWrongAnswers   = errors.New("session has no wrong answers")
	ErrSessionNotFound  = errors.New("session not found")
)
