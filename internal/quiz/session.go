package quiz

import (
	"time"

	"github.com/google/uuid"

	"github.com/quizlab/quizlab-backend/internal/model"
)

// Session is one run through an ordered list of questions. It has exactly
// two states: active while answers are outstanding, completed once every
// question has been answered. Completed is terminal.
//
// The struct is JSON-serializable so the redis session store can round-trip
// it. Sessions are not safe for concurrent use; each caller owns its own.
type Session struct {
	ID        string           `json:"id"`
	Questions []model.Question `json:"questions"`
	Answers   []model.Answer   `json:"answers"`
	StartedAt time.Time        `json:"started_at"`
	// CompletedAt is set exactly once, when the last answer is recorded.
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	// Shuffled records whether option order was permuted at creation, so
	// a retry session can inherit the same setting.
	Shuffled bool `json:"shuffled,omitempty"`
}

// NewSession creates an active session over the given question order.
// The question sequence is fixed at creation time.
func NewSession(questions []model.Question) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &Session{
		ID:        uuid.New().String(),
		Questions: questions,
		StartedAt: time.Now(),
	}, nil
}

// CurrentIndex is the number of answers recorded so far.
func (s *Session) CurrentIndex() int {
	return len(s.Answers)
}

// IsCompleted reports whether every question has been answered.
func (s *Session) IsCompleted() bool {
	return s.CurrentIndex() >= len(s.Questions)
}

// CurrentQuestion returns the question awaiting an answer, or false once
// the session is completed.
func (s *Session) CurrentQuestion() (*model.Question, bool) {
	if s.IsCompleted() {
		return nil, false
	}
	return &s.Questions[s.CurrentIndex()], true
}

// RecordAnswer records one response for the current question and advances
// the cursor. It fails on a completed session and on an out-of-range
// option, without mutating state. Recording the final answer transitions
// the session to completed.
func (s *Session) RecordAnswer(selected int) (*model.Answer, error) {
	if s.IsCompleted() {
		return nil, ErrSessionCompleted
	}
	if selected < 0 || selected >= model.OptionCount {
		return nil, ErrInvalidOption
	}

	q := s.Questions[s.CurrentIndex()]
	answer := model.Answer{
		QuestionID: q.ID,
		Selected:   selected,
		Correct:    selected == q.CorrectIndex,
		AnsweredAt: time.Now(),
	}
	s.Answers = append(s.Answers, answer)

	if s.IsCompleted() {
		now := answer.AnsweredAt
		s.CompletedAt = &now
	}
	return &answer, nil
}

// Score is the count of correct answers so far.
func (s *Session) Score() int {
	score := 0
	for _, a := range s.Answers {
		if a.Correct {
			score++
		}
	}
	return score
}

// Accuracy is score over answered count as a percentage, 0 when nothing
// has been answered yet.
func (s *Session) Accuracy() float64 {
	if len(s.Answers) == 0 {
		return 0
	}
	return float64(s.Score()) / float64(len(s.Answers)) * 100
}

// WrongAnswer pairs a missed question with what was selected instead.
type WrongAnswer struct {
	Question     model.Question `json:"question"`
	Selected     int            `json:"selected"`
	CorrectIndex int            `json:"correct_index"`
}

// WrongAnswers returns every incorrectly answered question in the order it
// was missed. Valid in any state.
func (s *Session) WrongAnswers() []WrongAnswer {
	var wrong []WrongAnswer
	for i, a := range s.Answers {
		if a.Correct {
			continue
		}
		wrong = append(wrong, WrongAnswer{
			Question:     s.Questions[i],
			Selected:     a.Selected,
			CorrectIndex: s.Questions[i].CorrectIndex,
		})
	}
	return wrong
}
