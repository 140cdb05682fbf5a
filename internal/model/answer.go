package model

import "time"

// Answer records one response inside a quiz session. It is created exactly
// once per question per session and never mutated afterwards.
type Answer struct {
	QuestionID int       `json:"question_id"`
	Selected   int       `json:"selected"`
	Correct    bool      `json:"correct"`
	AnsweredAt time.Time `json:"answered_at"`
}
