package model

// QuestionView is the client-facing shape of a question mid-session: the
// correct index and explanations stay server-side until results.
type QuestionView struct {
	Index      int      `json:"index"`
	Total      int      `json:"total"`
	ID         int      `json:"id"`
	Text       string   `json:"text"`
	Options    []string `json:"options"`
	Genre      string   `json:"genre,omitempty"`
	Difficulty string   `json:"difficulty,omitempty"`
}

// NewQuestionView projects a question for delivery at the given position.
func NewQuestionView(q *Question, index, total int) QuestionView {
	return QuestionView{
		Index:      index,
		Total:      total,
		ID:         q.ID,
		Text:       q.Text,
		Options:    q.Options,
		Genre:      q.Genre,
		Difficulty: q.Difficulty,
	}
}
