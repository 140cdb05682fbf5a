package quiz

import "time"

// UnclassifiedLabel keys breakdown entries for questions without a genre
// or difficulty.
const UnclassifiedLabel = "unclassified"

// BreakdownEntry is one {total, correct} pair in a per-label breakdown.
type BreakdownEntry struct {
	Total   int `json:"total"`
	Correct int `json:"correct"`
}

// SessionResults are the post-hoc statistics of a completed session.
type SessionResults struct {
	SessionID       string                    `json:"session_id"`
	Score           int                       `json:"score"`
	Total           int                       `json:"total"`
	Accuracy        float64                   `json:"accuracy"`
	Duration        time.Duration             `json:"-"`
	DurationSeconds float64                   `json:"duration_seconds"`
	Wrong           []WrongAnswer             `json:"wrong"`
	GenreStats      map[string]BreakdownEntry `json:"genre_stats"`
	DifficultyStats map[string]BreakdownEntry `json:"difficulty_stats"`
}

// Results derives score, accuracy, duration, wrong-answer detail, and the
// genre/difficulty breakdowns from a completed session.
func Results(s *Session) (*SessionResults, error) {
	if !s.IsCompleted() {
		return nil, ErrNotCompleted
	}

	results := &SessionResults{
		SessionID:       s.ID,
		Score:           s.Score(),
		Total:           len(s.Questions),
		Accuracy:        s.Accuracy(),
		Duration:        s.CompletedAt.Sub(s.StartedAt),
		Wrong:           s.WrongAnswers(),
		GenreStats:      make(map[string]BreakdownEntry),
		DifficultyStats: make(map[string]BreakdownEntry),
	}
	results.DurationSeconds = results.Duration.Seconds()

	for i, q := range s.Questions {
		correct := s.Answers[i].Correct
		tally(results.GenreStats, q.Genre, correct)
		tally(results.DifficultyStats, q.Difficulty, correct)
	}

	return results, nil
}

func tally(stats map[string]BreakdownEntry, label string, correct bool) {
	if label == "" {
		label = UnclassifiedLabel
	}
	entry := stats[label]
	entry.Total++
	if correct {
		entry.Correct++
	}
	stats[label] = entry
}
