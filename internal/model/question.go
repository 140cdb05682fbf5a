package model

import (
	"errors"
	"strings"
	"time"
)

// OptionCount is the fixed number of options every question carries.
const OptionCount = 4

// Question construction errors.
var (
	ErrEmptyQuestionText  = errors.New("question text is empty")
	ErrWrongOptionCount   = errors.New("a question requires exactly four non-empty options")
	ErrDuplicateOptions   = errors.New("options must be pairwise distinct")
	ErrCorrectIndexRange  = errors.New("correct index must be between 0 and 3")
	ErrOptionExplanations = errors.New("option explanations must have one slot per option")
)

// Question represents a single multiple-choice question.
// The four-option and index-range invariants are enforced by NewQuestion
// and hold for the lifetime of the value.
type Question struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
	// Options always holds exactly OptionCount entries.
	Options []string `json:"options"`
	// CorrectIndex is 0-based. The tabular input format is 1-based;
	// the importer converts at parse time.
	CorrectIndex int    `json:"correct_index"`
	Explanation  string `json:"explanation,omitempty"`
	// OptionExplanations is parallel to Options: slot i describes option i.
	// Empty slots are allowed.
	OptionExplanations []string `json:"option_explanations,omitempty"`
	Genre              string   `json:"genre,omitempty"`
	Difficulty         string   `json:"difficulty,omitempty"`
	Tags               string   `json:"tags,omitempty"`
	Source             string   `json:"source,omitempty"`
	Title              string   `json:"title,omitempty"`
	// Metadata captures columns outside the reserved set, keyed by
	// column name. Keys are not known at compile time.
	Metadata   map[string]string `json:"metadata,omitempty"`
	SourceFile string            `json:"source_file,omitempty"`
	CreatedAt  time.Time         `json:"created_at,omitzero"`
}

// NewQuestion builds a Question, enforcing the structural invariants:
// non-empty text, exactly four non-empty pairwise-distinct options, and a
// correct index in [0,3]. Violations fail construction, never get repaired.
func NewQuestion(text string, options []string, correctIndex int) (*Question, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyQuestionText
	}
	if len(options) != OptionCount {
		return nil, ErrWrongOptionCount
	}

	trimmed := make([]string, OptionCount)
	for i, opt := range options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			return nil, ErrWrongOptionCount
		}
		trimmed[i] = opt
	}

	seen := make(map[string]struct{}, OptionCount)
	for _, opt := range trimmed {
		key := NormalizeOption(opt)
		if _, dup := seen[key]; dup {
			return nil, ErrDuplicateOptions
		}
		seen[key] = struct{}{}
	}

	if correctIndex < 0 || correctIndex >= OptionCount {
		return nil, ErrCorrectIndexRange
	}

	return &Question{
		Text:         text,
		Options:      trimmed,
		CorrectIndex: correctIndex,
	}, nil
}

// SetOptionExplanations attaches the parallel per-option explanation slots.
// The slice must have exactly one slot per option; empty strings are fine.
func (q *Question) SetOptionExplanations(explanations []string) error {
	if len(explanations) != OptionCount {
		return ErrOptionExplanations
	}
	q.OptionExplanations = explanations
	return nil
}

// CorrectText returns the text of the correct option.
func (q *Question) CorrectText() string {
	return q.Options[q.CorrectIndex]
}

// NormalizeOption collapses case and surrounding whitespace so options can
// be compared for the pairwise-distinct invariant.
func NormalizeOption(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
