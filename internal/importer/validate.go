package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quizlab/quizlab-backend/internal/model"
)

// Column names of the tabular input format. correct_answer is 1-based in
// the file and converted to 0-based at parse time; this is the only place
// the conversion happens.
var (
	RequiredColumns = []string{"question", "option1", "option2", "option3", "option4", "correct_answer"}

	optionColumns            = [model.OptionCount]string{"option1", "option2", "option3", "option4"}
	optionExplanationColumns = [model.OptionCount]string{"option1_explanation", "option2_explanation", "option3_explanation", "option4_explanation"}

	reservedColumns = map[string]struct{}{
		"question": {}, "option1": {}, "option2": {}, "option3": {}, "option4": {},
		"correct_answer": {}, "explanation": {},
		"option1_explanation": {}, "option2_explanation": {}, "option3_explanation": {}, "option4_explanation": {},
		"genre": {}, "difficulty": {}, "tags": {}, "source": {}, "title": {},
	}
)

// Validation rule identifiers carried on RowError values.
const (
	RuleQuestionText   = "question_text"
	RuleOptionCount    = "option_count"
	RuleOptionDistinct = "option_distinct"
	RuleCorrectAnswer  = "correct_answer"
)

// difficultySynonyms maps case-insensitive difficulty tokens onto canonical
// labels. Unrecognized values pass through unchanged.
var difficultySynonyms = map[string]string{
	"easy": "easy", "beginner": "easy", "basic": "easy", "1": "easy",
	"簡単": "easy", "初級": "easy", "やさしい": "easy",

	"medium": "medium", "normal": "medium", "intermediate": "medium", "2": "medium",
	"普通": "medium", "中級": "medium",

	"hard": "hard", "difficult": "hard", "advanced": "hard", "3": "hard",
	"難しい": "hard", "上級": "hard",
}

// NormalizeDifficulty maps a raw difficulty value onto its canonical label.
// Values outside the synonym table are returned trimmed but unchanged.
func NormalizeDifficulty(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if canonical, ok := difficultySynonyms[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// IsBlankRow reports whether every field of the row is empty after trimming.
// Blank rows are skipped before validation and never count as errors.
func IsBlankRow(row map[string]string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// ParseRow validates one raw record (column name → raw string) and either
// returns a fully-formed Question or a single RowError naming the row and
// the first violated rule. rowNum is 1-based and counts the header row.
func ParseRow(row map[string]string, rowNum int) (*model.Question, *model.RowError) {
	text := strings.TrimSpace(row["question"])
	if text == "" {
		return nil, &model.RowError{
			Row: rowNum, Rule: RuleQuestionText,
			Message: "question text is empty",
		}
	}

	options := make([]string, model.OptionCount)
	var missing []string
	for i, col := range optionColumns {
		opt := strings.TrimSpace(row[col])
		if opt == "" {
			missing = append(missing, col)
			continue
		}
		options[i] = opt
	}
	if len(missing) > 0 {
		return nil, &model.RowError{
			Row: rowNum, Rule: RuleOptionCount,
			Message: fmt.Sprintf("empty option field(s): %s", strings.Join(missing, ", ")),
		}
	}

	seen := make(map[string]struct{}, model.OptionCount)
	for _, opt := range options {
		key := model.NormalizeOption(opt)
		if _, dup := seen[key]; dup {
			return nil, &model.RowError{
				Row: rowNum, Rule: RuleOptionDistinct,
				Message: fmt.Sprintf("duplicate option %q", opt),
			}
		}
		seen[key] = struct{}{}
	}

	rawAnswer := strings.TrimSpace(row["correct_answer"])
	answer, err := strconv.Atoi(rawAnswer)
	if err != nil {
		return nil, &model.RowError{
			Row: rowNum, Rule: RuleCorrectAnswer,
			Message: fmt.Sprintf("correct_answer %q is not an integer", rawAnswer),
		}
	}
	if answer < 1 || answer > model.OptionCount {
		return nil, &model.RowError{
			Row: rowNum, Rule: RuleCorrectAnswer,
			Message: fmt.Sprintf("correct_answer %d is out of range 1-%d", answer, model.OptionCount),
		}
	}

	// The input convention is 1-based; everything downstream is 0-based.
	q, err := model.NewQuestion(text, options, answer-1)
	if err != nil {
		return nil, &model.RowError{
			Row: rowNum, Rule: RuleOptionCount, Message: err.Error(),
		}
	}

	q.Explanation = strings.TrimSpace(row["explanation"])
	optionExplanations := make([]string, model.OptionCount)
	var hasOptionExplanation bool
	for i, col := range optionExplanationColumns {
		optionExplanations[i] = strings.TrimSpace(row[col])
		if optionExplanations[i] != "" {
			hasOptionExplanation = true
		}
	}
	if hasOptionExplanation {
		_ = q.SetOptionExplanations(optionExplanations)
	}

	q.Genre = strings.TrimSpace(row["genre"])
	q.Difficulty = NormalizeDifficulty(row["difficulty"])
	q.Tags = strings.TrimSpace(row["tags"])
	q.Source = strings.TrimSpace(row["source"])
	q.Title = strings.TrimSpace(row["title"])

	for col, raw := range row {
		if _, reserved := reservedColumns[col]; reserved {
			continue
		}
		val := strings.TrimSpace(raw)
		if val == "" {
			continue
		}
		if q.Metadata == nil {
			q.Metadata = make(map[string]string)
		}
		q.Metadata[col] = val
	}

	return q, nil
}
