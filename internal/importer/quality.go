package importer

import (
	"fmt"
	"unicode/utf8"

	"github.com/quizlab/quizlab-backend/internal/model"
)

// Quality heuristic bounds. Warnings are advisory only and never block
// ingestion.
const (
	minQuestionLength = 10
	maxQuestionLength = 500
	optionLengthRatio = 3
)

// placeholderOptions are option texts that usually mean the row is filler.
// Compared after case/whitespace normalization.
var placeholderOptions = map[string]struct{}{
	"test": {}, "sample": {}, "dummy": {}, "placeholder": {},
	"テスト": {}, "サンプル": {}, "ダミー": {},
}

// BuildReport aggregates one read pass into a DataQualityReport: row
// counts, annotation counts, per-row heuristic warnings, and the final
// quality score.
func BuildReport(result *ReadResult) *model.DataQualityReport {
	report := &model.DataQualityReport{
		TotalRows: len(result.Questions) + len(result.Errors),
		ValidRows: len(result.Questions),
		Errors:    result.Errors,
		Warnings:  result.Warnings,
	}

	for _, pq := range result.Questions {
		q := pq.Question
		if q.Explanation != "" || hasOptionExplanation(q) {
			report.RowsWithExplanation++
		}
		if hasOptionExplanation(q) {
			report.RowsWithOptionExplained++
		}
		if hasMetadata(q) {
			report.RowsWithMetadata++
		}
		report.Warnings = append(report.Warnings, questionWarnings(pq)...)
	}

	report.Score = Score(report)
	return report
}

// Score computes the aggregate quality metric. The formula is fixed for
// compatibility with existing report consumers:
//
//	base(100·valid/total) + explanation bonus(≤20) + metadata bonus(≤10)
//	− error penalty(≤30) − warning penalty(≤20), clamped to [0,100].
func Score(report *model.DataQualityReport) float64 {
	if report.TotalRows == 0 {
		return 0
	}

	score := 100 * float64(report.ValidRows) / float64(report.TotalRows)

	if report.ValidRows > 0 {
		score += 20 * float64(report.RowsWithExplanation) / float64(report.ValidRows)
		score += 10 * float64(report.RowsWithMetadata) / float64(report.ValidRows)
	}

	score -= min(5*float64(len(report.Errors)), 30)
	score -= min(1*float64(len(report.Warnings)), 20)

	return min(max(score, 0), 100)
}

// questionWarnings applies the per-row quality heuristics to one valid row.
func questionWarnings(pq ParsedQuestion) []model.RowWarning {
	q := pq.Question
	var warnings []model.RowWarning
	warn := func(format string, args ...any) {
		warnings = append(warnings, model.RowWarning{
			Row:     pq.Row,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if n := utf8.RuneCountInString(q.Text); n < minQuestionLength {
		warn("question text is very short (%d chars)", n)
	} else if n > maxQuestionLength {
		warn("question text is very long (%d chars)", n)
	}

	shortest, longest := optionLengthRange(q.Options)
	if shortest > 0 && longest/shortest >= optionLengthRatio {
		warn("option lengths are unbalanced (%d vs %d chars)", longest, shortest)
	}

	for _, opt := range q.Options {
		if _, ok := placeholderOptions[model.NormalizeOption(opt)]; ok {
			warn("option %q looks like placeholder text", opt)
		}
	}

	if q.Explanation == "" && !hasOptionExplanation(q) {
		warn("no explanation provided")
	}

	if !hasMetadata(q) {
		warn("no optional metadata provided")
	}

	return warnings
}

// hasMetadata reports whether any optional classification field or
// extension-map entry is set on the question.
func hasMetadata(q *model.Question) bool {
	return q.Genre != "" || q.Difficulty != "" || q.Tags != "" ||
		q.Source != "" || q.Title != "" || len(q.Metadata) > 0
}

func hasOptionExplanation(q *model.Question) bool {
	for _, e := range q.OptionExplanations {
		if e != "" {
			return true
		}
	}
	return false
}

func optionLengthRange(options []string) (shortest, longest int) {
	for i, opt := range options {
		n := utf8.RuneCountInString(opt)
		if i == 0 || n < shortest {
			shortest = n
		}
		if n > longest {
			longest = n
		}
	}
	return shortest, longest
}
