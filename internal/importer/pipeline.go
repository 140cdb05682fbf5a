package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/quizlab/quizlab-backend/internal/model"
)

// ErrNoUsableQuestions means a non-empty input produced zero valid rows.
var ErrNoUsableQuestions = errors.New("no usable questions in input")

// QuestionStore is the persistence collaborator consumed by the pipeline.
// Implementations wrap one row's duplicate-check-then-insert in their own
// transaction boundary; the pipeline does not serialize concurrent imports
// of the same file (known limitation for a single-operator tool).
type QuestionStore interface {
	// FindByText returns the stored question whose trimmed text matches
	// exactly and which originated from the same source file, or nil.
	FindByText(ctx context.Context, text, sourceFile string) (*model.Question, error)
	// Save inserts the question and assigns its persisted id.
	Save(ctx context.Context, q *model.Question) (*model.Question, error)
}

// Pipeline orchestrates read → validate → score → persist for one file.
type Pipeline struct {
	store QuestionStore
	log   zerolog.Logger
}

// NewPipeline creates a Pipeline backed by the given question store.
func NewPipeline(store QuestionStore, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		store: store,
		log:   log.With().Str("component", "import_pipeline").Logger(),
	}
}

// RunFile ingests one tabular file from disk. The file's base name becomes
// the source file name used for duplicate suppression.
func (p *Pipeline) RunFile(ctx context.Context, path string, overwrite bool) (*model.ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return p.Run(ctx, f, filepath.Base(path), overwrite)
}

// Run ingests one tabular stream. Rows that fail validation are skipped and
// reported; the run as a whole fails only on structural errors (undecodable
// input, missing columns) or when a non-empty input yields zero usable
// questions. A question is a duplicate when its trimmed text matches an
// existing record from the same source file name; duplicates are skipped
// unless overwrite is set, in which case they are inserted as new records.
func (p *Pipeline) Run(ctx context.Context, r io.Reader, sourceFile string, overwrite bool) (*model.ImportResult, error) {
	readResult, err := Read(r)
	if err != nil {
		return nil, err
	}

	report := BuildReport(readResult)
	result := &model.ImportResult{
		Errors:   errorStrings(report.Errors),
		Warnings: warningStrings(report.Warnings),
		Report:   report,
	}

	if report.TotalRows > 0 && report.ValidRows == 0 {
		result.Success = false
		return result, ErrNoUsableQuestions
	}

	for _, pq := range readResult.Questions {
		q := pq.Question
		q.SourceFile = sourceFile

		if !overwrite {
			existing, err := p.store.FindByText(ctx, q.Text, sourceFile)
			if err != nil {
				return nil, fmt.Errorf("duplicate check: %w", err)
			}
			if existing != nil {
				result.Skipped++
				continue
			}
		}

		if _, err := p.store.Save(ctx, q); err != nil {
			return nil, fmt.Errorf("save question (row %d): %w", pq.Row, err)
		}
		result.Inserted++
	}

	result.Success = true
	p.log.Info().
		Str("source_file", sourceFile).
		Int("inserted", result.Inserted).
		Int("skipped", result.Skipped).
		Int("errors", len(result.Errors)).
		Float64("quality_score", report.Score).
		Bool("high_quality", report.IsHighQuality()).
		Msg("Import finished")

	return result, nil
}

func errorStrings(errs []model.RowError) []string {
	out := make([]string, len(errs))
	for i := range errs {
		out[i] = errs[i].Error()
	}
	return out
}

func warningStrings(warnings []model.RowWarning) []string {
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = w.String()
	}
	return out
}
