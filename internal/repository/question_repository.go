package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizlab/quizlab-backend/internal/model"
)

// QuestionRepository handles question data access. It is the storage
// collaborator behind the ingestion pipeline and the quiz service.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

const questionColumns = `id, text, options, correct_index, explanation, option_explanations,
	genre, difficulty, tags, source, title, metadata, source_file, created_at`

// FindByText returns the question whose text matches exactly and which was
// ingested from the same source file name, or nil when there is none.
func (r *QuestionRepository) FindByText(ctx context.Context, text, sourceFile string) (*model.Question, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+`
		 FROM questions WHERE text = $1 AND source_file = $2
		 LIMIT 1`, strings.TrimSpace(text), sourceFile,
	)
	q, err := scanQuestion(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

// Save inserts a new question and assigns its persisted id.
func (r *QuestionRepository) Save(ctx context.Context, q *model.Question) (*model.Question, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO questions
		   (text, options, correct_index, explanation, option_explanations,
		    genre, difficulty, tags, source, title, metadata, source_file)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at`,
		q.Text, q.Options, q.CorrectIndex, q.Explanation, q.OptionExplanations,
		q.Genre, q.Difficulty, q.Tags, q.Source, q.Title, q.Metadata, q.SourceFile,
	).Scan(&q.ID, &q.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert question: %w", err)
	}
	return q, nil
}

// List retrieves questions matching the filter. Shuffle returns an
// arbitrary-order subset of at most Limit matching records.
func (r *QuestionRepository) List(ctx context.Context, filter model.QuestionFilter) ([]model.Question, error) {
	var (
		where []string
		args  []any
	)
	if filter.Genre != "" {
		args = append(args, filter.Genre)
		where = append(where, fmt.Sprintf("genre = $%d", len(args)))
	}
	if filter.Difficulty != "" {
		args = append(args, filter.Difficulty)
		where = append(where, fmt.Sprintf("difficulty = $%d", len(args)))
	}

	query := `SELECT ` + questionColumns + ` FROM questions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	if filter.Shuffle {
		query += " ORDER BY random()"
	} else {
		query += " ORDER BY id"
	}
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

// Count returns the total number of stored questions.
func (r *QuestionRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&count)
	return count, err
}

// CountByGenre returns question counts keyed by genre; questions without
// a genre are grouped under the empty key.
func (r *QuestionRepository) CountByGenre(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT genre, COUNT(*) FROM questions GROUP BY genre`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var genre string
		var count int
		if err := rows.Scan(&genre, &count); err != nil {
			return nil, err
		}
		counts[genre] = count
	}
	return counts, rows.Err()
}

func scanQuestion(row pgx.Row) (*model.Question, error) {
	var q model.Question
	err := row.Scan(
		&q.ID, &q.Text, &q.Options, &q.CorrectIndex, &q.Explanation, &q.OptionExplanations,
		&q.Genre, &q.Difficulty, &q.Tags, &q.Source, &q.Title, &q.Metadata, &q.SourceFile, &q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}
