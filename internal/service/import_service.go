package service

import (
	"context"
	"io"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/quizlab/quizlab-backend/internal/config"
	"github.com/quizlab/quizlab-backend/internal/importer"
	"github.com/quizlab/quizlab-backend/internal/model"
)

// ImportService runs the question ingestion pipeline and keeps derived
// caches coherent afterwards.
type ImportService struct {
	pipeline *importer.Pipeline
	// rdb invalidates the cached question stats after a successful
	// import; nil disables cache handling (CLI usage).
	rdb *redis.Client
	log zerolog.Logger
}

// NewImportService creates a new ImportService.
func NewImportService(store importer.QuestionStore, rdb *redis.Client, log zerolog.Logger) *ImportService {
	return &ImportService{
		pipeline: importer.NewPipeline(store, log),
		rdb:      rdb,
		log:      log.With().Str("component", "import_service").Logger(),
	}
}

// Import ingests one tabular stream under the given source file name.
func (s *ImportService) Import(ctx context.Context, r io.Reader, sourceFile string, overwrite bool) (*model.ImportResult, error) {
	result, err := s.pipeline.Run(ctx, r, sourceFile, overwrite)
	if err != nil {
		return result, err
	}

	if s.rdb != nil && result.Inserted > 0 {
		if err := s.rdb.Del(ctx, config.CacheKey.QuestionStatsKey()).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Failed to invalidate question stats cache")
		}
	}
	return result, nil
}

// ImportFile ingests one tabular file from disk.
func (s *ImportService) ImportFile(ctx context.Context, path string, overwrite bool) (*model.ImportResult, error) {
	result, err := s.pipeline.RunFile(ctx, path, overwrite)
	if err != nil {
		return result, err
	}

	if s.rdb != nil && result.Inserted > 0 {
		if err := s.rdb.Del(ctx, config.CacheKey.QuestionStatsKey()).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Failed to invalidate question stats cache")
		}
	}
	return result, nil
}
