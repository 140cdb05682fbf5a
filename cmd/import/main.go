package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/quizlab/quizlab-backend/internal/config"
	"github.com/quizlab/quizlab-backend/internal/database"
	"github.com/quizlab/quizlab-backend/internal/logger"
	"github.com/quizlab/quizlab-backend/internal/repository"
	"github.com/quizlab/quizlab-backend/internal/service"
)

// One-shot CSV import. Usage:
//
//	import [-overwrite] <file.csv>
func main() {
	var overwrite bool
	flag.BoolVar(&overwrite, "overwrite", false, "Insert duplicates as new records")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: import [-overwrite] <file.csv>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	questionRepo := repository.NewQuestionRepository(pool)
	importService := service.NewImportService(questionRepo, nil, log)

	result, err := importService.ImportFile(ctx, path, overwrite)
	if err != nil {
		if result != nil {
			printReport(result.Errors, result.Warnings)
		}
		log.Fatal().Err(err).Str("file", path).Msg("Import failed")
	}

	printReport(result.Errors, result.Warnings)
	fmt.Printf("Imported %s: inserted=%d skipped=%d errors=%d\n",
		path, result.Inserted, result.Skipped, len(result.Errors))
	if result.Report != nil {
		fmt.Printf("Quality score: %.1f/100 (high quality: %t)\n",
			result.Report.Score, result.Report.IsHighQuality())
	}
}

func printReport(errors, warnings []string) {
	for _, e := range errors {
		fmt.Printf("ERROR   %s\n", e)
	}
	for _, w := range warnings {
		fmt.Printf("WARNING %s\n", w)
	}
}
