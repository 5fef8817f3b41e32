package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/noah-isme/office-space-api/internal/ingest"
	"github.com/noah-isme/office-space-api/internal/repository"
	"github.com/noah-isme/office-space-api/pkg/config"
	"github.com/noah-isme/office-space-api/pkg/database"
	"github.com/noah-isme/office-space-api/pkg/logger"
)

func main() {
	var (
		csvPath    string
		initSchema bool
		timeout    time.Duration
	)

	flag.StringVar(&csvPath, "csv", "", "Path to the legacy roster CSV file")
	flag.BoolVar(&initSchema, "init", false, "Drop and recreate the assignments table before importing")
	flag.DurationVar(&timeout, "timeout", 5*time.Minute, "Overall import timeout")
	flag.Parse()

	if csvPath == "" && !initSchema {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck
	sugar := logr.Sugar()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		sugar.Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	repo := repository.NewAssignmentRepository(db)

	if initSchema {
		if err := repo.InitSchema(ctx); err != nil {
			sugar.Fatalw("schema initialization failed", "error", err)
		}
		sugar.Infow("schema initialized", "table", "office_assignments")
	}

	if csvPath == "" {
		return
	}

	f, err := os.Open(csvPath)
	if err != nil {
		sugar.Fatalw("failed to open CSV file", "path", csvPath, "error", err)
	}
	defer f.Close()

	summary, err := ingest.NewPipeline(repo, logr).Run(ctx, f)
	if err != nil {
		sugar.Fatalw("import failed", "path", csvPath, "error", err)
	}

	sugar.Infow("import complete",
		"run_id", summary.RunID,
		"processed", summary.Processed,
		"inserted", summary.Inserted,
		"skipped", summary.Skipped,
		"warnings", len(summary.Warnings),
	)
	for _, w := range summary.Warnings {
		sugar.Warnw("import warning", "run_id", summary.RunID, "warning", w)
	}
}
