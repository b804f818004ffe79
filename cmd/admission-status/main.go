package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"scrapemyuni.backend/internal/config"
	"scrapemyuni.backend/internal/domain/repositories"
	"scrapemyuni.backend/internal/domain/schema"
	"scrapemyuni.backend/internal/infrastructure/datasources"
	"scrapemyuni.backend/internal/infrastructure/jobs"
	"scrapemyuni.backend/internal/usecases"
	"scrapemyuni.backend/pkg/logger"
	"scrapemyuni.backend/pkg/validation"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	openStore  = datasources.OpenDocumentStore
	exit       = os.Exit
)

func main() {
	exit(run())
}

// run performs one admission status refresh and returns the exit code
func run() int {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()
	initLog(cfg.Server.Env)
	defer logger.Sync()

	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error(ctx, "Failed to open document store", zap.Error(err))
		return 1
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn(ctx, "Failed to close document store", zap.Error(err))
		}
	}()

	return refresh(ctx, store, cfg.Jobs.AdmissionStatusSchedule)
}

func refresh(ctx context.Context, store repositories.DocumentStore, schedule string) int {
	svc := usecases.NewUniversityService(store, schema.NewDefaultRegistry(), validation.NewValidator())
	if jobs.NewAdmissionStatusJob(svc, schedule).RunOnce(ctx) == nil {
		return 1
	}
	return 0
}
