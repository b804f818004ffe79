package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"scrapemyuni.backend/internal/config"
	"scrapemyuni.backend/internal/domain/repositories"
	"scrapemyuni.backend/internal/infrastructure/bootstrap"
	"scrapemyuni.backend/internal/infrastructure/datasources"
	"scrapemyuni.backend/pkg/logger"
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

// run writes the collection templates and returns the process exit code
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

	return initialize(ctx, store)
}

func initialize(ctx context.Context, store repositories.DocumentStore) int {
	if !bootstrap.NewBootstrapper(store).Initialize(ctx) {
		logger.Error(ctx, "Collection bootstrap failed")
		return 1
	}
	logger.Info(ctx, "Collection bootstrap complete")
	return 0
}
