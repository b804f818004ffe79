package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"scrapemyuni.backend/internal/config"
	"scrapemyuni.backend/internal/domain/schema"
	"scrapemyuni.backend/internal/infrastructure/datasources"
	"scrapemyuni.backend/internal/infrastructure/jobs"
	"scrapemyuni.backend/internal/interfaces/http/handlers"
	"scrapemyuni.backend/internal/interfaces/http/middleware"
	"scrapemyuni.backend/internal/usecases"
	"scrapemyuni.backend/pkg/logger"
	"scrapemyuni.backend/pkg/redis"
	"scrapemyuni.backend/pkg/validation"
)

const shutdownTimeout = 10 * time.Second

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openStore  = datasources.OpenDocumentStore
	newMetrics = func() *prometheus.Registry {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		return reg
	}
	runServer = func(ctx context.Context, h http.Handler, port string) error {
		srv := &http.Server{Addr: ":" + port, Handler: h, ReadHeaderTimeout: 10 * time.Second}
		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
	}
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	defer logger.Sync()
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Redis only backs idempotency; an empty URL disables it
	if cfg.Redis.URL != "" {
		if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
			logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		defer redis.Close()
		logger.Info(context.Background(), "Redis initialized")
	} else {
		logger.Warn(context.Background(), "REDIS_URL not set, idempotency keys are ignored")
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open document store: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn(context.Background(), "Failed to close document store", zap.Error(err))
		}
	}()

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	if err := store.Ping(pingCtx); err != nil {
		log.Printf("⚠️ Document store not available: %v (endpoints will return errors)", err)
	} else {
		log.Printf("✅ Connected to %s document store", cfg.Store.Driver)
	}
	pingCancel()

	// Initialize usecases
	registry := schema.NewDefaultRegistry()
	validator := validation.NewValidator()
	universityService := usecases.NewUniversityService(store, registry, validator)
	programService := usecases.NewProgramService(store, registry, validator)
	applicationService := usecases.NewApplicationService(store, registry, validator)
	userService := usecases.NewUserService(store, registry, validator)
	scrapeRequestService := usecases.NewScrapeRequestService(store, registry, validator)
	statsService := usecases.NewStatsService(store)

	// Start background jobs
	admissionJob := jobs.NewAdmissionStatusJob(universityService, cfg.Jobs.AdmissionStatusSchedule)
	if cfg.Jobs.AdmissionStatusEnabled {
		go func() {
			if err := admissionJob.Start(ctx); err != nil {
				logger.Error(ctx, "Admission status job not started", zap.Error(err))
			}
		}()
	}

	metricsRegistry := newMetrics()
	metrics, err := middleware.NewPrometheusMiddleware(metricsRegistry)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware("/health", "/metrics"))
	r.Use(metrics.Handler())
	r.Use(middleware.IdentityMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r, store.Ping)
	registerMetricsRoute(r, metricsRegistry)
	registerAPIV1Routes(r, routeDeps{
		universityHandler:     handlers.NewUniversityHandler(universityService),
		programHandler:        handlers.NewProgramHandler(programService),
		applicationHandler:    handlers.NewApplicationHandler(applicationService),
		userHandler:           handlers.NewUserHandler(userService),
		scrapeRequestHandler:  handlers.NewScrapeRequestHandler(scrapeRequestService),
		statsHandler:          handlers.NewStatsHandler(statsService),
		idempotencyMiddleware: idempotencyMiddlewareFor(cfg.Redis.URL),
	})

	// Print all registered routes for debugging
	log.Println("📋 Registered Routes:")
	for _, route := range r.Routes() {
		log.Printf("   %s %s", route.Method, route.Path)
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			log.Println("🛑 Shutting down server...")
			admissionJob.Stop()
			cancel()
		case <-ctx.Done():
		}
	}()

	log.Printf("🚀 ScrapeMyUni Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(ctx, r, cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
