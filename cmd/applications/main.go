package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"scrapemyuni.backend/internal/config"
	"scrapemyuni.backend/internal/domain/entities"
	"scrapemyuni.backend/internal/infrastructure/applicationapi"
	"scrapemyuni.backend/pkg/logger"
	"scrapemyuni.backend/pkg/utils"
)

// applicationsRuntime is the part of the Application API a user can drive
// from the command line.
type applicationsRuntime interface {
	ListByUser(ctx context.Context, userID string, status entities.ApplicationStatus) ([]*entities.Application, error)
	Get(ctx context.Context, userID, id string) (*entities.Application, error)
	Create(ctx context.Context, userID string, input *entities.ApplicationCreateInput) (*entities.Application, error)
	UpdateStatus(ctx context.Context, userID, id string, input *entities.ApplicationStatusInput) (*entities.Application, error)
	Delete(ctx context.Context, userID, id string) error
}

type applicationsDeps struct {
	loadEnv   func() error
	loadCfg   func() *config.Config
	initLog   func(env string)
	newClient func(cfg config.ApplicationAPIConfig) applicationsRuntime
	out       io.Writer
}

func defaultApplicationsDeps() applicationsDeps {
	return applicationsDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		initLog: logger.Init,
		newClient: func(cfg config.ApplicationAPIConfig) applicationsRuntime {
			return applicationapi.NewClient(cfg)
		},
		out: os.Stdout,
	}
}

type applicationsFlags struct {
	userID       string
	id           string
	status       string
	programID    string
	universityID string
	notes        string
	apiURL       string
}

func parseApplicationsArgs(args []string) (string, applicationsFlags, error) {
	var f applicationsFlags
	fs := flag.NewFlagSet("applications", flag.ContinueOnError)
	fs.StringVar(&f.userID, "user-id", "", "caller identity sent as X-User-ID (required)")
	fs.StringVar(&f.id, "id", "", "application id (get, status, delete)")
	fs.StringVar(&f.status, "status", "", "status filter for list, target status for status")
	fs.StringVar(&f.programID, "program-id", "", "program id (create)")
	fs.StringVar(&f.universityID, "university-id", "", "university id (create)")
	fs.StringVar(&f.notes, "notes", "", "notes (create, status)")
	fs.StringVar(&f.apiURL, "api-url", "", "overrides APPLICATION_API_URL")
	if err := fs.Parse(args); err != nil {
		return "", f, err
	}

	if fs.NArg() != 1 {
		return "", f, fmt.Errorf("expected one action: list, get, create, status or delete")
	}
	if f.userID == "" {
		return "", f, fmt.Errorf("--user-id is required")
	}

	action := fs.Arg(0)
	switch action {
	case "list", "create":
	case "get", "status", "delete":
		if f.id == "" {
			return "", f, fmt.Errorf("--id is required for %s", action)
		}
	default:
		return "", f, fmt.Errorf("unknown action %q", action)
	}
	if f.status != "" && !entities.ApplicationStatus(f.status).Valid() {
		return "", f, fmt.Errorf("unknown status %q", f.status)
	}
	if action == "status" && f.status == "" {
		return "", f, fmt.Errorf("--status is required for status")
	}
	return action, f, nil
}

func runApplications(args []string, deps applicationsDeps) error {
	def := defaultApplicationsDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.initLog == nil {
		deps.initLog = def.initLog
	}
	if deps.newClient == nil {
		deps.newClient = def.newClient
	}
	if deps.out == nil {
		deps.out = def.out
	}

	action, f, err := parseApplicationsArgs(args)
	if err != nil {
		return err
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := deps.loadCfg()
	deps.initLog(cfg.Server.Env)
	defer logger.Sync()

	apiCfg := cfg.ApplicationAPI
	if f.apiURL != "" {
		apiCfg.BaseURL = f.apiURL
	}
	if apiCfg.BaseURL == "" {
		return fmt.Errorf("APPLICATION_API_URL is not set")
	}
	client := deps.newClient(apiCfg)

	ctx := context.WithValue(context.Background(), logger.RequestIDKey, utils.GenerateUUIDv7().String())
	logger.Debug(ctx, "Calling Application API",
		zap.String("action", action),
		zap.String("base_url", apiCfg.BaseURL),
	)

	var result interface{}
	switch action {
	case "list":
		apps, err := client.ListByUser(ctx, f.userID, entities.ApplicationStatus(f.status))
		if err != nil {
			return fmt.Errorf("failed to list applications: %w", err)
		}
		result = map[string]interface{}{"applications": apps, "count": len(apps)}
	case "get":
		app, err := client.Get(ctx, f.userID, f.id)
		if err != nil {
			return fmt.Errorf("failed to get application %s: %w", f.id, err)
		}
		result = app
	case "create":
		app, err := client.Create(ctx, f.userID, &entities.ApplicationCreateInput{
			ProgramID:    f.programID,
			UniversityID: f.universityID,
			Notes:        f.notes,
		})
		if err != nil {
			return fmt.Errorf("failed to create application: %w", err)
		}
		result = app
	case "status":
		app, err := client.UpdateStatus(ctx, f.userID, f.id, &entities.ApplicationStatusInput{
			Status: entities.ApplicationStatus(f.status),
			Notes:  f.notes,
		})
		if err != nil {
			return fmt.Errorf("failed to update application %s: %w", f.id, err)
		}
		result = app
	case "delete":
		if err := client.Delete(ctx, f.userID, f.id); err != nil {
			return fmt.Errorf("failed to delete application %s: %w", f.id, err)
		}
		result = map[string]string{"deleted": f.id}
	}

	enc := json.NewEncoder(deps.out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func main() {
	if err := runApplications(os.Args[1:], defaultApplicationsDeps()); err != nil {
		log.Fatal(err)
	}
}
