package datasources

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"scrapemyuni.backend/internal/config"
	"scrapemyuni.backend/internal/domain/repositories"
	"scrapemyuni.backend/internal/infrastructure/datasources/mongodb"
	"scrapemyuni.backend/internal/infrastructure/datasources/postgres"
	"scrapemyuni.backend/internal/infrastructure/datasources/sqlite"
	infrarepos "scrapemyuni.backend/internal/infrastructure/repositories"
	"scrapemyuni.backend/pkg/logger"
)

var (
	openPostgres = postgres.NewConnection
	openSQLite   = sqlite.NewConnection
	openMongo    = mongodb.Connect
)

// OpenDocumentStore connects the backend selected by STORE_DRIVER. The
// returned close function releases the connection.
func OpenDocumentStore(ctx context.Context, cfg *config.Config) (repositories.DocumentStore, func() error, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres, config.StoreDriverSQLite:
		open := func() (*infrarepos.GormDocumentStore, error) {
			if cfg.Store.Driver == config.StoreDriverSQLite {
				db, err := openSQLite(cfg.Store.SQLitePath)
				if err != nil {
					return nil, err
				}
				return infrarepos.NewGormDocumentStore(db), nil
			}
			db, err := openPostgres(cfg.Database)
			if err != nil {
				return nil, err
			}
			return infrarepos.NewGormDocumentStore(db), nil
		}
		store, err := open()
		if err != nil {
			return nil, nil, err
		}
		if err := store.AutoMigrate(); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("failed to migrate documents table: %w", err)
		}
		logger.Info(ctx, "Document store ready", zap.String("driver", cfg.Store.Driver))
		return store, store.Close, nil

	case config.StoreDriverMongo:
		db, err := openMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		logger.Info(ctx, "Document store ready",
			zap.String("driver", cfg.Store.Driver),
			zap.String("database", cfg.Mongo.Database),
		)
		return infrarepos.NewMongoDocumentStore(db), func() error {
			return db.Client().Disconnect(context.Background())
		}, nil
	}
	return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
}
