package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"scrapemyuni.backend/internal/config"
)

var (
	mongoConnect = func(opts *options.ClientOptions) (*mongo.Client, error) { return mongo.Connect(opts) }
	mongoPing    = func(ctx context.Context, c *mongo.Client) error { return c.Ping(ctx, readpref.Primary()) }
)

// Connect opens a client, verifies it with a ping and returns the
// configured database.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Database, error) {
	client, err := mongoConnect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}
	if err := mongoPing(pingCtx, client); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return client.Database(cfg.Database), nil
}
