package mongodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"scrapemyuni.backend/internal/config"
)

func withHooks(t *testing.T) {
	t.Helper()
	origConnect, origPing := mongoConnect, mongoPing
	t.Cleanup(func() {
		mongoConnect = origConnect
		mongoPing = origPing
	})
}

func TestConnect_ConnectFailure(t *testing.T) {
	withHooks(t)
	mongoConnect = func(*options.ClientOptions) (*mongo.Client, error) {
		return nil, errors.New("bad uri")
	}

	db, err := Connect(context.Background(), config.MongoConfig{URI: "mongodb://localhost:1"})
	require.Error(t, err)
	require.Nil(t, db)
	require.Contains(t, err.Error(), "failed to connect to mongodb")
}

func TestConnect_PingFailure(t *testing.T) {
	withHooks(t)
	var deadlineSet bool
	mongoPing = func(ctx context.Context, _ *mongo.Client) error {
		_, deadlineSet = ctx.Deadline()
		return errors.New("no reachable servers")
	}

	db, err := Connect(context.Background(), config.MongoConfig{
		URI:            "mongodb://localhost:1",
		Database:       "scrapemyuni",
		ConnectTimeout: time.Second,
	})
	require.Error(t, err)
	require.Nil(t, db)
	require.Contains(t, err.Error(), "failed to ping mongodb")
	require.True(t, deadlineSet)
}

func TestConnect_Success(t *testing.T) {
	withHooks(t)
	mongoPing = func(context.Context, *mongo.Client) error { return nil }

	db, err := Connect(context.Background(), config.MongoConfig{URI: "mongodb://localhost:1", Database: "scrapemyuni"})
	require.NoError(t, err)
	require.Equal(t, "scrapemyuni", db.Name())
	_ = db.Client().Disconnect(context.Background())
}
