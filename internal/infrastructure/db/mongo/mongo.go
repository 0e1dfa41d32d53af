package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	connectTimeout = 10 * time.Second

	// maxPoolSize bounds concurrent store work; a session borrows a
	// connection only for the duration of one request.
	maxPoolSize = 64
)

// Config captures the settings required to reach the catalog database.
type Config struct {
	URI      string
	Database string
}

// Connect dials MongoDB and confirms the server is reachable before the
// acceptor starts. The returned client is safe for concurrent use by every
// session.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	dialCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(connectTimeout).
		SetMaxPoolSize(maxPoolSize)

	client, err := mongo.Connect(dialCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(dialCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}
