package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Mongo bundles the client with the application database.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
	log    *zap.Logger
}

// ConnectMongo dials and pings MongoDB, retrying a few times before giving up.
func ConnectMongo(ctx context.Context, uri, dbName string, attempts int, log *zap.Logger) (*Mongo, error) {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 1; i <= attempts; i++ {
		client, err := connectOnce(ctx, uri)
		if err == nil {
			log.Info("connected to mongodb", zap.String("database", dbName))
			return &Mongo{Client: client, DB: client.Database(dbName), log: log}, nil
		}
		lastErr = err
		log.Warn("mongodb connection attempt failed", zap.Int("attempt", i), zap.Error(err))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	return nil, lastErr
}

func connectOnce(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

func (m *Mongo) Disconnect() error {
	if m == nil || m.Client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := m.Client.Disconnect(ctx); err != nil {
		return err
	}

	m.log.Info("disconnected from mongodb")
	return nil
}
