package config

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	db     *mongo.Database
	client *mongo.Client
	once   sync.Once
	dbErr  error
)

// ConnectDB connects once and returns the society database.
func ConnectDB(cfg MongoConfig) (*mongo.Database, error) {
	once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		c, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
		if err != nil {
			dbErr = fmt.Errorf("failed to connect to MongoDB: %w", err)
			return
		}
		if err := c.Ping(ctx, nil); err != nil {
			dbErr = fmt.Errorf("failed to ping MongoDB: %w", err)
			return
		}

		slog.Info("Connected to MongoDB", "database", cfg.Database)
		client = c
		db = client.Database(cfg.Database)
	})

	return db, dbErr
}

func DisconnectDB(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
