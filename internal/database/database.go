package database

import (
	"context"
	"log"
	"time"

	"go-crossroads/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

// LogStore is the MongoDB database application logs are shipped to.
// DB is nil when no LOG_MONGO_URI is configured.
type LogStore struct {
	DB *mongo.Database
}

func (s *LogStore) Enabled() bool {
	return s != nil && s.DB != nil
}

// NewLogStore connects to MongoDB with lifecycle management
func NewLogStore(lc fx.Lifecycle, cfg *config.Config) (*LogStore, error) {
	if cfg.LogMongoURI == "" {
		log.Println("LOG_MONGO_URI not set, logs stay on the console")
		return &LogStore{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.LogMongoURI))
	if err != nil {
		return nil, err
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	log.Println("Connected to MongoDB log store")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Println("Disconnecting from MongoDB...")
			return client.Disconnect(ctx)
		},
	})

	return &LogStore{DB: client.Database(cfg.LogDBName)}, nil
}
