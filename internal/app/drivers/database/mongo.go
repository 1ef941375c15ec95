package database

import (
	"clinic-service/internal/app/config"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

func mongoConnectionString(cfg config.MongoDB) string {
	switch {
	case cfg.URI != "":
		return cfg.URI
	case cfg.Username == "":
		return fmt.Sprintf("mongodb://%s:%s", cfg.Host, cfg.Port)
	default:
		return fmt.Sprintf("mongodb://%s:%s@%s:%s", cfg.Username, cfg.Password, cfg.Host, cfg.Port)
	}
}

// NewMongoDB connects and pings the primary. Startup cannot continue without
// the store, so failures are fatal.
func NewMongoDB(driverConfig *config.DriverConfig, logger *zap.Logger) *mongo.Client {
	cfg := driverConfig.MongoDB
	timeout := time.Duration(cfg.ConnectTimeoutInSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(mongoConnectionString(cfg)).
		SetConnectTimeout(timeout).
		SetAppName("clinic-service")
	if cfg.MaxPoolSize > 0 {
		clientOptions.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		logger.Fatal("Failed to connect to mongo database", zap.Error(err))
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Fatal("Failed to ping mongo primary", zap.Error(err))
	}

	logger.Info("Connected to mongo database",
		zap.String("database", cfg.DbName),
		zap.Uint64("max_pool_size", cfg.MaxPoolSize),
	)
	return client
}
