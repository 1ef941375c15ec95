package main

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/drivers/database"
	"clinic-service/internal/app/drivers/logger"
	"context"
	"time"

	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLogger.Sync()

	client := database.NewMongoDB(driverConfig, zapLogger)
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			zapLogger.Error("Error disconnecting mongo", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	names, err := database.EnsureIndexes(ctx, client, driverConfig.MongoDB.DbName)
	if err != nil {
		zapLogger.Error("Error ensuring indexes", zap.Error(err))
		return
	}

	zapLogger.Info("Indexes ready",
		zap.String("database", driverConfig.MongoDB.DbName),
		zap.Strings("indexes", names),
		zap.Int("count", len(names)),
	)
}
