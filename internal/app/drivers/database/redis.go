package database

import (
	"clinic-service/internal/app/config"
	"context"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func NewRedisClient(driverConfig *config.DriverConfig, logger *zap.Logger) *redis.Client {
	cfg := driverConfig.Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("Could not connect to redis", zap.String("address", rdb.Options().Addr), zap.Error(err))
	}
	logger.Info("Connected to redis", zap.String("address", rdb.Options().Addr), zap.Int("db", cfg.DB))

	return rdb
}
