package config

import (
	"context"
	"errors"

	"github.com/go-chi/chi/v5"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Bootstrap carries the shared clients built in main. RabbitMQ is nil when
// event publishing is disabled.
type Bootstrap struct {
	Router         *chi.Mux
	MongoDB        *mongo.Client
	Redis          *redis.Client
	Logger         *zap.Logger
	RabbitMQ       *amqp091.Connection
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
	// WorkerStop stops the slot reconciler and waits for a running pass.
	WorkerStop func()
}

// Shutdown stops workers first so no pass runs against closed clients, then
// closes every client it holds. All close errors are returned together.
func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.WorkerStop != nil {
		b.WorkerStop()
		b.Logger.Info("Stopped slot reconciler")
	}

	var errs []error
	closeResource := func(name string, closeFn func() error) {
		if err := closeFn(); err != nil {
			b.Logger.Error("Failed to close resource", zap.String("resource", name), zap.Error(err))
			errs = append(errs, err)
			return
		}
		b.Logger.Info("Closed resource", zap.String("resource", name))
	}

	if b.MongoDB != nil {
		closeResource("mongodb", func() error { return b.MongoDB.Disconnect(ctx) })
	}
	if b.Redis != nil {
		closeResource("redis", b.Redis.Close)
	}
	if b.RabbitMQ != nil {
		closeResource("rabbitmq", b.RabbitMQ.Close)
	}

	return errors.Join(errs...)
}
