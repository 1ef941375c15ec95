package messaging

import (
	"clinic-service/internal/app/config"
	"fmt"
	"net/url"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

func rabbitMQURL(cfg config.RabbitMQ) string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(cfg.Username, cfg.Password),
		Host:   fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Path:   "/" + url.PathEscape(cfg.VHost),
	}
	if cfg.VHost == "" || cfg.VHost == "/" {
		u.Path = "/"
	}
	return u.String()
}

// NewRabbitMQ dials the broker used for appointment events.
func NewRabbitMQ(driverConfig *config.DriverConfig, logger *zap.Logger) *amqp091.Connection {
	cfg := driverConfig.RabbitMQ

	properties := amqp091.NewConnectionProperties()
	properties.SetClientConnectionName("clinic-service")

	conn, err := amqp091.DialConfig(rabbitMQURL(cfg), amqp091.Config{
		Heartbeat:  time.Duration(cfg.HeartbeatInSeconds) * time.Second,
		Properties: properties,
	})
	if err != nil {
		logger.Fatal("Failed to connect to rabbitMQ", zap.String("host", cfg.Host), zap.Error(err))
	}

	logger.Info("Connected to rabbitMQ", zap.String("host", cfg.Host), zap.String("vhost", cfg.VHost))
	return conn
}
