package eventpublisher

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// rabbitMQPublisher emits appointment lifecycle events to a durable topic
// exchange. The routing key is the event type.
type rabbitMQPublisher struct {
	ch       publishChannel
	confirms <-chan amqp.Confirmation
	exchange string
	log      *zap.Logger
	mu       sync.Mutex
}

func NewRabbitMQPublisher(conn *amqp.Connection, exchange string, logger *zap.Logger) (contracts.EventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		amqp.ExchangeTopic,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return newRabbitMQPublisher(ch, ch.NotifyPublish(make(chan amqp.Confirmation, 1)), exchange, logger), nil
}

func newRabbitMQPublisher(ch publishChannel, confirms <-chan amqp.Confirmation, exchange string, logger *zap.Logger) *rabbitMQPublisher {
	return &rabbitMQPublisher{
		ch:       ch,
		confirms: confirms,
		exchange: exchange,
		log:      logger,
	}
}

func (p *rabbitMQPublisher) PublishAppointmentEvent(ctx context.Context, event *models.AppointmentEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.log.Info("rabbitMQPublisher.PublishAppointmentEvent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventTypeKey, event.Type),
		zap.String(constvars.LoggingAppointmentIDKey, event.AppointmentID),
	)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    requestID,
		Type:         event.Type,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, p.exchange, event.Type, false, false, msg); err != nil {
		p.log.Error("rabbitMQPublisher.PublishAppointmentEvent error publishing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, p.exchange)
	}

	select {
	case confirmed, ok := <-p.confirms:
		if !ok || !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), p.exchange)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), p.exchange)
	}

	p.log.Info("rabbitMQPublisher.PublishAppointmentEvent succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventTypeKey, event.Type),
	)
	return nil
}
