package eventpublisher

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"context"

	"go.uber.org/zap"
)

// noopPublisher is used when RABBITMQ_PUBLISH_EVENTS is off.
type noopPublisher struct {
	log *zap.Logger
}

func NewNoopPublisher(logger *zap.Logger) contracts.EventPublisher {
	return &noopPublisher{log: logger}
}

func (p *noopPublisher) PublishAppointmentEvent(ctx context.Context, event *models.AppointmentEvent) error {
	p.log.Debug("noopPublisher.PublishAppointmentEvent skipped",
		zap.String(constvars.LoggingEventTypeKey, event.Type),
		zap.String(constvars.LoggingAppointmentIDKey, event.AppointmentID),
	)
	return nil
}
