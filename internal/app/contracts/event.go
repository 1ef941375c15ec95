package contracts

import (
	"clinic-service/internal/app/models"
	"context"
)

type EventPublisher interface {
	PublishAppointmentEvent(ctx context.Context, event *models.AppointmentEvent) error
}
