package contracts

import (
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"context"
)

type PaymentUsecase interface {
	InitiatePayment(ctx context.Context, request *requests.InitiatePayment) (*responses.InitiatePayment, error)
	ConfirmPayment(ctx context.Context, request *requests.ConfirmPayment) error
	HandleNotification(ctx context.Context, notification *requests.MomoNotification) error
}
