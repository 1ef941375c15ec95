package contracts

import (
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"context"
)

type PaymentGatewayService interface {
	CreatePayment(ctx context.Context, request *requests.CreateGatewayPayment) (*responses.MomoCreatePayment, error)
	VerifyNotification(ctx context.Context, notification *requests.MomoNotification) bool
}
