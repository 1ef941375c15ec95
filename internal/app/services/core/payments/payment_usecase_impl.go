package payments

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/app/services/shared/payment_gateway"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type paymentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	PaymentGateway        contracts.PaymentGatewayService
	EventPublisher        contracts.EventPublisher
	Log                   *zap.Logger
	now                   func() time.Time
}

var (
	paymentUsecaseInstance contracts.PaymentUsecase
	oncePaymentUsecase     sync.Once
)

func NewPaymentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	paymentGateway contracts.PaymentGatewayService,
	eventPublisher contracts.EventPublisher,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	oncePaymentUsecase.Do(func() {
		paymentUsecaseInstance = newPaymentUsecase(appointmentRepository, paymentGateway, eventPublisher, logger)
	})
	return paymentUsecaseInstance
}

func newPaymentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	paymentGateway contracts.PaymentGatewayService,
	eventPublisher contracts.EventPublisher,
	logger *zap.Logger,
) *paymentUsecase {
	return &paymentUsecase{
		AppointmentRepository: appointmentRepository,
		PaymentGateway:        paymentGateway,
		EventPublisher:        eventPublisher,
		Log:                   logger,
		now:                   time.Now,
	}
}

func (uc *paymentUsecase) InitiatePayment(ctx context.Context, request *requests.InitiatePayment) (*responses.InitiatePayment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.InitiatePayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, request.UserID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, request.AppointmentID)
	if err != nil {
		uc.Log.Error("paymentUsecase.InitiatePayment error calling AppointmentRepository.FindByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotExist(nil)
	}
	if appointment.UserID != request.UserID {
		return nil, exceptions.ErrAppointmentNotOwned(fmt.Errorf("appointment %s belongs to another patient", request.AppointmentID))
	}
	if appointment.Cancelled {
		return nil, exceptions.ErrAppointmentCancelled(nil)
	}
	if appointment.Payment {
		return nil, exceptions.ErrAppointmentAlreadyPaid(nil)
	}

	gatewayResponse, err := uc.PaymentGateway.CreatePayment(ctx, &requests.CreateGatewayPayment{
		AppointmentID: request.AppointmentID,
		Amount:        appointment.Amount,
	})
	if err != nil {
		uc.Log.Error("paymentUsecase.InitiatePayment error calling PaymentGateway.CreatePayment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("paymentUsecase.InitiatePayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, gatewayResponse.OrderID),
		zap.Int64(constvars.LoggingAmountKey, appointment.Amount),
	)
	return &responses.InitiatePayment{
		PayUrl:  gatewayResponse.PayUrl,
		OrderID: gatewayResponse.OrderID,
	}, nil
}

// ConfirmPayment is idempotent, confirming twice leaves the same state.
func (uc *paymentUsecase) ConfirmPayment(ctx context.Context, request *requests.ConfirmPayment) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.ConfirmPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
	)

	if strings.TrimSpace(request.AppointmentID) == "" {
		return exceptions.ErrAppointmentNotExist(errors.New("appointment id is empty"))
	}

	paid := true
	matched, err := uc.AppointmentRepository.UpdateByID(ctx, request.AppointmentID, contracts.AppointmentUpdate{Payment: &paid})
	if err != nil {
		uc.Log.Error("paymentUsecase.ConfirmPayment error calling AppointmentRepository.UpdateByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	if !matched {
		return exceptions.ErrAppointmentNotExist(nil)
	}

	appointment, err := uc.AppointmentRepository.FindByID(ctx, request.AppointmentID)
	if err == nil && appointment != nil {
		event := models.NewAppointmentEvent(constvars.EventAppointmentPaid, appointment, utils.EpochMillis(uc.now()))
		if err := uc.EventPublisher.PublishAppointmentEvent(ctx, event); err != nil {
			uc.Log.Warn("paymentUsecase.ConfirmPayment error publishing event",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}

	uc.Log.Info("paymentUsecase.ConfirmPayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
	)
	return nil
}

// HandleNotification trusts a gateway callback only after its signature checks out.
// Failed payments are acknowledged without touching the appointment. A paid amount
// that differs from the appointment fee is rejected and the appointment stays unpaid.
func (uc *paymentUsecase) HandleNotification(ctx context.Context, notification *requests.MomoNotification) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.HandleNotification called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, notification.OrderID),
		zap.Int(constvars.LoggingResultCodeKey, notification.ResultCode),
	)

	if !uc.PaymentGateway.VerifyNotification(ctx, notification) {
		return exceptions.ErrInvalidGatewaySignature(nil)
	}

	if notification.ResultCode != constvars.MomoResultCodeSuccess {
		uc.Log.Info("paymentUsecase.HandleNotification payment not successful",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, notification.OrderID),
			zap.Int(constvars.LoggingResultCodeKey, notification.ResultCode),
			zap.String("message", notification.Message),
		)
		return nil
	}

	appointmentID, err := payment_gateway.DecodeExtraData(notification.ExtraData)
	if err != nil {
		return exceptions.ErrGatewayExtraDataInvalid(err)
	}

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		uc.Log.Error("paymentUsecase.HandleNotification error calling AppointmentRepository.FindByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	if appointment == nil {
		return exceptions.ErrAppointmentNotExist(nil)
	}
	if notification.Amount != appointment.Amount {
		uc.Log.Error("paymentUsecase.HandleNotification amount mismatch, appointment left unpaid",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.String(constvars.LoggingOrderIDKey, notification.OrderID),
			zap.Int64(constvars.LoggingAmountKey, notification.Amount),
			zap.Int64("expected_amount", appointment.Amount),
		)
		return exceptions.ErrPaymentAmountMismatch(nil, notification.Amount, appointment.Amount)
	}

	return uc.ConfirmPayment(ctx, &requests.ConfirmPayment{AppointmentID: appointmentID})
}
