package controllers

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/utils"
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type PaymentController struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	PaymentUsecase contracts.PaymentUsecase
}

func NewPaymentController(logger *zap.Logger, internalConfig *config.InternalConfig, paymentUsecase contracts.PaymentUsecase) *PaymentController {
	return &PaymentController{
		Log:            logger,
		InternalConfig: internalConfig,
		PaymentUsecase: paymentUsecase,
	}
}

func (ctrl *PaymentController) InitiateMomoPayment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.InitiatePayment)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}
	request.UserID, _ = r.Context().Value(constvars.CONTEXT_USER_ID_KEY).(string)

	// the gateway call has its own timeout, leave room for it
	timeout := requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds) +
		requestTimeout(ctrl.InternalConfig.Momo.RequestTimeoutInSeconds)
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	result, err := ctrl.PaymentUsecase.InitiatePayment(ctx, request)
	if err != nil {
		ctrl.Log.Error("PaymentController.InitiateMomoPayment error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.InitiatePaymentSuccessMessage, result)
}

func (ctrl *PaymentController) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.ConfirmPayment)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	if err := ctrl.PaymentUsecase.ConfirmPayment(ctx, request); err != nil {
		ctrl.Log.Error("PaymentController.ConfirmPayment error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ConfirmPaymentSuccessMessage, nil)
}

// MomoNotification receives the gateway's server-to-server IPN. The body is
// trusted only after its signature has been verified by the usecase.
func (ctrl *PaymentController) MomoNotification(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	notification := new(requests.MomoNotification)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, notification) {
		return
	}

	ctrl.Log.Info("PaymentController.MomoNotification received",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, notification.OrderID),
		zap.Int(constvars.LoggingResultCodeKey, notification.ResultCode),
		zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	if err := ctrl.PaymentUsecase.HandleNotification(ctx, notification); err != nil {
		ctrl.Log.Error("PaymentController.MomoNotification error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, notification.OrderID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentNotificationSuccessMessage, nil)
}
