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

type AppointmentController struct {
	Log                *zap.Logger
	InternalConfig     *config.InternalConfig
	AppointmentUsecase contracts.AppointmentUsecase
}

func NewAppointmentController(logger *zap.Logger, internalConfig *config.InternalConfig, appointmentUsecase contracts.AppointmentUsecase) *AppointmentController {
	return &AppointmentController{
		Log:                logger,
		InternalConfig:     internalConfig,
		AppointmentUsecase: appointmentUsecase,
	}
}

func (ctrl *AppointmentController) BookAppointment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.BookAppointment)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}
	request.UserID, _ = r.Context().Value(constvars.CONTEXT_USER_ID_KEY).(string)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	result, err := ctrl.AppointmentUsecase.BookSlot(ctx, request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.BookAppointment error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
			zap.String(constvars.LoggingSlotDateKey, request.SlotDate),
			zap.String(constvars.LoggingSlotTimeKey, request.SlotTime),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.BookAppointmentSuccessMessage, result)
}

func (ctrl *AppointmentController) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.CancelAppointment)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}
	request.UserID, _ = r.Context().Value(constvars.CONTEXT_USER_ID_KEY).(string)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	if err := ctrl.AppointmentUsecase.CancelSlot(ctx, request); err != nil {
		ctrl.Log.Error("AppointmentController.CancelAppointment error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CancelAppointmentSuccessMessage, nil)
}

func (ctrl *AppointmentController) ListUserAppointments(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	userID, _ := r.Context().Value(constvars.CONTEXT_USER_ID_KEY).(string)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	result, err := ctrl.AppointmentUsecase.ListUserAppointments(ctx, userID)
	if err != nil {
		ctrl.Log.Error("AppointmentController.ListUserAppointments error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserIDKey, userID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentsSuccessMessage, result)
}

func (ctrl *AppointmentController) ListDoctorAppointments(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	doctorID, _ := r.Context().Value(constvars.CONTEXT_DOCTOR_ID_KEY).(string)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	result, err := ctrl.AppointmentUsecase.ListDoctorAppointments(ctx, doctorID)
	if err != nil {
		ctrl.Log.Error("AppointmentController.ListDoctorAppointments error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentsSuccessMessage, result)
}

func (ctrl *AppointmentController) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	ctrl.doctorAction(w, r, "CompleteAppointment", ctrl.AppointmentUsecase.CompleteAppointment, constvars.CompleteAppointmentSuccessMessage)
}

func (ctrl *AppointmentController) DoctorCancelAppointment(w http.ResponseWriter, r *http.Request) {
	ctrl.doctorAction(w, r, "DoctorCancelAppointment", ctrl.AppointmentUsecase.DoctorCancel, constvars.CancelAppointmentSuccessMessage)
}

func (ctrl *AppointmentController) doctorAction(
	w http.ResponseWriter,
	r *http.Request,
	name string,
	action func(ctx context.Context, request *requests.DoctorAppointmentAction) error,
	successMessage string,
) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.DoctorAppointmentAction)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}
	request.DoctorID, _ = r.Context().Value(constvars.CONTEXT_DOCTOR_ID_KEY).(string)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	if err := action(ctx, request); err != nil {
		ctrl.Log.Error("AppointmentController."+name+" error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
			zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, successMessage, nil)
}
