package controllers

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/utils"
	"context"
	"net/http"

	"go.uber.org/zap"
)

type DoctorController struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	DoctorUsecase  contracts.DoctorUsecase
}

func NewDoctorController(logger *zap.Logger, internalConfig *config.InternalConfig, doctorUsecase contracts.DoctorUsecase) *DoctorController {
	return &DoctorController{
		Log:            logger,
		InternalConfig: internalConfig,
		DoctorUsecase:  doctorUsecase,
	}
}

func (ctrl *DoctorController) ListDoctors(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	result, err := ctrl.DoctorUsecase.ListDoctors(ctx)
	if err != nil {
		ctrl.Log.Error("DoctorController.ListDoctors error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDoctorListSuccessMessage, result)
}

func (ctrl *DoctorController) Login(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.LoginDoctor)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	result, err := ctrl.DoctorUsecase.Login(ctx, request)
	if err != nil {
		ctrl.Log.Info("DoctorController.Login rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.LoginDoctorSuccessMessage, result)
}

// ChangeOwnAvailability toggles availability for the authenticated doctor.
func (ctrl *DoctorController) ChangeOwnAvailability(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	doctorID, _ := r.Context().Value(constvars.CONTEXT_DOCTOR_ID_KEY).(string)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	if err := ctrl.DoctorUsecase.ChangeAvailability(ctx, doctorID); err != nil {
		ctrl.Log.Error("DoctorController.ChangeOwnAvailability error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ChangeAvailabilitySuccessMessage, nil)
}

func (ctrl *DoctorController) Dashboard(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	doctorID, _ := r.Context().Value(constvars.CONTEXT_DOCTOR_ID_KEY).(string)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	result, err := ctrl.DoctorUsecase.Dashboard(ctx, doctorID)
	if err != nil {
		ctrl.Log.Error("DoctorController.Dashboard error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDashboardSuccessMessage, result)
}
