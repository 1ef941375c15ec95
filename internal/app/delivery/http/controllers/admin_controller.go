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

type AdminController struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	DoctorUsecase  contracts.DoctorUsecase
}

func NewAdminController(logger *zap.Logger, internalConfig *config.InternalConfig, doctorUsecase contracts.DoctorUsecase) *AdminController {
	return &AdminController{
		Log:            logger,
		InternalConfig: internalConfig,
		DoctorUsecase:  doctorUsecase,
	}
}

func (ctrl *AdminController) AddDoctor(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.AddDoctor)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	doctorID, err := ctrl.DoctorUsecase.AddDoctor(ctx, request)
	if err != nil {
		ctrl.Log.Error("AdminController.AddDoctor error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.AddDoctorSuccessMessage, map[string]string{"docId": doctorID})
}

func (ctrl *AdminController) ChangeAvailability(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.ChangeAvailability)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	if err := ctrl.DoctorUsecase.ChangeAvailability(ctx, request.DoctorID); err != nil {
		ctrl.Log.Error("AdminController.ChangeAvailability error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ChangeAvailabilitySuccessMessage, nil)
}
