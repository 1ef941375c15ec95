package appointments

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	DoctorRepository      contracts.DoctorRepository
	UserRepository        contracts.UserRepository
	LockService           contracts.LockerService
	TransactionRunner     contracts.TransactionRunner
	EventPublisher        contracts.EventPublisher
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
	now                   func() time.Time
}

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	doctorRepository contracts.DoctorRepository,
	userRepository contracts.UserRepository,
	lockService contracts.LockerService,
	transactionRunner contracts.TransactionRunner,
	eventPublisher contracts.EventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		appointmentUsecaseInstance = newAppointmentUsecase(
			appointmentRepository,
			doctorRepository,
			userRepository,
			lockService,
			transactionRunner,
			eventPublisher,
			internalConfig,
			logger,
		)
	})
	return appointmentUsecaseInstance
}

func newAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	doctorRepository contracts.DoctorRepository,
	userRepository contracts.UserRepository,
	lockService contracts.LockerService,
	transactionRunner contracts.TransactionRunner,
	eventPublisher contracts.EventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) *appointmentUsecase {
	return &appointmentUsecase{
		AppointmentRepository: appointmentRepository,
		DoctorRepository:      doctorRepository,
		UserRepository:        userRepository,
		LockService:           lockService,
		TransactionRunner:     transactionRunner,
		EventPublisher:        eventPublisher,
		InternalConfig:        internalConfig,
		Log:                   logger,
		now:                   time.Now,
	}
}

func (uc *appointmentUsecase) BookSlot(ctx context.Context, request *requests.BookAppointment) (*responses.BookAppointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.BookSlot called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, request.UserID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.String(constvars.LoggingSlotDateKey, request.SlotDate),
		zap.String(constvars.LoggingSlotTimeKey, request.SlotTime),
	)

	if !utils.IsValidSlotDate(request.SlotDate) || !utils.IsValidSlotTime(request.SlotTime) {
		return nil, exceptions.ErrInvalidSlotDate(fmt.Errorf("slot %q %q", request.SlotDate, request.SlotTime))
	}

	unlock, err := uc.lockDoctor(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	doctor, err := uc.DoctorRepository.FindByID(ctx, request.DoctorID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.BookSlot error calling DoctorRepository.FindByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotExist(nil)
	}
	if !doctor.Available {
		return nil, exceptions.ErrDoctorNotAvailable(nil)
	}
	if doctor.SlotsBooked.IsBooked(request.SlotDate, request.SlotTime) {
		uc.Log.Info("appointmentUsecase.BookSlot slot already booked",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
		)
		return nil, exceptions.ErrSlotUnavailable(nil)
	}

	user, err := uc.UserRepository.FindByID(ctx, request.UserID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.BookSlot error calling UserRepository.FindByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrUserNotExist(nil)
	}

	appointment := &models.Appointment{
		UserID:   request.UserID,
		DocID:    request.DoctorID,
		SlotDate: request.SlotDate,
		SlotTime: request.SlotTime,
		Amount:   doctor.Fees,
		Date:     utils.EpochMillis(uc.now()),
		UserData: user.Snapshot(),
		DocData:  doctor.Snapshot(),
	}

	var appointmentID string
	err = uc.TransactionRunner.WithinTransaction(ctx, func(txCtx context.Context) error {
		reserved, err := uc.DoctorRepository.ReserveSlot(txCtx, request.DoctorID, request.SlotDate, request.SlotTime)
		if err != nil {
			return err
		}
		if !reserved {
			return exceptions.ErrSlotUnavailable(nil)
		}

		appointmentID, err = uc.AppointmentRepository.Insert(txCtx, appointment)
		if err != nil {
			if !uc.TransactionRunner.IsTransactional() {
				uc.compensateReservation(ctx, request.DoctorID, request.SlotDate, request.SlotTime)
			}
			return err
		}
		return nil
	})
	if err != nil {
		uc.Log.Error("appointmentUsecase.BookSlot error reserving slot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.publish(ctx, constvars.EventAppointmentBooked, appointment)

	uc.Log.Info("appointmentUsecase.BookSlot succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	return &responses.BookAppointment{
		AppointmentID: appointmentID,
		DoctorID:      appointment.DocID,
		SlotDate:      appointment.SlotDate,
		SlotTime:      appointment.SlotTime,
		Amount:        appointment.Amount,
	}, nil
}

func (uc *appointmentUsecase) CancelSlot(ctx context.Context, request *requests.CancelAppointment) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CancelSlot called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, request.UserID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
	)

	appointment, err := uc.findAppointment(ctx, request.AppointmentID)
	if err != nil {
		return err
	}
	if appointment.UserID != request.UserID {
		return exceptions.ErrAppointmentNotOwned(fmt.Errorf("appointment %s belongs to another patient", request.AppointmentID))
	}

	err = uc.cancelAndRelease(ctx, appointment)
	if err != nil {
		return err
	}

	uc.Log.Info("appointmentUsecase.CancelSlot succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
	)
	return nil
}

func (uc *appointmentUsecase) DoctorCancel(ctx context.Context, request *requests.DoctorAppointmentAction) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.DoctorCancel called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
	)

	appointment, err := uc.findAppointment(ctx, request.AppointmentID)
	if err != nil {
		return err
	}
	if appointment.DocID != request.DoctorID {
		return exceptions.ErrAppointmentNotOwned(fmt.Errorf("appointment %s belongs to another doctor", request.AppointmentID))
	}

	err = uc.cancelAndRelease(ctx, appointment)
	if err != nil {
		return err
	}

	uc.Log.Info("appointmentUsecase.DoctorCancel succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
	)
	return nil
}

func (uc *appointmentUsecase) CompleteAppointment(ctx context.Context, request *requests.DoctorAppointmentAction) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CompleteAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
	)

	appointment, err := uc.findAppointment(ctx, request.AppointmentID)
	if err != nil {
		return err
	}
	if appointment.DocID != request.DoctorID {
		return exceptions.ErrAppointmentNotOwned(fmt.Errorf("appointment %s belongs to another doctor", request.AppointmentID))
	}
	if appointment.IsCompleted {
		return nil
	}

	completed := true
	matched, err := uc.AppointmentRepository.UpdateByID(ctx, request.AppointmentID, contracts.AppointmentUpdate{IsCompleted: &completed})
	if err != nil {
		uc.Log.Error("appointmentUsecase.CompleteAppointment error calling AppointmentRepository.UpdateByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	if !matched {
		return exceptions.ErrAppointmentNotExist(nil)
	}

	appointment.IsCompleted = true
	uc.publish(ctx, constvars.EventAppointmentCompleted, appointment)

	uc.Log.Info("appointmentUsecase.CompleteAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
	)
	return nil
}

func (uc *appointmentUsecase) ListUserAppointments(ctx context.Context, userID string) ([]responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.ListUserAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	appointments, err := uc.AppointmentRepository.Find(ctx, contracts.AppointmentFilter{UserID: userID, NewestFirst: true})
	if err != nil {
		uc.Log.Error("appointmentUsecase.ListUserAppointments error calling AppointmentRepository.Find",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("appointmentUsecase.ListUserAppointments succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(appointments)),
	)
	return models.AppointmentsToResponse(appointments), nil
}

func (uc *appointmentUsecase) ListDoctorAppointments(ctx context.Context, doctorID string) ([]responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.ListDoctorAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	appointments, err := uc.AppointmentRepository.Find(ctx, contracts.AppointmentFilter{DocID: doctorID, NewestFirst: true})
	if err != nil {
		uc.Log.Error("appointmentUsecase.ListDoctorAppointments error calling AppointmentRepository.Find",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("appointmentUsecase.ListDoctorAppointments succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(appointments)),
	)
	return models.AppointmentsToResponse(appointments), nil
}
