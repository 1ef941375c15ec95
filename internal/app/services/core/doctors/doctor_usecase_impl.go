package doctors

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
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

const doctorListCacheKey = "doctors"

type doctorUsecase struct {
	DoctorRepository      contracts.DoctorRepository
	AppointmentRepository contracts.AppointmentRepository
	TokenManager          contracts.TokenManager
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
	now                   func() time.Time
	// doctorList is nil when caching is disabled. Cached slices are shared
	// between callers and must not be modified.
	doctorList *expirable.LRU[string, []responses.Doctor]
}

var (
	doctorUsecaseInstance contracts.DoctorUsecase
	onceDoctorUsecase     sync.Once
)

func NewDoctorUsecase(
	doctorRepository contracts.DoctorRepository,
	appointmentRepository contracts.AppointmentRepository,
	tokenManager contracts.TokenManager,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.DoctorUsecase {
	onceDoctorUsecase.Do(func() {
		doctorUsecaseInstance = newDoctorUsecase(doctorRepository, appointmentRepository, tokenManager, internalConfig, logger)
	})
	return doctorUsecaseInstance
}

func newDoctorUsecase(
	doctorRepository contracts.DoctorRepository,
	appointmentRepository contracts.AppointmentRepository,
	tokenManager contracts.TokenManager,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) *doctorUsecase {
	uc := &doctorUsecase{
		DoctorRepository:      doctorRepository,
		AppointmentRepository: appointmentRepository,
		TokenManager:          tokenManager,
		InternalConfig:        internalConfig,
		Log:                   logger,
		now:                   time.Now,
	}
	if ttl := internalConfig.Doctor.ListCacheTTL; ttl > 0 {
		uc.doctorList = expirable.NewLRU[string, []responses.Doctor](1, nil, ttl)
	}
	return uc
}

func (uc *doctorUsecase) invalidateDoctorList() {
	if uc.doctorList != nil {
		uc.doctorList.Purge()
	}
}

func (uc *doctorUsecase) AddDoctor(ctx context.Context, request *requests.AddDoctor) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	email := strings.ToLower(strings.TrimSpace(request.Email))
	uc.Log.Info("doctorUsecase.AddDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, email),
	)

	existing, err := uc.DoctorRepository.FindByEmail(ctx, email)
	if err != nil {
		uc.Log.Error("doctorUsecase.AddDoctor error calling DoctorRepository.FindByEmail",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", err
	}
	if existing != nil {
		return "", exceptions.ErrEmailAlreadyExist(nil)
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return "", exceptions.ErrHashPassword(err)
	}

	doctor := &models.Doctor{
		Name:        request.Name,
		Email:       email,
		Password:    hashedPassword,
		Speciality:  request.Speciality,
		Fees:        request.Fees,
		Available:   true,
		SlotsBooked: models.SlotsBooked{},
	}
	doctor.SetCreatedAtUpdatedAt(uc.now())

	doctorID, err := uc.DoctorRepository.Insert(ctx, doctor)
	if err != nil {
		uc.Log.Error("doctorUsecase.AddDoctor error calling DoctorRepository.Insert",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", err
	}

	uc.invalidateDoctorList()

	uc.Log.Info("doctorUsecase.AddDoctor succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)
	return doctorID, nil
}

func (uc *doctorUsecase) Login(ctx context.Context, request *requests.LoginDoctor) (*responses.Login, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	email := strings.ToLower(strings.TrimSpace(request.Email))
	uc.Log.Info("doctorUsecase.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, email),
	)

	doctor, err := uc.DoctorRepository.FindByEmail(ctx, email)
	if err != nil {
		uc.Log.Error("doctorUsecase.Login error calling DoctorRepository.FindByEmail",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if doctor == nil || !utils.CheckPasswordHash(request.Password, doctor.Password) {
		return nil, exceptions.ErrInvalidEmailOrPassword(nil)
	}

	token, err := uc.TokenManager.Issue(ctx, doctor.ID.Hex())
	if err != nil {
		return nil, err
	}

	uc.Log.Info("doctorUsecase.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctor.ID.Hex()),
	)
	return &responses.Login{Token: token}, nil
}

func (uc *doctorUsecase) ListDoctors(ctx context.Context) ([]responses.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.ListDoctors called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if uc.doctorList != nil {
		if cached, ok := uc.doctorList.Get(doctorListCacheKey); ok {
			uc.Log.Debug("doctorUsecase.ListDoctors served from cache",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Int(constvars.LoggingCountKey, len(cached)),
			)
			return cached, nil
		}
	}

	doctors, err := uc.DoctorRepository.Find(ctx, contracts.DoctorFilter{})
	if err != nil {
		uc.Log.Error("doctorUsecase.ListDoctors error calling DoctorRepository.Find",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response := make([]responses.Doctor, 0, len(doctors))
	for i := range doctors {
		response = append(response, doctors[i].ToResponse())
	}
	if uc.doctorList != nil {
		uc.doctorList.Add(doctorListCacheKey, response)
	}

	uc.Log.Info("doctorUsecase.ListDoctors succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(response)),
	)
	return response, nil
}

func (uc *doctorUsecase) ChangeAvailability(ctx context.Context, doctorID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.ChangeAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		uc.Log.Error("doctorUsecase.ChangeAvailability error calling DoctorRepository.FindByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	if doctor == nil {
		return exceptions.ErrDoctorNotExist(nil)
	}

	matched, err := uc.DoctorRepository.UpdateAvailabilityByID(ctx, doctorID, !doctor.Available)
	if err != nil {
		uc.Log.Error("doctorUsecase.ChangeAvailability error calling DoctorRepository.UpdateAvailabilityByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	if !matched {
		return exceptions.ErrDoctorNotExist(fmt.Errorf("doctor %s disappeared during update", doctorID))
	}

	uc.invalidateDoctorList()

	uc.Log.Info("doctorUsecase.ChangeAvailability succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.Bool("available", !doctor.Available),
	)
	return nil
}

// Dashboard counts earnings from appointments that are completed or paid.
func (uc *doctorUsecase) Dashboard(ctx context.Context, doctorID string) (*responses.DoctorDashboard, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.Dashboard called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	appointments, err := uc.AppointmentRepository.Find(ctx, contracts.AppointmentFilter{
		DocID:       doctorID,
		NewestFirst: true,
	})
	if err != nil {
		uc.Log.Error("doctorUsecase.Dashboard error calling AppointmentRepository.Find",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	var earnings int64
	patients := make(map[string]struct{})
	for _, appointment := range appointments {
		if appointment.IsCompleted || appointment.Payment {
			earnings += appointment.Amount
		}
		patients[appointment.UserID] = struct{}{}
	}

	latest := appointments
	if len(latest) > constvars.DashboardLatestAppointmentsLimit {
		latest = latest[:constvars.DashboardLatestAppointmentsLimit]
	}

	dashboard := &responses.DoctorDashboard{
		Earnings:           earnings,
		Appointments:       len(appointments),
		Patients:           len(patients),
		LatestAppointments: models.AppointmentsToResponse(latest),
	}

	uc.Log.Info("doctorUsecase.Dashboard succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, dashboard.Appointments),
	)
	return dashboard, nil
}
