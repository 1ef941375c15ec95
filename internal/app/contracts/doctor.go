package contracts

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"context"
)

type DoctorFilter struct {
	// WithBookedSlots keeps only doctors holding at least one reservation.
	WithBookedSlots bool
}

type DoctorRepository interface {
	FindByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	FindByEmail(ctx context.Context, email string) (*models.Doctor, error)
	Find(ctx context.Context, filter DoctorFilter) ([]models.Doctor, error)
	Insert(ctx context.Context, doctor *models.Doctor) (string, error)
	UpdateAvailabilityByID(ctx context.Context, doctorID string, available bool) (bool, error)
	// ReserveSlot atomically adds slotTime under date unless it is taken or the doctor is unavailable.
	ReserveSlot(ctx context.Context, doctorID, date, slotTime string) (bool, error)
	ReleaseSlot(ctx context.Context, doctorID, date, slotTime string) error
}

type DoctorUsecase interface {
	AddDoctor(ctx context.Context, request *requests.AddDoctor) (string, error)
	Login(ctx context.Context, request *requests.LoginDoctor) (*responses.Login, error)
	ListDoctors(ctx context.Context) ([]responses.Doctor, error)
	ChangeAvailability(ctx context.Context, doctorID string) error
	Dashboard(ctx context.Context, doctorID string) (*responses.DoctorDashboard, error)
}
