package contracts

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"context"
)

type AppointmentFilter struct {
	UserID    string
	DocID     string
	SlotDate  string
	SlotTime  string
	Cancelled *bool
	// NewestFirst sorts by creation timestamp descending.
	NewestFirst bool
	Limit       int64
}

type AppointmentUpdate struct {
	Cancelled   *bool
	IsCompleted *bool
	Payment     *bool
}

type AppointmentRepository interface {
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	Find(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error)
	Insert(ctx context.Context, appointment *models.Appointment) (string, error)
	// UpdateByID reports whether a document matched appointmentID.
	UpdateByID(ctx context.Context, appointmentID string, update AppointmentUpdate) (bool, error)
}

type AppointmentUsecase interface {
	BookSlot(ctx context.Context, request *requests.BookAppointment) (*responses.BookAppointment, error)
	CancelSlot(ctx context.Context, request *requests.CancelAppointment) error
	CompleteAppointment(ctx context.Context, request *requests.DoctorAppointmentAction) error
	DoctorCancel(ctx context.Context, request *requests.DoctorAppointmentAction) error
	ListUserAppointments(ctx context.Context, userID string) ([]responses.Appointment, error)
	ListDoctorAppointments(ctx context.Context, doctorID string) ([]responses.Appointment, error)
}
