package routers

import (
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"context"

	"github.com/stretchr/testify/mock"
)

type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) Issue(ctx context.Context, subjectID string) (string, error) {
	args := m.Called(ctx, subjectID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenManager) Verify(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

type MockUserUsecase struct {
	mock.Mock
}

func (m *MockUserUsecase) Register(ctx context.Context, request *requests.RegisterUser) (*responses.Login, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.Login)
	return result, args.Error(1)
}

func (m *MockUserUsecase) Login(ctx context.Context, request *requests.LoginUser) (*responses.Login, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.Login)
	return result, args.Error(1)
}

type MockDoctorUsecase struct {
	mock.Mock
}

func (m *MockDoctorUsecase) AddDoctor(ctx context.Context, request *requests.AddDoctor) (string, error) {
	args := m.Called(ctx, request)
	return args.String(0), args.Error(1)
}

func (m *MockDoctorUsecase) Login(ctx context.Context, request *requests.LoginDoctor) (*responses.Login, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.Login)
	return result, args.Error(1)
}

func (m *MockDoctorUsecase) ListDoctors(ctx context.Context) ([]responses.Doctor, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).([]responses.Doctor)
	return result, args.Error(1)
}

func (m *MockDoctorUsecase) ChangeAvailability(ctx context.Context, doctorID string) error {
	args := m.Called(ctx, doctorID)
	return args.Error(0)
}

func (m *MockDoctorUsecase) Dashboard(ctx context.Context, doctorID string) (*responses.DoctorDashboard, error) {
	args := m.Called(ctx, doctorID)
	result, _ := args.Get(0).(*responses.DoctorDashboard)
	return result, args.Error(1)
}

type MockAppointmentUsecase struct {
	mock.Mock
}

func (m *MockAppointmentUsecase) BookSlot(ctx context.Context, request *requests.BookAppointment) (*responses.BookAppointment, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.BookAppointment)
	return result, args.Error(1)
}

func (m *MockAppointmentUsecase) CancelSlot(ctx context.Context, request *requests.CancelAppointment) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockAppointmentUsecase) CompleteAppointment(ctx context.Context, request *requests.DoctorAppointmentAction) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockAppointmentUsecase) DoctorCancel(ctx context.Context, request *requests.DoctorAppointmentAction) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockAppointmentUsecase) ListUserAppointments(ctx context.Context, userID string) ([]responses.Appointment, error) {
	args := m.Called(ctx, userID)
	result, _ := args.Get(0).([]responses.Appointment)
	return result, args.Error(1)
}

func (m *MockAppointmentUsecase) ListDoctorAppointments(ctx context.Context, doctorID string) ([]responses.Appointment, error) {
	args := m.Called(ctx, doctorID)
	result, _ := args.Get(0).([]responses.Appointment)
	return result, args.Error(1)
}

type MockPaymentUsecase struct {
	mock.Mock
}

func (m *MockPaymentUsecase) InitiatePayment(ctx context.Context, request *requests.InitiatePayment) (*responses.InitiatePayment, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.InitiatePayment)
	return result, args.Error(1)
}

func (m *MockPaymentUsecase) ConfirmPayment(ctx context.Context, request *requests.ConfirmPayment) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockPaymentUsecase) HandleNotification(ctx context.Context, notification *requests.MomoNotification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}
