package slot

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/utils"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type stubLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

func (s *stubLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held[key] {
		return false, "", nil
	}
	s.held[key] = true
	return true, key, nil
}

func (s *stubLocker) TryLockWithRetry(ctx context.Context, key string, expiration time.Duration, attempts int, interval time.Duration) (bool, string, error) {
	return s.TryLock(ctx, key, expiration)
}

func (s *stubLocker) Unlock(ctx context.Context, key, lockValue string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.held, key)
	return nil
}

func (s *stubLocker) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	return nil
}

type MockDoctorRepository struct {
	mock.Mock
	contracts.DoctorRepository
}

func (m *MockDoctorRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	args := m.Called(ctx, doctorID)
	doctor, _ := args.Get(0).(*models.Doctor)
	return doctor, args.Error(1)
}

func (m *MockDoctorRepository) Find(ctx context.Context, filter contracts.DoctorFilter) ([]models.Doctor, error) {
	args := m.Called(ctx, filter)
	doctors, _ := args.Get(0).([]models.Doctor)
	return doctors, args.Error(1)
}

func (m *MockDoctorRepository) ReleaseSlot(ctx context.Context, doctorID, date, slotTime string) error {
	args := m.Called(ctx, doctorID, date, slotTime)
	return args.Error(0)
}

type MockAppointmentRepository struct {
	mock.Mock
	contracts.AppointmentRepository
}

func (m *MockAppointmentRepository) Find(ctx context.Context, filter contracts.AppointmentFilter) ([]models.Appointment, error) {
	args := m.Called(ctx, filter)
	appointments, _ := args.Get(0).([]models.Appointment)
	return appointments, args.Error(1)
}

func testWorkerConfig() *config.InternalConfig {
	return &config.InternalConfig{
		Booking: config.AppBooking{LockTTL: time.Second},
		Worker: config.AppWorker{
			ReconcilerCronSpec: "@every 1h",
			ReconcilerLockTTL:  time.Minute,
		},
	}
}

func isActiveFilter(doctorID string) func(contracts.AppointmentFilter) bool {
	return func(filter contracts.AppointmentFilter) bool {
		return filter.DocID == doctorID && filter.Cancelled != nil && !*filter.Cancelled
	}
}

func TestWorker_RunOnce(t *testing.T) {
	ctx := context.Background()
	doctorID := primitive.NewObjectID()
	doctor := models.Doctor{
		ID: doctorID,
		SlotsBooked: models.SlotsBooked{
			"2024-01-01": {"10:00", "11:00"},
			"2024-01-02": {"09:00"},
		},
	}

	t.Run("Releases Only Orphan Reservations", func(t *testing.T) {
		doctors := new(MockDoctorRepository)
		appointments := new(MockAppointmentRepository)
		locker := &stubLocker{held: map[string]bool{}}
		worker := NewWorker(zap.NewNop(), testWorkerConfig(), locker, doctors, appointments)

		doctors.On("Find", mock.Anything, contracts.DoctorFilter{WithBookedSlots: true}).Return([]models.Doctor{{ID: doctorID}}, nil)
		doctors.On("FindByID", mock.Anything, doctorID.Hex()).Return(&doctor, nil)
		appointments.On("Find", mock.Anything, mock.MatchedBy(isActiveFilter(doctorID.Hex()))).Return([]models.Appointment{
			{DocID: doctorID.Hex(), SlotDate: "2024-01-01", SlotTime: "10:00"},
			{DocID: doctorID.Hex(), SlotDate: "2024-01-02", SlotTime: "09:00"},
		}, nil)
		doctors.On("ReleaseSlot", mock.Anything, doctorID.Hex(), "2024-01-01", "11:00").Return(nil)

		released := worker.runOnce(ctx)

		assert.Equal(t, 1, released)
		doctors.AssertExpectations(t)
		doctors.AssertNumberOfCalls(t, "ReleaseSlot", 1)
		assert.False(t, locker.held[constvars.ReconcilerLeaderLockKey])
		assert.False(t, locker.held[utils.BuildBookingLockKey(doctorID.Hex())])
	})

	t.Run("Skips When Another Instance Leads", func(t *testing.T) {
		doctors := new(MockDoctorRepository)
		locker := &stubLocker{held: map[string]bool{constvars.ReconcilerLeaderLockKey: true}}
		worker := NewWorker(zap.NewNop(), testWorkerConfig(), locker, doctors, new(MockAppointmentRepository))

		assert.Equal(t, 0, worker.runOnce(ctx))
		doctors.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
	})

	t.Run("Skips Doctor With Booking In Flight", func(t *testing.T) {
		doctors := new(MockDoctorRepository)
		locker := &stubLocker{held: map[string]bool{utils.BuildBookingLockKey(doctorID.Hex()): true}}
		worker := NewWorker(zap.NewNop(), testWorkerConfig(), locker, doctors, new(MockAppointmentRepository))
		doctors.On("Find", mock.Anything, mock.Anything).Return([]models.Doctor{{ID: doctorID}}, nil)

		assert.Equal(t, 0, worker.runOnce(ctx))
		doctors.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		doctors.AssertNotCalled(t, "ReleaseSlot", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestWorker_StartStop(t *testing.T) {
	worker := NewWorker(zap.NewNop(), testWorkerConfig(), &stubLocker{held: map[string]bool{}}, new(MockDoctorRepository), new(MockAppointmentRepository))
	worker.Start(context.Background())
	worker.Stop()
	// second stop is a no-op
	worker.Stop()
}
