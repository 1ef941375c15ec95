package appointments

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stores with the same conditional semantics as the mongo ones.

type fakeDoctorRepository struct {
	mu         sync.Mutex
	doctors    map[string]*models.Doctor
	releaseErr error
}

func newFakeDoctorRepository(doctors ...*models.Doctor) *fakeDoctorRepository {
	repo := &fakeDoctorRepository{doctors: map[string]*models.Doctor{}}
	for _, doctor := range doctors {
		if doctor.SlotsBooked == nil {
			doctor.SlotsBooked = models.SlotsBooked{}
		}
		repo.doctors[doctor.ID.Hex()] = doctor
	}
	return repo
}

func (f *fakeDoctorRepository) get(doctorID string) (*models.Doctor, error) {
	if _, err := primitive.ObjectIDFromHex(doctorID); err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	return f.doctors[doctorID], nil
}

func (f *fakeDoctorRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doctor, err := f.get(doctorID)
	if err != nil || doctor == nil {
		return nil, err
	}
	clone := *doctor
	clone.SlotsBooked = doctor.SlotsBooked.Clone()
	return &clone, nil
}

func (f *fakeDoctorRepository) FindByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, doctor := range f.doctors {
		if doctor.Email == email {
			clone := *doctor
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeDoctorRepository) Find(ctx context.Context, filter contracts.DoctorFilter) ([]models.Doctor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]models.Doctor, 0, len(f.doctors))
	for _, doctor := range f.doctors {
		if filter.WithBookedSlots && len(doctor.SlotsBooked) == 0 {
			continue
		}
		clone := *doctor
		clone.SlotsBooked = doctor.SlotsBooked.Clone()
		result = append(result, clone)
	}
	return result, nil
}

func (f *fakeDoctorRepository) Insert(ctx context.Context, doctor *models.Doctor) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doctor.ID = primitive.NewObjectID()
	f.doctors[doctor.ID.Hex()] = doctor
	return doctor.ID.Hex(), nil
}

func (f *fakeDoctorRepository) UpdateAvailabilityByID(ctx context.Context, doctorID string, available bool) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doctor, err := f.get(doctorID)
	if err != nil || doctor == nil {
		return false, err
	}
	doctor.Available = available
	return true, nil
}

func (f *fakeDoctorRepository) ReserveSlot(ctx context.Context, doctorID, date, slotTime string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doctor, err := f.get(doctorID)
	if err != nil || doctor == nil || !doctor.Available {
		return false, err
	}
	return doctor.SlotsBooked.Reserve(date, slotTime), nil
}

func (f *fakeDoctorRepository) ReleaseSlot(ctx context.Context, doctorID, date, slotTime string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.releaseErr != nil {
		return f.releaseErr
	}
	doctor, err := f.get(doctorID)
	if err != nil || doctor == nil {
		return err
	}
	doctor.SlotsBooked.Release(date, slotTime)
	return nil
}

func (f *fakeDoctorRepository) slots(doctorID, date string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.doctors[doctorID].SlotsBooked[date]...)
}

type fakeAppointmentRepository struct {
	mu           sync.Mutex
	appointments map[string]*models.Appointment
	insertErr    error
	updateCalls  int
}

func newFakeAppointmentRepository() *fakeAppointmentRepository {
	return &fakeAppointmentRepository{appointments: map[string]*models.Appointment{}}
}

func (f *fakeAppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := primitive.ObjectIDFromHex(appointmentID); err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	appointment, ok := f.appointments[appointmentID]
	if !ok {
		return nil, nil
	}
	clone := *appointment
	return &clone, nil
}

func (f *fakeAppointmentRepository) Find(ctx context.Context, filter contracts.AppointmentFilter) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]models.Appointment, 0)
	for _, appointment := range f.appointments {
		if filter.UserID != "" && appointment.UserID != filter.UserID {
			continue
		}
		if filter.DocID != "" && appointment.DocID != filter.DocID {
			continue
		}
		if filter.SlotDate != "" && appointment.SlotDate != filter.SlotDate {
			continue
		}
		if filter.SlotTime != "" && appointment.SlotTime != filter.SlotTime {
			continue
		}
		if filter.Cancelled != nil && appointment.Cancelled != *filter.Cancelled {
			continue
		}
		result = append(result, *appointment)
	}
	sort.Slice(result, func(i, j int) bool {
		if filter.NewestFirst {
			return result[i].Date > result[j].Date
		}
		return result[i].Date < result[j].Date
	})
	if filter.Limit > 0 && int64(len(result)) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (f *fakeAppointmentRepository) Insert(ctx context.Context, appointment *models.Appointment) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return "", f.insertErr
	}
	// unique partial index on active slots
	for _, existing := range f.appointments {
		if !existing.Cancelled &&
			existing.DocID == appointment.DocID &&
			existing.SlotDate == appointment.SlotDate &&
			existing.SlotTime == appointment.SlotTime {
			return "", exceptions.ErrSlotUnavailable(errors.New("E11000 duplicate key error"))
		}
	}
	appointment.ID = primitive.NewObjectID()
	clone := *appointment
	f.appointments[appointment.ID.Hex()] = &clone
	return appointment.ID.Hex(), nil
}

func (f *fakeAppointmentRepository) UpdateByID(ctx context.Context, appointmentID string, update contracts.AppointmentUpdate) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	if _, err := primitive.ObjectIDFromHex(appointmentID); err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}
	appointment, ok := f.appointments[appointmentID]
	if !ok {
		return false, nil
	}
	if update.Cancelled != nil {
		appointment.Cancelled = *update.Cancelled
	}
	if update.IsCompleted != nil {
		appointment.IsCompleted = *update.IsCompleted
	}
	if update.Payment != nil {
		appointment.Payment = *update.Payment
	}
	return true, nil
}

func (f *fakeAppointmentRepository) get(appointmentID string) models.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.appointments[appointmentID]
}

type fakeUserRepository struct {
	users map[string]*models.User
}

func newFakeUserRepository(users ...*models.User) *fakeUserRepository {
	repo := &fakeUserRepository{users: map[string]*models.User{}}
	for _, user := range users {
		repo.users[user.ID.Hex()] = user
	}
	return repo
}

func (f *fakeUserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	return f.users[userID], nil
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepository) Insert(ctx context.Context, user *models.User) (string, error) {
	user.ID = primitive.NewObjectID()
	f.users[user.ID.Hex()] = user
	return user.ID.Hex(), nil
}

// fakeLocker holds locks in memory. disabled makes every attempt succeed so
// the storage-level guard can be exercised on its own.
type fakeLocker struct {
	mu       sync.Mutex
	held     map[string]string
	disabled bool
	counter  int
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: map[string]string{}}
}

func (f *fakeLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counter++
	owner := primitive.NewObjectID().Hex()
	if f.disabled {
		return true, owner, nil
	}
	if _, ok := f.held[key]; ok {
		return false, "", nil
	}
	f.held[key] = owner
	return true, owner, nil
}

func (f *fakeLocker) TryLockWithRetry(ctx context.Context, key string, expiration time.Duration, attempts int, interval time.Duration) (bool, string, error) {
	for attempt := 0; attempt < attempts; attempt++ {
		acquired, owner, err := f.TryLock(ctx, key, expiration)
		if err != nil || acquired {
			return acquired, owner, err
		}
		time.Sleep(interval)
	}
	return false, "", nil
}

func (f *fakeLocker) Unlock(ctx context.Context, key, lockValue string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.disabled {
		return nil
	}
	if f.held[key] != lockValue {
		return errors.New("not owner")
	}
	delete(f.held, key)
	return nil
}

func (f *fakeLocker) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	return nil
}

func (f *fakeLocker) isHeld(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.held[key]
	return ok
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*models.AppointmentEvent
}

func (p *recordingPublisher) PublishAppointmentEvent(ctx context.Context, event *models.AppointmentEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, event := range p.events {
		types = append(types, event.Type)
	}
	return types
}
