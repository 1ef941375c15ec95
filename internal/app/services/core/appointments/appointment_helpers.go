package appointments

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// lockDoctor serializes slot map mutations for one doctor across instances.
func (uc *appointmentUsecase) lockDoctor(ctx context.Context, doctorID string) (func(), error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	lockKey := utils.BuildBookingLockKey(doctorID)
	booking := uc.InternalConfig.Booking

	acquired, lockValue, err := uc.LockService.TryLockWithRetry(ctx, lockKey, booking.LockTTL, booking.LockRetryAttempts, booking.LockRetryInterval)
	if err != nil {
		uc.Log.Error("appointmentUsecase.lockDoctor error acquiring lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, lockKey),
			zap.Error(err),
		)
		return nil, exceptions.ErrDoctorBusy(err)
	}
	if !acquired {
		return nil, exceptions.ErrDoctorBusy(fmt.Errorf("lock %s held by another request", lockKey))
	}

	return func() {
		// the request context may already be done here
		if err := uc.LockService.Unlock(context.WithoutCancel(ctx), lockKey, lockValue); err != nil {
			uc.Log.Warn("appointmentUsecase.lockDoctor error releasing lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(err),
			)
		}
	}, nil
}

func (uc *appointmentUsecase) findAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.findAppointment error calling AppointmentRepository.FindByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotExist(nil)
	}
	return appointment, nil
}

// cancelAndRelease flags the appointment cancelled and frees its slot. Already
// cancelled appointments are left untouched so a slot re-booked by someone
// else is never released twice.
func (uc *appointmentUsecase) cancelAndRelease(ctx context.Context, appointment *models.Appointment) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	appointmentID := appointment.ID.Hex()
	if appointment.Cancelled {
		return nil
	}

	unlock, err := uc.lockDoctor(ctx, appointment.DocID)
	if err != nil {
		return err
	}
	defer unlock()

	// re-read under the lock, a concurrent cancel may have won
	current, err := uc.findAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}
	if current.Cancelled {
		return nil
	}

	cancelled := true
	err = uc.TransactionRunner.WithinTransaction(ctx, func(txCtx context.Context) error {
		matched, err := uc.AppointmentRepository.UpdateByID(txCtx, appointmentID, contracts.AppointmentUpdate{Cancelled: &cancelled})
		if err != nil {
			return err
		}
		if !matched {
			return exceptions.ErrAppointmentNotExist(nil)
		}
		return uc.DoctorRepository.ReleaseSlot(txCtx, current.DocID, current.SlotDate, current.SlotTime)
	})
	if err != nil {
		uc.Log.Error("appointmentUsecase.cancelAndRelease error cancelling appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		return err
	}

	current.Cancelled = true
	uc.publish(ctx, constvars.EventAppointmentCancelled, current)
	return nil
}

// compensateReservation undoes ReserveSlot when the appointment insert failed
// outside a transaction. A failure here leaves an orphan for the reconciler.
func (uc *appointmentUsecase) compensateReservation(ctx context.Context, doctorID, date, slotTime string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	err := uc.DoctorRepository.ReleaseSlot(context.WithoutCancel(ctx), doctorID, date, slotTime)
	if err != nil {
		uc.Log.Error("appointmentUsecase.compensateReservation error releasing slot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.String(constvars.LoggingSlotDateKey, date),
			zap.String(constvars.LoggingSlotTimeKey, slotTime),
			zap.Error(err),
		)
		return
	}
	uc.Log.Warn("appointmentUsecase.compensateReservation released slot after failed insert",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)
}

func (uc *appointmentUsecase) publish(ctx context.Context, eventType string, appointment *models.Appointment) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	event := models.NewAppointmentEvent(eventType, appointment, utils.EpochMillis(uc.now()))
	if err := uc.EventPublisher.PublishAppointmentEvent(ctx, event); err != nil {
		uc.Log.Warn("appointmentUsecase.publish error publishing event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventTypeKey, eventType),
			zap.Error(err),
		)
	}
}
