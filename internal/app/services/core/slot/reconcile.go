package slot

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/utils"
	"context"

	"go.uber.org/zap"
)

func slotKey(date, slotTime string) string {
	return date + "\x00" + slotTime
}

// reconcileDoctor holds the doctor's booking lock so no booking is in flight
// between reading the reservations and releasing the orphans.
func (w *Worker) reconcileDoctor(ctx context.Context, doctorID string) int {
	lockKey := utils.BuildBookingLockKey(doctorID)
	acquired, lockValue, err := w.locker.TryLock(ctx, lockKey, w.cfg.Booking.LockTTL)
	if err != nil || !acquired {
		w.log.Info("slot.worker: doctor busy, skipping",
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
		return 0
	}
	defer w.locker.Unlock(context.WithoutCancel(ctx), lockKey, lockValue)

	doctor, err := w.doctors.FindByID(ctx, doctorID)
	if err != nil || doctor == nil {
		return 0
	}

	notCancelled := false
	active, err := w.appointments.Find(ctx, contracts.AppointmentFilter{DocID: doctorID, Cancelled: &notCancelled})
	if err != nil {
		w.log.Warn("slot.worker: appointment search failed",
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
		return 0
	}

	backed := make(map[string]struct{}, len(active))
	for _, appointment := range active {
		backed[slotKey(appointment.SlotDate, appointment.SlotTime)] = struct{}{}
	}

	released := 0
	for date, times := range doctor.SlotsBooked {
		for _, slotTime := range times {
			if _, ok := backed[slotKey(date, slotTime)]; ok {
				continue
			}
			if err := w.doctors.ReleaseSlot(ctx, doctorID, date, slotTime); err != nil {
				w.log.Warn("slot.worker: failed to release orphan reservation",
					zap.String(constvars.LoggingDoctorIDKey, doctorID),
					zap.String(constvars.LoggingSlotDateKey, date),
					zap.String(constvars.LoggingSlotTimeKey, slotTime),
					zap.Error(err),
				)
				continue
			}
			w.log.Info("slot.worker: released orphan reservation",
				zap.String(constvars.LoggingDoctorIDKey, doctorID),
				zap.String(constvars.LoggingSlotDateKey, date),
				zap.String(constvars.LoggingSlotTimeKey, slotTime),
			)
			released++
		}
	}
	return released
}
