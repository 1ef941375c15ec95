package slot

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/pkg/constvars"
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Worker periodically releases reservations that no active appointment backs.
// They are left behind when a booking dies between reserving the slot and
// inserting the appointment.
type Worker struct {
	log          *zap.Logger
	cfg          *config.InternalConfig
	locker       contracts.LockerService
	doctors      contracts.DoctorRepository
	appointments contracts.AppointmentRepository
	stop         chan struct{}
	cron         *cron.Cron
	runCtx       context.Context
	cancel       context.CancelFunc
}

func NewWorker(
	log *zap.Logger,
	cfg *config.InternalConfig,
	lockerSvc contracts.LockerService,
	doctorRepository contracts.DoctorRepository,
	appointmentRepository contracts.AppointmentRepository,
) *Worker {
	return &Worker{
		log:          log,
		cfg:          cfg,
		locker:       lockerSvc,
		doctors:      doctorRepository,
		appointments: appointmentRepository,
		stop:         make(chan struct{}),
	}
}

func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.Worker.ReconcilerCronSpec
	_, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("slot.worker: failed to schedule with provided cron spec; falling back to @hourly",
			zap.String(constvars.LoggingCronSpecKey, spec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc("@hourly", func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
	w.log.Info("slot.worker: reconciler started", zap.String(constvars.LoggingCronSpecKey, spec))
}

// Stop waits for a running reconciliation to finish.
func (w *Worker) Stop() {
	select {
	case <-w.stop:
	default:
		close(w.stop)
	}
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		ctx := w.cron.Stop()
		<-ctx.Done()
	}
}

func (w *Worker) runOnce(ctx context.Context) int {
	ttl := w.cfg.Worker.ReconcilerLockTTL
	acquired, token, err := w.locker.TryLock(ctx, constvars.ReconcilerLeaderLockKey, ttl)
	if err != nil {
		w.log.Warn("slot.worker: leader lock attempt failed", zap.Error(err))
		return 0
	}
	if !acquired {
		w.log.Info("slot.worker: leader lock not acquired; another instance is running")
		return 0
	}
	defer w.locker.Unlock(context.WithoutCancel(ctx), constvars.ReconcilerLeaderLockKey, token)

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go func() {
		tick := time.NewTicker(ttl / 2)
		defer tick.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-tick.C:
				if err := w.locker.Refresh(refreshCtx, constvars.ReconcilerLeaderLockKey, token, ttl); err != nil {
					w.log.Warn("slot.worker: failed to refresh leader lock TTL", zap.Error(err))
				}
			}
		}
	}()

	doctors, err := w.doctors.Find(ctx, contracts.DoctorFilter{WithBookedSlots: true})
	if err != nil {
		w.log.Warn("slot.worker: doctor search failed", zap.Error(err))
		return 0
	}

	released := 0
	for _, doctor := range doctors {
		if ctx.Err() != nil {
			break
		}
		released += w.reconcileDoctor(ctx, doctor.ID.Hex())
	}

	w.log.Info("slot.worker: reconciliation finished",
		zap.Int("doctors", len(doctors)),
		zap.Int(constvars.LoggingCountKey, released),
	)
	return released
}
