package locker

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	lockerServiceInstance contracts.LockerService
	onceLockerService     sync.Once
)

// redisLocker hands out owner tokens so only the holder can release or
// extend a lock. Expiry bounds how long a crashed holder blocks a doctor.
type redisLocker struct {
	store contracts.RedisRepository
	Log   *zap.Logger
}

func NewLockService(store contracts.RedisRepository, logger *zap.Logger) contracts.LockerService {
	onceLockerService.Do(func() {
		lockerServiceInstance = newLockService(store, logger)
	})
	return lockerServiceInstance
}

func newLockService(store contracts.RedisRepository, logger *zap.Logger) *redisLocker {
	return &redisLocker{store: store, Log: logger}
}

func (l *redisLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	token := uuid.NewString()
	acquired, err := l.store.SetIfAbsent(ctx, key, token, expiration)
	if err != nil {
		l.Log.Error("redisLocker.TryLock error calling store.SetIfAbsent",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return false, "", err
	}
	if !acquired {
		return false, "", nil
	}

	l.Log.Debug("redisLocker.TryLock acquired",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.Duration(constvars.LoggingLockExpirationKey, expiration),
	)
	return true, token, nil
}

func (l *redisLocker) TryLockWithRetry(ctx context.Context, key string, expiration time.Duration, attempts int, interval time.Duration) (bool, string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; ; attempt++ {
		acquired, token, err := l.TryLock(ctx, key, expiration)
		if err != nil || acquired {
			return acquired, token, err
		}
		if attempt >= attempts {
			break
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false, "", ctx.Err()
		case <-timer.C:
		}
	}

	l.Log.Info("redisLocker.TryLockWithRetry lock still held after retries",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.Int(constvars.LoggingLockAttemptKey, attempts),
	)
	return false, "", nil
}

func (l *redisLocker) Unlock(ctx context.Context, key, token string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	released, err := l.store.DeleteIfEquals(ctx, key, token)
	if err != nil {
		l.Log.Error("redisLocker.Unlock error calling store.DeleteIfEquals",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return err
	}
	if !released {
		// expired, possibly re-acquired by someone else since
		err := exceptions.ErrRedisUnlock(fmt.Errorf("lock %s not owned by this client", key))
		l.Log.Warn("redisLocker.Unlock lost ownership before release",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
		)
		return err
	}
	return nil
}

func (l *redisLocker) Refresh(ctx context.Context, key, token string, expiration time.Duration) error {
	extended, err := l.store.ExpireIfEquals(ctx, key, token, expiration)
	if err != nil {
		return err
	}
	if !extended {
		return exceptions.ErrRedisUnlock(fmt.Errorf("lock %s not owned by this client", key))
	}
	return nil
}
