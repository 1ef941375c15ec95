package contracts

import (
	"context"
	"time"
)

type LockerService interface {
	TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error)
	// TryLockWithRetry repeats TryLock until acquired, attempts run out or ctx is done.
	TryLockWithRetry(ctx context.Context, key string, expiration time.Duration, attempts int, interval time.Duration) (bool, string, error)
	Unlock(ctx context.Context, key, lockValue string) error
	// Refresh extends the TTL of a lock if owned by lockValue
	Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error
}

type ResourceLimiter interface {
	ApplyResourceLimiter(ctx context.Context, in *ApplyResourceLimiterInput) (*ApplyResourceLimiterOutput, error)
}

type ApplyResourceLimiterInput struct {
	// ResourceName is the limited entity, e.g. a patient id.
	ResourceName string
	// LimiterGroupName namespaces the key, e.g. BOOKING.
	LimiterGroupName string
	WindowDuration   time.Duration
	MaxQuota         int
}

type ApplyResourceLimiterOutput struct {
	Allowed    bool
	RetryAfter time.Duration
}
