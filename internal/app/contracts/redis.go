package contracts

import (
	"context"
	"time"
)

// RedisRepository covers the redis primitives behind booking locks and
// attempt limits. Values are compared as raw strings.
type RedisRepository interface {
	SetIfAbsent(ctx context.Context, key, value string, exp time.Duration) (bool, error)
	DeleteIfEquals(ctx context.Context, key, value string) (bool, error)
	ExpireIfEquals(ctx context.Context, key, value string, exp time.Duration) (bool, error)
	// IncrementWithTTL sets the expiry only when the counter is created.
	IncrementWithTTL(ctx context.Context, key string, exp time.Duration) (int, error)
}
