package ratelimiter

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/pkg/constvars"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ResourceLimiter is a fixed-window counter stored in redis.
// The counter key expires one second after its window closes.
type ResourceLimiter struct {
	redis contracts.RedisRepository
	log   *zap.Logger
	now   func() time.Time
}

func NewResourceLimiter(redis contracts.RedisRepository, log *zap.Logger) contracts.ResourceLimiter {
	return newResourceLimiter(redis, log, time.Now)
}

func newResourceLimiter(redis contracts.RedisRepository, log *zap.Logger, now func() time.Time) *ResourceLimiter {
	return &ResourceLimiter{redis: redis, log: log, now: now}
}

func (l *ResourceLimiter) ApplyResourceLimiter(ctx context.Context, in *contracts.ApplyResourceLimiterInput) (*contracts.ApplyResourceLimiterOutput, error) {
	if in == nil {
		return &contracts.ApplyResourceLimiterOutput{Allowed: false}, errors.New("nil limiter input")
	}
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	resource := strings.ToLower(strings.TrimSpace(in.ResourceName))
	group := strings.ToUpper(strings.TrimSpace(in.LimiterGroupName))
	window := in.WindowDuration
	if window < time.Second {
		window = time.Minute
	}
	if in.MaxQuota <= 0 {
		return &contracts.ApplyResourceLimiterOutput{Allowed: true}, nil
	}
	if resource == "" || group == "" {
		return &contracts.ApplyResourceLimiterOutput{Allowed: false, RetryAfter: window}, nil
	}

	windowSecs := int64(window / time.Second)
	nowUnix := l.now().UTC().Unix()
	windowID := nowUnix / windowSecs
	key := fmt.Sprintf("%s:%s:%d", group, resource, windowID)

	count, err := l.redis.IncrementWithTTL(ctx, key, window+time.Second)
	if err != nil {
		l.log.Error("ResourceLimiter.ApplyResourceLimiter increment failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return &contracts.ApplyResourceLimiterOutput{Allowed: false}, err
	}

	if count > in.MaxQuota {
		nextWindowStart := (windowID + 1) * windowSecs
		retryAfter := time.Duration(nextWindowStart-nowUnix) * time.Second
		l.log.Info("ResourceLimiter.ApplyResourceLimiter quota exceeded",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Int(constvars.LoggingCountKey, count),
		)
		return &contracts.ApplyResourceLimiterOutput{Allowed: false, RetryAfter: retryAfter}, nil
	}
	return &contracts.ApplyResourceLimiterOutput{Allowed: true}, nil
}
