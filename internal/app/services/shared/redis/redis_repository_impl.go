package redis

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Compare-and-act scripts keep a lock owned by one token from being released
// or extended by another.
var (
	deleteIfEqualsScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

	expireIfEqualsScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0`)

	incrementWithTTLScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count`)
)

type redisRepository struct {
	client redis.Cmdable
}

func NewRedisRepository(client redis.Cmdable) contracts.RedisRepository {
	return &redisRepository{client: client}
}

func (r *redisRepository) SetIfAbsent(ctx context.Context, key, value string, exp time.Duration) (bool, error) {
	acquired, err := r.client.SetNX(ctx, key, value, exp).Result()
	if err != nil {
		return false, exceptions.ErrRedisSet(err)
	}
	return acquired, nil
}

func (r *redisRepository) DeleteIfEquals(ctx context.Context, key, value string) (bool, error) {
	deleted, err := deleteIfEqualsScript.Run(ctx, r.client, []string{key}, value).Int64()
	if err != nil {
		return false, exceptions.ErrRedisDelete(err)
	}
	return deleted == 1, nil
}

func (r *redisRepository) ExpireIfEquals(ctx context.Context, key, value string, exp time.Duration) (bool, error) {
	updated, err := expireIfEqualsScript.Run(ctx, r.client, []string{key}, value, exp.Milliseconds()).Int64()
	if err != nil {
		return false, exceptions.ErrRedisExpire(err)
	}
	return updated == 1, nil
}

func (r *redisRepository) IncrementWithTTL(ctx context.Context, key string, exp time.Duration) (int, error) {
	count, err := incrementWithTTLScript.Run(ctx, r.client, []string{key}, exp.Milliseconds()).Int()
	if err != nil {
		return 0, exceptions.ErrRedisSet(err)
	}
	return count, nil
}
