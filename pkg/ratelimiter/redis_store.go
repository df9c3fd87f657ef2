package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// consumeScript mirrors MemoryStore.ConsumeTokens atomically on the server.
// The server clock is used so that all replicas agree on refill times.
var consumeScript = redis.NewScript(`
local key = KEYS[1]
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local interval = tonumber(ARGV[3])
local tokens = tonumber(ARGV[4])

local t = redis.call('TIME')
local now = tonumber(t[1]) * 1000 + math.floor(tonumber(t[2]) / 1000)

local state = redis.call('HMGET', key, 'tokens', 'last')
local current = tonumber(state[1])
local last = tonumber(state[2])
if current == nil then
	current = capacity
	last = now
end

local intervals = math.floor((now - last) / interval)
local cap = math.floor(capacity / rate) + 1
if intervals > cap then
	intervals = cap
end
if intervals > 0 then
	current = math.min(current + intervals * rate, capacity)
	last = now
end

local remaining = current - tokens
if remaining >= 0 then
	current = remaining
end

local ttl = (math.floor(capacity / rate) + 1) * interval
redis.call('HSET', key, 'tokens', current, 'last', last)
redis.call('PEXPIRE', key, ttl)

return {remaining, last + interval}
`)

// RedisStore keeps buckets in Redis hashes so that limits hold across replicas.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisStore returns a store that namespaces its keys with prefix.
func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (rs *RedisStore) ConsumeTokens(ctx context.Context, key string, tokens int, cfg Config) (int, time.Time, error) {
	res, err := consumeScript.Run(ctx, rs.client, []string{rs.key(key)},
		cfg.Capacity, cfg.RefillRate, cfg.RefillInterval.Milliseconds(), tokens,
	).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if len(res) != 2 {
		return 0, time.Time{}, fmt.Errorf("%w: unexpected script reply %v", ErrStoreUnavailable, res)
	}
	return int(res[0]), time.UnixMilli(res[1]), nil
}

func (rs *RedisStore) Reset(ctx context.Context, key string) error {
	if err := rs.client.Del(ctx, rs.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func (rs *RedisStore) key(k string) string {
	return rs.prefix + ":" + k
}
