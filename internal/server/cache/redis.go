package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/redis/go-redis/v9"
)

// versionTTL outlives any entry, so a version key never expires while a
// reader could still hold it.
const versionTTL = 24 * time.Hour

// setScript writes KEYS[1] only when the version in KEYS[2] equals ARGV[2].
const setScript = `
local v = redis.call('GET', KEYS[2])
if (v or '') ~= ARGV[2] then
  return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
return 1
`

// evictScript bumps the version in KEYS[2] and drops KEYS[1].
const evictScript = `
redis.call('INCR', KEYS[2])
redis.call('PEXPIRE', KEYS[2], ARGV[1])
redis.call('DEL', KEYS[1])
return 1
`

// redisClient is the part of *redis.Client the cache uses.
type redisClient interface {
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
	Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

type RedisCache struct {
	client redisClient
	ttl    time.Duration
	logger logging.Logger
}

// NewRedisCache connects to addr and checks the connection with a ping.
func NewRedisCache(ctx context.Context, addr, password string, db int, ttl time.Duration, logger logging.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	return newRedisCache(client, ttl, logger), nil
}

func newRedisCache(client redisClient, ttl time.Duration, logger logging.Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, logger: logger.With("module", "cache")}
}

func key(ownerID string, id int64) string {
	return fmt.Sprintf("todo:%s:%d", ownerID, id)
}

func versionKey(ownerID string, id int64) string {
	return key(ownerID, id) + ":v"
}

func (c *RedisCache) Get(ctx context.Context, ownerID string, id int64) (*models.Todo, Version, bool) {
	k := key(ownerID, id)
	vals, err := c.client.MGet(ctx, k, versionKey(ownerID, id)).Result()
	if err != nil || len(vals) != 2 {
		c.logger.Warn(ctx, "cache get failed", "key", k, "error", err)
		return nil, Version{}, false
	}

	stamp, _ := vals[1].(string)
	seen := NewVersion(stamp)

	data, ok := vals[0].(string)
	if !ok {
		return nil, seen, false
	}

	t := &models.Todo{}
	if err := json.Unmarshal([]byte(data), t); err != nil {
		c.logger.Warn(ctx, "cache entry corrupt", "key", k, "error", err)
		return nil, seen, false
	}
	// a stale entry from another owner must never be served
	if t.OwnerID != ownerID || t.ID != id {
		return nil, seen, false
	}
	return t, seen, true
}

func (c *RedisCache) Set(ctx context.Context, todo *models.Todo, seen Version) {
	if !seen.known {
		return
	}
	data, err := json.Marshal(todo)
	if err != nil {
		c.logger.Warn(ctx, "cache encode failed", "error", err)
		return
	}
	k := key(todo.OwnerID, todo.ID)
	keys := []string{k, versionKey(todo.OwnerID, todo.ID)}
	stored, err := c.client.Eval(ctx, setScript, keys, string(data), seen.value, c.ttl.Milliseconds()).Int()
	if err != nil {
		c.logger.Warn(ctx, "cache set failed", "key", k, "error", err)
		return
	}
	if stored == 0 {
		c.logger.Debug(ctx, "cache set skipped, entry evicted meanwhile", "key", k)
	}
}

func (c *RedisCache) Delete(ctx context.Context, ownerID string, id int64) {
	k := key(ownerID, id)
	keys := []string{k, versionKey(ownerID, id)}
	if err := c.client.Eval(ctx, evictScript, keys, versionTTL.Milliseconds()).Err(); err != nil && !errors.Is(err, redis.Nil) {
		c.logger.Warn(ctx, "cache delete failed", "key", k, "error", err)
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
