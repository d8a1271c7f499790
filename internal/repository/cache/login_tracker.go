package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"simhire-backend/internal/domain"
	"simhire-backend/pkg/logger"
	"simhire-backend/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

// LoginTrackerConfig holds configuration for login tracking
type LoginTrackerConfig struct {
	MaxAttempts   int           // failed attempts before a block
	AttemptWindow time.Duration // window the failures are counted in
	BlockDuration time.Duration
}

// DefaultLoginTrackerConfig blocks an email for 15 minutes after 5 failures in 15 minutes
func DefaultLoginTrackerConfig() LoginTrackerConfig {
	return LoginTrackerConfig{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
	}
}

// KEYS[1] = counter key, ARGV[1] = TTL in seconds. Returns the count after increment.
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

type loginTracker struct {
	client *goredis.Client
	config LoginTrackerConfig
	mem    *memStore
}

// NewLoginTracker counts failed logins per email. A nil client keeps the counters in memory.
func NewLoginTracker(client *goredis.Client, config LoginTrackerConfig) domain.LoginGuard {
	if config.MaxAttempts <= 0 {
		config = DefaultLoginTrackerConfig()
	}
	return &loginTracker{client: client, config: config, mem: newMemStore()}
}

func failKey(email string) string {
	return redis.Key("fail", "login", strings.ToLower(email))
}

func blockKey(email string) string {
	return redis.Key("blocked", "login", strings.ToLower(email))
}

func (lt *loginTracker) IsBlocked(ctx context.Context, email string) (bool, error) {
	if lt.client == nil {
		_, ok := lt.mem.get(blockKey(email))
		return ok, nil
	}
	exists, err := lt.client.Exists(ctx, blockKey(email)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// RecordFailure counts one failed attempt and reports whether the email is now blocked
func (lt *loginTracker) RecordFailure(ctx context.Context, email string) (bool, error) {
	count, err := lt.increment(ctx, failKey(email))
	if err != nil {
		return false, err
	}
	if count < lt.config.MaxAttempts {
		return false, nil
	}

	if lt.client == nil {
		lt.mem.set(blockKey(email), []byte("1"), lt.config.BlockDuration)
		lt.mem.del(failKey(email))
	} else {
		pipe := lt.client.TxPipeline()
		pipe.Set(ctx, blockKey(email), "1", lt.config.BlockDuration)
		pipe.Del(ctx, failKey(email))
		if _, err := pipe.Exec(ctx); err != nil {
			return true, err
		}
	}

	logger.Log.WarnContext(ctx, "login blocked after repeated failures",
		"email", email,
		"attempts", count,
		"block_duration", lt.config.BlockDuration.String())
	return true, nil
}

func (lt *loginTracker) increment(ctx context.Context, key string) (int, error) {
	if lt.client == nil {
		return lt.mem.incr(key, lt.config.AttemptWindow), nil
	}
	result, err := lt.client.Eval(ctx, incrWithTTLScript, []string{key}, int(lt.config.AttemptWindow.Seconds())).Result()
	if err != nil {
		return 0, err
	}
	count, ok := result.(int64)
	if !ok {
		return 0, errors.New("unexpected result type from Lua script")
	}
	return int(count), nil
}

// Reset clears the failure counter after a successful login
func (lt *loginTracker) Reset(ctx context.Context, email string) error {
	if lt.client == nil {
		lt.mem.del(failKey(email))
		return nil
	}
	return lt.client.Del(ctx, failKey(email)).Err()
}
