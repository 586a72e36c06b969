package lock

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	defaultExpiry     = 10 * time.Second
	defaultTries      = 32
	defaultRetryDelay = 100 * time.Millisecond
)

// RedisOptions configures the distributed lock.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int

	// Expiry bounds how long a crashed holder can block others.
	Expiry time.Duration
}

// Redis is a distributed lock built on redsync. It serializes callers across
// every server instance that shares the Redis server.
type Redis struct {
	client *redis.Client
	rs     *redsync.Redsync
	expiry time.Duration
}

// NewRedis connects to Redis and verifies the connection.
func NewRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return NewRedisFromClient(client, opts.Expiry), nil
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(client *redis.Client, expiry time.Duration) *Redis {
	if expiry <= 0 {
		expiry = defaultExpiry
	}
	return &Redis{
		client: client,
		rs:     redsync.New(goredis.NewPool(client)),
		expiry: expiry,
	}
}

// WithLock acquires the distributed mutex for key, runs fn and releases it.
func (r *Redis) WithLock(ctx context.Context, key string, fn func(context.Context) error) error {
	if err := checkKey(key); err != nil {
		return err
	}

	mutex := r.rs.NewMutex(
		"lock:"+key,
		redsync.WithExpiry(r.expiry),
		redsync.WithTries(defaultTries),
		redsync.WithRetryDelay(defaultRetryDelay),
	)

	if err := mutex.LockContext(ctx); err != nil {
		return acquireErr(key, err)
	}

	defer func() {
		// Release on a fresh context so a cancelled request still unlocks.
		unlockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		if ok, err := mutex.UnlockContext(unlockCtx); !ok || err != nil {
			slog.Error("failed to release lock", "key", key, "unlock_ok", ok, "error", err)
		}
	}()

	return fn(ctx)
}

// Close closes the underlying Redis client.
func (r *Redis) Close() error {
	return r.client.Close()
}
