package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options - параметры подключения к Redis
type Options struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
	// ConnectAttempts - сколько раз пробовать PING при старте
	ConnectAttempts int
	RetryDelay      time.Duration
}

// NewRedisClient подключается к Redis. Кэш, очередь уведомлений и аренда очистки
// используют один клиент, поэтому при старте ждём, пока Redis станет доступен.
func NewRedisClient(ctx context.Context, opts Options) (*redis.Client, error) {
	if opts.PoolSize <= 0 {
		opts.PoolSize = 10
	}
	if opts.ConnectAttempts <= 0 {
		opts.ConnectAttempts = 1
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     opts.PoolSize,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	var err error
	for attempt := 1; attempt <= opts.ConnectAttempts; attempt++ {
		if err = rdb.Ping(ctx).Err(); err == nil {
			return rdb, nil
		}
		if attempt == opts.ConnectAttempts {
			break
		}
		select {
		case <-ctx.Done():
			_ = rdb.Close()
			return nil, fmt.Errorf("redis: connect cancelled: %w", ctx.Err())
		case <-time.After(opts.RetryDelay):
		}
	}

	_ = rdb.Close()
	return nil, fmt.Errorf("redis: failed to connect to %s after %d attempts: %w", opts.Addr, opts.ConnectAttempts, err)
}
