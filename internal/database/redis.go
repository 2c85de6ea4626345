package database

import (
	"context"
	"fmt"
	"time"

	"github.com/hypernova-labs/purchase-service/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Redis representa la conexión a Redis
type Redis struct {
	*redis.Client
}

// ConnectRedis establece la conexión a Redis
func ConnectRedis(cfg *config.Config) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("error pinging Redis: %w", err)
	}

	return &Redis{client}, nil
}

// Close cierra la conexión a Redis
func (r *Redis) Close() error {
	return r.Client.Close()
}

// HealthCheck verifica la salud de Redis
func (r *Redis) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.Ping(ctx).Err()
}

// RateLimiter implementa una ventana fija por clave sobre Redis
type RateLimiter struct {
	redis  *Redis
	limit  int64
	window time.Duration
	logger *logrus.Logger
}

// NewRateLimiter crea un limitador de limit requests por ventana
func NewRateLimiter(r *Redis, limit int, window time.Duration, logger *logrus.Logger) *RateLimiter {
	return &RateLimiter{
		redis:  r,
		limit:  int64(limit),
		window: window,
		logger: logger,
	}
}

// Allow incrementa el contador de la ventana actual para key.
// Retorna false cuando se supera el límite. Si Redis falla se permite el request.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, int64) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	windowStart := time.Now().Truncate(l.window).Unix()
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, windowStart)

	pipe := l.redis.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.WithError(err).WithField("key", key).Warn("Rate limiter unavailable, allowing request")
		return true, 0
	}

	count := incr.Val()
	return count <= l.limit, count
}
