package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// Counter incrementa um contador que expira após window.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// ===============================
// Redis
// ===============================

// Open conecta ao Redis a partir de uma URL redis://.
func Open(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("ratelimit: parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ratelimit: ping redis: %w", err)
	}
	return client, nil
}

type RedisCounter struct {
	client *redis.Client
}

func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

func (r *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

// Compile-time check
var _ Counter = (*RedisCounter)(nil)

// ===============================
// Limiter (janela fixa)
// ===============================

type Limiter struct {
	counter Counter
	limit   int
	window  time.Duration
	now     func() time.Time
}

func New(counter Counter, limit int, window time.Duration) *Limiter {
	return &Limiter{
		counter: counter,
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow conta uma requisição de key na janela atual.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	now := l.now()
	bucket := now.UnixNano() / int64(l.window)
	reset := time.Unix(0, (bucket+1)*int64(l.window)).Sub(now)

	n, err := l.counter.Incr(ctx, fmt.Sprintf("rl:%s:%d", key, bucket), l.window)
	if err != nil {
		return true, 0, err
	}
	return n <= int64(l.limit), reset, nil
}

// Middleware limita por IP. Com limiter nil não faz nada; erro do Redis deixa passar.
func Middleware(l *Limiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil || l.limit <= 0 {
			c.Next()
			return
		}

		ok, reset, err := l.Allow(c.Request.Context(), scope+":"+c.ClientIP())
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Warn().Err(err).Str("scope", scope).Msg("rate limiter unavailable")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.limit))
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(reset.Seconds())+1))
			httperr.Write(c, http.StatusTooManyRequests, "rate_limited", "Muitas requisições. Tente novamente em instantes.")
			c.Abort()
			return
		}

		c.Next()
	}
}
