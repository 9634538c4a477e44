package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Limiter ограничивает частоту создания бронирований на клиента.
// Ошибки стора не блокируют клиента: лимитер в этом случае пропускает запрос.
type Limiter struct {
	limiter *limiter.Limiter
	logger  Logger
}

// NewMemory создает лимитер с in-memory стором
func NewMemory(maxPerWindow int64, window time.Duration, logger Logger) *Limiter {
	rate := limiter.Rate{
		Period: window,
		Limit:  maxPerWindow,
	}
	return &Limiter{
		limiter: limiter.New(memory.NewStore(), rate),
		logger:  logger,
	}
}

// NewRedis создает лимитер поверх Redis, окно переживает рестарт сервиса
func NewRedis(client *redis.Client, maxPerWindow int64, window time.Duration, logger Logger) (*Limiter, error) {
	rate := limiter.Rate{
		Period: window,
		Limit:  maxPerWindow,
	}

	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix: "booking:ratelimit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis rate limit store: %w", err)
	}

	return &Limiter{
		limiter: limiter.New(store, rate),
		logger:  logger,
	}, nil
}

// Allow проверяет, не исчерпано ли окно для ключа,
// и учитывает текущий запрос
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	lctx, err := l.limiter.Get(ctx, strings.ToLower(strings.TrimSpace(key)))
	if err != nil {
		l.logger.Warn("Limiter.Allow - store error, allowing request: %v", err)
		return true
	}
	return !lctx.Reached
}
