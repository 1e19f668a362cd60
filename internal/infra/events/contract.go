package events

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisClient часть клиента go-redis, используемая издателем
type RedisClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
