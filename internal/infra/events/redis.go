package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// RedisPublisher отправляет уведомления в канал redis pub/sub в формате JSON
type RedisPublisher struct {
	client  RedisClient
	channel string
	logger  Logger
}

// NewRedisPublisher создает издателя поверх готового клиента
func NewRedisPublisher(client RedisClient, channel string, log Logger) *RedisPublisher {
	return &RedisPublisher{
		client:  client,
		channel: channel,
		logger:  log,
	}
}

// NewRedisClient создает клиент go-redis по настройкам из конфига
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// Publish отправляет уведомление. Ошибка не откатывает уже закоммиченное изменение.
func (p *RedisPublisher) Publish(ctx context.Context, notification domain.Notification) error {
	data, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		p.logger.Error("Publish: failed to publish %s for booking id=%d: %v", notification.Type, notification.BookingID, err)
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	p.logger.Info("Publish: %s for booking id=%d sent to %s", notification.Type, notification.BookingID, p.channel)
	return nil
}
