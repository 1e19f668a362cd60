package events

import "errors"

var (
	// ErrMarshal возвращается при ошибке сериализации уведомления
	ErrMarshal = errors.New("events: failed to marshal notification")

	// ErrPublish возвращается при ошибке отправки уведомления в redis
	ErrPublish = errors.New("events: failed to publish notification")
)
