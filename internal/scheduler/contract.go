package scheduler

import (
	"context"
	"time"
)

// Completer автоматическое завершение истёкших бронирований
type Completer interface {
	CompleteExpired(ctx context.Context, now time.Time) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
