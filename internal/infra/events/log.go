package events

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// LogPublisher пишет уведомления в лог (events.driver = "log")
type LogPublisher struct {
	logger Logger
}

// NewLogPublisher создает издателя, пишущего в лог
func NewLogPublisher(log Logger) *LogPublisher {
	return &LogPublisher{logger: log}
}

// Publish логирует уведомление
func (p *LogPublisher) Publish(_ context.Context, n domain.Notification) error {
	p.logger.Info("Notification: %s booking id=%d salon=%d status=%s date=%s %s-%s",
		n.Type, n.BookingID, n.SalonID, n.Status, n.Date, n.StartTime, n.EndTime)
	return nil
}
