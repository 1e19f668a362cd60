package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Actor    domain.Actor
	SalonID  int64
	Date     time.Time // Дата без времени
	ClientID *int64    // Для клиента по умолчанию он сам
}

// Response модель ответа со статусами слотов дня
type Response struct {
	Date    time.Time
	SalonID int64
	Slots   []Slot
}

// Slot модель временного слота
type Slot struct {
	StartTime   types.TimeString
	Status      domain.SlotStatus
	Occupancy   int
	MaxSlots    int
	IsSensitive bool
}
