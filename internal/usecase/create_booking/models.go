package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Actor      domain.Actor
	SalonID    int64
	ClientID   *int64  // Для клиента по умолчанию он сам
	ClientName *string // Клиент без регистрации, только для персонала
	WorkerIDs  []int64
	ServiceIDs []int64 // Порядок сохраняется в бронировании
	Date       time.Time
	StartTime  types.TimeString
	Comment    *string
}

// Response созданное бронирование
type Response = models.BookingResponse
