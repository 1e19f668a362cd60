package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// MemoryRepository хранилище бронирований в памяти (storage.driver = "memory", тесты).
// Возвращает и сохраняет копии, вызывающий код не может изменить состояние напрямую.
type MemoryRepository struct {
	mu     sync.RWMutex
	items  map[int64]*domain.Booking
	nextID int64
}

// NewMemoryRepository создает пустое хранилище
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[int64]*domain.Booking)}
}

// Create сохраняет новое бронирование и присваивает ID
func (r *MemoryRepository) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	booking.ID = r.nextID
	r.items[booking.ID] = booking.Clone()
	return booking, nil
}

// Save обновляет существующее бронирование
func (r *MemoryRepository) Save(_ context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[booking.ID]; !ok {
		return ErrBookingNotFound
	}
	r.items[booking.ID] = booking.Clone()
	return nil
}

// GetByID получает бронирование по ID
func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.items[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return booking.Clone(), nil
}

// List получает бронирования салона по фильтру
func (r *MemoryRepository) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	return r.collect(filter.Matches), nil
}

// ListByStatus получает бронирования всех салонов в статусе с датой не позже until
func (r *MemoryRepository) ListByStatus(_ context.Context, status domain.BookingStatus, until time.Time) ([]*domain.Booking, error) {
	return r.collect(func(b *domain.Booking) bool {
		return b.Status == status && !b.Date.After(until)
	}), nil
}

func (r *MemoryRepository) collect(match func(*domain.Booking) bool) []*domain.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bookings := make([]*domain.Booking, 0)
	for _, b := range r.items {
		if match(b) {
			bookings = append(bookings, b.Clone())
		}
	}

	sort.Slice(bookings, func(i, j int) bool {
		a, b := bookings[i], bookings[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.IsBefore(b.StartTime)
		}
		return a.ID < b.ID
	})
	return bookings
}
