package capacity

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

type memoryKey struct {
	salonID int64
	date    string
}

// MemoryRepository хранилище настроек дня в памяти (storage.driver = "memory", тесты)
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[memoryKey]*domain.DayCapacity
}

// NewMemoryRepository создает пустое хранилище
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[memoryKey]*domain.DayCapacity)}
}

// Get получает настройки дня салона
func (r *MemoryRepository) Get(_ context.Context, salonID int64, date time.Time) (*domain.DayCapacity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[memoryKey{salonID: salonID, date: date.Format(domain.DateFormat)}]
	if !ok {
		return nil, ErrCapacityNotFound
	}
	return item.Clone(), nil
}

// Upsert сохраняет настройки дня
func (r *MemoryRepository) Upsert(_ context.Context, capacity *domain.DayCapacity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[memoryKey{salonID: capacity.SalonID, date: capacity.Date.Format(domain.DateFormat)}] = capacity.Clone()
	return nil
}
