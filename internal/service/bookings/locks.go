package bookings

import "sync"

// SalonLocks блокировки чтения/записи по салонам.
// Переходы состояния берут запись, запросы доступности - чтение.
type SalonLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.RWMutex
}

// NewSalonLocks создает пустой набор блокировок
func NewSalonLocks() *SalonLocks {
	return &SalonLocks{locks: make(map[int64]*sync.RWMutex)}
}

func (l *SalonLocks) get(salonID int64) *sync.RWMutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[salonID]
	if !ok {
		lock = &sync.RWMutex{}
		l.locks[salonID] = lock
	}
	return lock
}

// Lock захватывает блокировку записи салона
func (l *SalonLocks) Lock(salonID int64) (unlock func()) {
	lock := l.get(salonID)
	lock.Lock()
	return lock.Unlock
}

// RLock захватывает блокировку чтения салона
func (l *SalonLocks) RLock(salonID int64) (unlock func()) {
	lock := l.get(salonID)
	lock.RLock()
	return lock.RUnlock
}
