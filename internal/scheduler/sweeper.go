package scheduler

import (
	"context"
	"sync"
	"time"
)

// Sweeper периодически запускает автозавершение бронирований.
// Каждый проход ограничен таймаутом.
type Sweeper struct {
	completer Completer
	interval  time.Duration
	timeout   time.Duration
	now       func() time.Time
	logger    Logger

	mu       sync.Mutex
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewSweeper создает планировщик автозавершения
func NewSweeper(completer Completer, interval, timeout time.Duration, log Logger) *Sweeper {
	return &Sweeper{
		completer: completer,
		interval:  interval,
		timeout:   timeout,
		now:       time.Now,
		logger:    log,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start запускает фоновый цикл. Первый проход выполняется сразу.
func (s *Sweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true

	s.logger.Info("Sweeper: started with interval=%s, timeout=%s", s.interval, s.timeout)
	go s.loop()
}

// Stop останавливает цикл и дожидается завершения текущего прохода
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})

	s.mu.Lock()
	running := s.running
	s.mu.Unlock()

	if running {
		<-s.doneCh
		s.logger.Info("Sweeper: stopped")
	}
}

// RunOnce выполняет один проход автозавершения
func (s *Sweeper) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	completed, err := s.completer.CompleteExpired(ctx, s.now())
	if err != nil {
		s.logger.Error("Sweeper: run failed after %d completions: %v", completed, err)
		return
	}
	if completed > 0 {
		s.logger.Info("Sweeper: completed %d bookings", completed)
	}
}

func (s *Sweeper) loop() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-s.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	s.RunOnce(ctx)
	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}
