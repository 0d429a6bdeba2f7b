package scheduler

import (
	"sync"
	"time"

	"github.com/markusressel/boost2go/internal/ui"
)

const DefaultInterval = 1 * time.Second

// Handle identifies a registered TickHandler
type Handle uint64

// TickHandler is invoked once per tick on the scheduler goroutine
type TickHandler func()

// Scheduler is a single shared periodic tick source.
// The underlying ticker is started on the first registration
// and stopped when the last handler is unregistered.
type Scheduler struct {
	mu sync.Mutex

	interval time.Duration
	nextId   Handle
	handlers map[Handle]TickHandler
	order    []Handle

	// closed to stop the currently running tick goroutine, nil while stopped
	stop chan struct{}
}

func New(interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		interval: interval,
		handlers: map[Handle]TickHandler{},
	}
}

func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Register adds the given handler and starts the ticker if it is not running yet
func (s *Scheduler) Register(handler TickHandler) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextId++
	handle := s.nextId
	s.handlers[handle] = handler
	s.order = append(s.order, handle)

	if s.stop == nil {
		s.start()
	}

	return handle
}

// Unregister removes the handler with the given handle.
// Unknown handles are ignored. Removing the last handler stops the ticker.
func (s *Scheduler) Unregister(handle Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.handlers[handle]; !ok {
		return
	}
	delete(s.handlers, handle)
	for i, h := range s.order {
		if h == handle {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	if len(s.handlers) == 0 && s.stop != nil {
		close(s.stop)
		s.stop = nil
		ui.Debug("Scheduler stopped")
	}
}

// Count returns the number of registered handlers
func (s *Scheduler) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handlers)
}

func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil
}

// start must be called with s.mu held
func (s *Scheduler) start() {
	stop := make(chan struct{})
	s.stop = stop
	ui.Debug("Scheduler started with interval %v", s.interval)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.fire(stop)
			}
		}
	}()
}

// fire runs all handlers registered at the time of the tick, in registration order.
// The lock is not held while a handler runs, so handlers may (un)register.
func (s *Scheduler) fire(generation chan struct{}) {
	s.mu.Lock()
	handles := make([]Handle, len(s.order))
	copy(handles, s.order)
	s.mu.Unlock()

	for _, handle := range handles {
		s.mu.Lock()
		handler, ok := s.handlers[handle]
		current := s.stop == generation
		s.mu.Unlock()
		if !ok || !current {
			continue
		}
		handler()
	}
}
