package boost

import (
	"sync"

	"github.com/markusressel/boost2go/internal/ui"
)

// NoopActuator only remembers and logs the requested state.
// It is used when no actuator is configured.
type NoopActuator struct {
	mu       sync.Mutex
	enabled  bool
	minLevel int
	maxLevel int
}

func NewNoopActuator() *NoopActuator {
	return &NoopActuator{
		enabled:  true,
		minLevel: 0,
		maxLevel: 100,
	}
}

func (a *NoopActuator) EnableBoost(enable bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if enable != a.enabled {
		ui.Info("Boost enabled: %v (no actuator configured)", enable)
		a.enabled = enable
	}
	return nil
}

func (a *NoopActuator) CanBoost() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}

func (a *NoopActuator) SetPerformanceLevel(min int, max int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if min != a.minLevel || max != a.maxLevel {
		ui.Info("Performance level [%d..%d] (no actuator configured)", min, max)
		a.minLevel = min
		a.maxLevel = max
	}
	return nil
}

// PerformanceLevel returns the last requested performance level range
func (a *NoopActuator) PerformanceLevel() (min int, max int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.minLevel, a.maxLevel
}
