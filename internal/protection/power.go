package protection

import (
	"sync"

	"github.com/markusressel/boost2go/internal/boost"
	"github.com/markusressel/boost2go/internal/sensors"
	"github.com/markusressel/boost2go/internal/ui"
)

const (
	MaxPerformanceLevel = 100
	MinPerformanceLevel = 5
	performanceStep     = 5

	// the applied ceiling while the level is at its maximum on the way up
	maxAppliedCeiling = 99

	upperBand = 1.05
	lowerBand = 0.95
)

// PowerThrottle lowers the performance level in steps of 5% while the power
// draw exceeds the target (PPT) by more than 5%, and raises it again while the
// power draw is more than 5% below the target.
type PowerThrottle struct {
	mu sync.Mutex

	id       string
	actuator boost.Actuator
	ppt      float64
	level    int
}

func NewPowerThrottle(id string, actuator boost.Actuator, ppt float64) *PowerThrottle {
	return &PowerThrottle{
		id:       id,
		actuator: actuator,
		ppt:      ppt,
		level:    MaxPerformanceLevel,
	}
}

func (p *PowerThrottle) GetId() string {
	return p.id
}

// SetPPT sets the power target. A value of 0 disables throttling
// and restores the full performance level.
func (p *PowerThrottle) SetPPT(ppt float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ppt < 0 {
		ppt = 0
	}
	p.ppt = ppt
	if ppt == 0 {
		p.level = MaxPerformanceLevel
		p.apply(MaxPerformanceLevel)
	}
}

func (p *PowerThrottle) PPT() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ppt
}

// Level returns the current performance level in percent
func (p *PowerThrottle) Level() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

// OnValue feeds every present reading of the observed sensor into the loop
func (p *PowerThrottle) OnValue(sensor *sensors.Sensor, value float64, ok bool) {
	if ok {
		p.Update(value)
	}
}

// Update processes a single power sample
func (p *PowerThrottle) Update(sample float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ppt == 0 {
		return
	}

	if sample > p.ppt*upperBand && p.level > MinPerformanceLevel {
		p.level -= performanceStep
		p.apply(p.level)
	} else if sample < p.ppt*lowerBand && p.level < MaxPerformanceLevel {
		p.level += performanceStep
		ceiling := p.level
		if ceiling == MaxPerformanceLevel {
			ceiling = maxAppliedCeiling
		}
		p.apply(ceiling)
	}
}

// apply must be called with p.mu held
func (p *PowerThrottle) apply(ceiling int) {
	ui.Debug("Power throttle '%s': performance level %d", p.id, ceiling)
	err := p.actuator.SetPerformanceLevel(MinPerformanceLevel, ceiling)
	if err != nil {
		ui.Warning("Unable to set performance level to %d: %v", ceiling, err)
	}
}
