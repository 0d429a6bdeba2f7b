package protection

import (
	"sync"

	"github.com/asecurityteam/rolling"
	"github.com/markusressel/boost2go/internal/boost"
	"github.com/markusressel/boost2go/internal/sensors"
	"github.com/markusressel/boost2go/internal/ui"
	"github.com/markusressel/boost2go/internal/util"
)

// samples are clamped to this minimum, so absent or bogus readings do not distort the window
const minVoltage = 1.0

// Listener is notified when a protection loop changes its throttle state
type Listener interface {
	OnThrottleChanged(id string, throttled bool)
}

// VoltageProtection disables boost while the voltage stays above the boost
// threshold for a whole window of Tau samples, and enables it again once the
// window mean dropped below the rest threshold without any sample exceeding
// the boost threshold.
type VoltageProtection struct {
	mu sync.Mutex

	id             string
	actuator       boost.Actuator
	boostThreshold float64
	restThreshold  float64
	tau            int

	window     *rolling.PointPolicy
	windowSize int
	throttled  bool
	min        float64
	max        float64
	avg        float64

	listeners []Listener
}

func NewVoltageProtection(id string, actuator boost.Actuator, boostThreshold float64, restThreshold float64, tau int) *VoltageProtection {
	if tau < 0 {
		tau = 0
	}
	return &VoltageProtection{
		id:             id,
		actuator:       actuator,
		boostThreshold: boostThreshold,
		restThreshold:  restThreshold,
		tau:            tau,
	}
}

func (p *VoltageProtection) GetId() string {
	return p.id
}

func (p *VoltageProtection) AddListener(listener Listener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, listener)
}

// SetTau changes the window size. A value of 0 disables the protection,
// which enables boost again if it is currently throttled.
func (p *VoltageProtection) SetTau(tau int) {
	if tau < 0 {
		tau = 0
	}

	p.mu.Lock()
	p.tau = tau
	released := false
	if tau == 0 && p.throttled {
		p.throttled = false
		released = true
		p.enableBoost(true)
	}
	listeners := p.copyListeners()
	p.mu.Unlock()

	if released {
		p.notify(listeners, false)
	}
}

func (p *VoltageProtection) Tau() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tau
}

func (p *VoltageProtection) SetThresholds(boostThreshold float64, restThreshold float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.boostThreshold = boostThreshold
	p.restThreshold = restThreshold
}

// OnValue feeds every present reading of the observed sensor into the loop
func (p *VoltageProtection) OnValue(sensor *sensors.Sensor, value float64, ok bool) {
	if ok {
		p.Update(value)
	}
}

// Update processes a single voltage sample
func (p *VoltageProtection) Update(sample float64) {
	p.mu.Lock()
	changed := p.update(sample)
	throttled := p.throttled
	min, max, avg := p.min, p.max, p.avg
	boostThreshold, tau := p.boostThreshold, p.tau
	listeners := p.copyListeners()
	p.mu.Unlock()

	if !changed {
		return
	}
	if throttled {
		ui.WarningAndNotify("Boost disabled", "Voltage %.3f above %.3f for %d samples", min, boostThreshold, tau)
	} else {
		ui.InfoAndNotify("Boost enabled", "Voltage recovered (avg %.3f, max %.3f)", avg, max)
	}
	p.notify(listeners, throttled)
}

// update must be called with p.mu held, returns true if the throttle state changed
func (p *VoltageProtection) update(sample float64) bool {
	if p.tau == 0 {
		return false
	}
	if sample < minVoltage {
		sample = minVoltage
	}

	if p.window == nil || p.windowSize != p.tau {
		p.window = util.CreateRollingWindow(p.tau)
		p.windowSize = p.tau
	}
	p.window.Append(sample)

	p.min = util.GetWindowMin(p.window)
	p.max = util.GetWindowMax(p.window)
	p.avg = util.GetWindowAvg(p.window)

	if !p.throttled && p.min > p.boostThreshold {
		p.throttled = true
		p.enableBoost(false)
		return true
	}
	if p.throttled && p.avg < p.restThreshold && p.max <= p.boostThreshold {
		p.throttled = false
		p.enableBoost(true)
		return true
	}
	if p.throttled && p.actuator.CanBoost() {
		// an earlier disable failed, keep trying while throttled
		p.enableBoost(false)
	}
	return false
}

func (p *VoltageProtection) enableBoost(enable bool) {
	err := p.actuator.EnableBoost(enable)
	if err != nil {
		ui.Warning("Unable to set boost state to %v: %v", enable, err)
	}
}

func (p *VoltageProtection) copyListeners() []Listener {
	listeners := make([]Listener, len(p.listeners))
	copy(listeners, p.listeners)
	return listeners
}

func (p *VoltageProtection) notify(listeners []Listener, throttled bool) {
	for _, l := range listeners {
		l.OnThrottleChanged(p.id, throttled)
	}
}

func (p *VoltageProtection) IsThrottled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.throttled
}

// WindowStats returns min, max and mean of the current window
func (p *VoltageProtection) WindowStats() (min float64, max float64, avg float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.min, p.max, p.avg
}
