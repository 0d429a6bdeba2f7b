package control_loop

import (
	"math"
	"sync"

	"github.com/markusressel/boost2go/internal/sensors"
)

const (
	// a load sensor reading above this value slows down ramping towards a lower target
	busyLoadThreshold = 20
	busyStep          = 0.1

	largeGap   = 20
	largeStep  = 5
	mediumGap  = 10
	mediumStep = 2
	smallGap   = 1
	smallStep  = 0.5
)

// RampControlLoop gracefully approaches the target by limiting the change per cycle
// depending on the distance to the target.
// Small distances (<= 1) are closed immediately.
type RampControlLoop struct {
	mu sync.Mutex

	// stepSpeed > 0 disables graduated ramping
	stepSpeed  int
	loadSensor sensors.Source
}

func NewRampControlLoop(stepSpeed int, loadSensor sensors.Source) *RampControlLoop {
	return &RampControlLoop{
		stepSpeed:  stepSpeed,
		loadSensor: loadSensor,
	}
}

func (l *RampControlLoop) SetStepSpeed(stepSpeed int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stepSpeed = stepSpeed
}

func (l *RampControlLoop) StepSpeed() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stepSpeed
}

func (l *RampControlLoop) SetLoadSensor(loadSensor sensors.Source) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loadSensor = loadSensor
}

func (l *RampControlLoop) LoadSensor() sensors.Source {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadSensor
}

func (l *RampControlLoop) Cycle(current float64, target float64) float64 {
	l.mu.Lock()
	stepSpeed := l.stepSpeed
	loadSensor := l.loadSensor
	l.mu.Unlock()

	if current-target > smallGap && isBusy(loadSensor) {
		return current - busyStep
	}

	if stepSpeed > 0 {
		return target
	}

	gap := math.Abs(target - current)
	direction := 1.0
	if target < current {
		direction = -1.0
	}

	switch {
	case gap > largeGap:
		return current + direction*largeStep
	case gap > mediumGap:
		return current + direction*mediumStep
	case gap > smallGap:
		return current + direction*smallStep
	default:
		return target
	}
}

func isBusy(loadSensor sensors.Source) bool {
	if loadSensor == nil {
		return false
	}
	load, ok := loadSensor.GetValue()
	return ok && load > busyLoadThreshold
}
