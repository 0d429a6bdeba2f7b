package controller

import (
	"strings"
	"sync"

	"github.com/markusressel/boost2go/internal/control_loop"
	"github.com/markusressel/boost2go/internal/curves"
	"github.com/markusressel/boost2go/internal/scheduler"
	"github.com/markusressel/boost2go/internal/sensors"
	"github.com/markusressel/boost2go/internal/ui"
	"github.com/markusressel/boost2go/internal/util"
	"github.com/qdm12/reprint"
)

const (
	MaxValue = 100.0

	// MaxSpeedLimit is the maximum duration (in ticks) of a max speed override
	MaxSpeedLimit = 60

	// number of consecutive ticks without a sensor value after which the curve aborts
	abortThreshold = 4

	stableCountLimit = 10
	hysteresis       = 1.0

	// initial value of the stability tracking, so the first reading always triggers a recompute
	unsetSensorValue = -1000.0

	virtualSensorMarker = "virtual"
)

type FanStatus int

const (
	Indeterminate FanStatus = -1
	Stopped       FanStatus = 0
	Running       FanStatus = 1
)

func (s FanStatus) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	default:
		return "indeterminate"
	}
}

// Listener is notified about changes of a CurveController.
// Notifications are delivered without holding the controller lock.
type Listener interface {
	OnValueChanged(c *CurveController)
	// OnAbort is called once when the driving sensor stopped delivering values
	OnAbort(c *CurveController)
}

// CurveController drives a control value from a sensor through a software curve
type CurveController struct {
	mu sync.Mutex

	scheduler *scheduler.Scheduler
	handle    scheduler.Handle
	started   bool

	points    []curves.Point
	stopStart curves.StopStart
	sensor    sensors.Source

	ramp     *control_loop.RampControlLoop
	rampDown control_loop.ControlLoop

	value               float64
	target              float64
	stableValue         float64
	stableCount         int
	previousSensorValue float64
	absentCount         int
	fanStatus           FanStatus
	maxSpeedCountdown   int

	listeners []Listener
}

// NewCurveController creates a stopped controller for the given curve.
// loadSensor may be nil.
func NewCurveController(
	scheduler *scheduler.Scheduler,
	config curves.Config,
	sensor sensors.Source,
	loadSensor sensors.Source,
) *CurveController {
	stepSpeed := config.StepSpeed
	if stepSpeed == 0 && sensor != nil && strings.Contains(sensor.GetId(), virtualSensorMarker) {
		stepSpeed = 1
	}

	points := make([]curves.Point, len(config.Points))
	copy(points, config.Points)

	c := &CurveController{
		scheduler: scheduler,
		points:    points,
		stopStart: config.StopStart,
		sensor:    sensor,
		ramp:      control_loop.NewRampControlLoop(stepSpeed, loadSensor),
		rampDown:  control_loop.NewDirectControlLoop(),
		fanStatus: Indeterminate,
	}
	c.reset()
	return c
}

// reset must be called with c.mu held
func (c *CurveController) reset() {
	c.fanStatus = Indeterminate
	c.stableValue = unsetSensorValue
	c.stableCount = 0
	c.absentCount = 0
	c.previousSensorValue = unsetSensorValue
	c.maxSpeedCountdown = 0
}

func (c *CurveController) AddListener(listener Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, listener)
}

func (c *CurveController) RemoveListener(listener Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, l := range c.listeners {
		if l == listener {
			c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
			return
		}
	}
}

// Start resets the transient state and registers the controller with the scheduler.
// Calling Start on a started controller has no effect.
func (c *CurveController) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return
	}
	c.reset()
	c.started = true
	c.handle = c.scheduler.Register(c.Tick)
	ui.Debug("Started curve controller for sensor '%s'", c.sensor.GetId())
}

// Stop unregisters the controller from the scheduler.
// Calling Stop on a stopped controller has no effect.
func (c *CurveController) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started {
		return
	}
	c.scheduler.Unregister(c.handle)
	c.started = false
	ui.Debug("Stopped curve controller for sensor '%s'", c.sensor.GetId())
}

func (c *CurveController) IsStarted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.started
}

// SetMaxSpeed forces the value to 100% for the given number of ticks (0..60)
func (c *CurveController) SetMaxSpeed(ticks int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maxSpeedCountdown = util.Coerce(ticks, 0, MaxSpeedLimit)
}

func (c *CurveController) MaxSpeedCountdown() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxSpeedCountdown
}

func (c *CurveController) SetLoadSensor(loadSensor sensors.Source) {
	c.ramp.SetLoadSensor(loadSensor)
}

func (c *CurveController) SetStepSpeed(stepSpeed int) {
	c.ramp.SetStepSpeed(stepSpeed)
}

func (c *CurveController) Sensor() sensors.Source {
	return c.sensor
}

// Value returns the current output in percent
func (c *CurveController) Value() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

func (c *CurveController) Target() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *CurveController) FanStatus() FanStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fanStatus
}

// Config returns a deep copy of the curve definition of this controller
func (c *CurveController) Config() curves.Config {
	c.mu.Lock()
	config := curves.Config{
		StopStart: c.stopStart,
		Points:    c.points,
		SensorId:  c.sensor.GetId(),
	}
	config = reprint.This(config).(curves.Config)
	c.mu.Unlock()

	if loadSensor := c.ramp.LoadSensor(); loadSensor != nil {
		config.LoadSensorId = loadSensor.GetId()
	} else {
		config.StepSpeed = c.ramp.StepSpeed()
	}
	return config
}

func (c *CurveController) String() string {
	return c.Config().String()
}

// Tick advances the controller by one step
func (c *CurveController) Tick() {
	c.mu.Lock()
	changed, abort := c.tick()
	listeners := make([]Listener, len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	if abort {
		ui.WarningAndNotify("Curve aborted", "Sensor '%s' stopped delivering values", c.sensor.GetId())
		for _, l := range listeners {
			l.OnAbort(c)
		}
	}
	if changed {
		for _, l := range listeners {
			l.OnValueChanged(c)
		}
	}
}

// tick must be called with c.mu held
func (c *CurveController) tick() (changed bool, abort bool) {
	stateChanged := false
	rampDown := false

	if c.maxSpeedCountdown > 0 {
		c.maxSpeedCountdown--
		if c.value != MaxValue {
			c.value = MaxValue
			stateChanged = true
			changed = true
		}
		if c.maxSpeedCountdown == 0 {
			rampDown = true
		} else {
			return changed, false
		}
	}

	sensorValue, ok := c.readSensor()
	if !ok {
		c.absentCount++
		return changed, c.absentCount == abortThreshold
	}
	c.absentCount = 0

	if c.stableValue == sensorValue && c.stableCount < stableCountLimit {
		c.stableCount++
	} else {
		c.stableValue = sensorValue
		c.stableCount = 0
	}

	// changes within the hysteresis band are ignored, unless the value was stable for a while
	if c.previousSensorValue < sensorValue-hysteresis ||
		c.previousSensorValue > sensorValue+hysteresis ||
		(c.previousSensorValue != sensorValue && c.stableCount >= stableCountLimit) {
		c.previousSensorValue = sensorValue
		if c.updateFanStatus(sensorValue) {
			stateChanged = true
		}
		if c.fanStatus == Stopped {
			c.target = 0
		} else {
			c.target = util.Round(curves.Evaluate(c.points, sensorValue))
		}
	}

	if c.value != c.target || stateChanged {
		if rampDown {
			c.value = c.rampDown.Cycle(c.value, c.target)
		} else {
			c.value = c.ramp.Cycle(c.value, c.target)
		}
		changed = true
	}

	return changed, false
}

func (c *CurveController) readSensor() (float64, bool) {
	if c.sensor == nil {
		return 0, false
	}
	if c.ramp.StepSpeed() > 0 {
		return c.sensor.GetValue()
	}
	return c.sensor.GetAverage()
}

// updateFanStatus must be called with c.mu held, returns true if the status changed
func (c *CurveController) updateFanStatus(sensorValue float64) bool {
	if !c.stopStart.Active() {
		c.fanStatus = Indeterminate
		return false
	}
	if c.fanStatus != Running && sensorValue > c.stopStart.StartTemp {
		c.fanStatus = Running
		return true
	}
	if c.fanStatus != Stopped && sensorValue < c.stopStart.StopTemp {
		c.fanStatus = Stopped
		return true
	}
	return false
}
