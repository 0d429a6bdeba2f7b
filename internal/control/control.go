package control

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/markusressel/boost2go/internal/controller"
	"github.com/markusressel/boost2go/internal/curves"
	"github.com/markusressel/boost2go/internal/hardware"
	"github.com/markusressel/boost2go/internal/persistence"
	"github.com/markusressel/boost2go/internal/scheduler"
	"github.com/markusressel/boost2go/internal/sensors"
	"github.com/markusressel/boost2go/internal/ui"
	"github.com/markusressel/boost2go/internal/util"
)

const (
	DefaultMinSoftwareValue = 0.0
	DefaultMaxSoftwareValue = 100.0
)

// Listener is notified about changes of a Control
type Listener interface {
	// OnControlModeChanged is called whenever the (effective) control mode changes
	OnControlModeChanged(c *Control)
	// OnSoftwareValueChanged is called whenever the value returned by SoftwareValue changes
	OnSoftwareValueChanged(c *Control)
}

// Control selects between a manual value, a software curve and the default (hardware) control
// of a single actuator. The selected mode, the manual value and the curve are persisted.
//
// A persisted curve is bound lazily: the curve controller is created as soon as its
// sensor shows up in the hardware topology (see NotifyHardwareAdded).
type Control struct {
	mu sync.Mutex

	id        string
	settings  persistence.Settings
	scheduler *scheduler.Scheduler

	mode             Mode
	softwareValue    float64
	minSoftwareValue float64
	maxSoftwareValue float64

	// curveConfig is the curve to bind, nil if it has not been loaded yet
	curveConfig *curves.Config
	// invalidCurve is set if the persisted curve could not be parsed
	invalidCurve bool

	curve         *controller.CurveController
	curveAttached bool
	curveValue    float64
	loadSensor    sensors.Source

	resumeHandle  scheduler.Handle
	resumePending bool

	listeners []Listener
}

// New creates a Control and restores its mode and manual value from the settings
func New(
	id string,
	settings persistence.Settings,
	scheduler *scheduler.Scheduler,
	minSoftwareValue float64,
	maxSoftwareValue float64,
) *Control {
	c := &Control{
		id:               id,
		settings:         settings,
		scheduler:        scheduler,
		minSoftwareValue: minSoftwareValue,
		maxSoftwareValue: maxSoftwareValue,
	}

	value, err := strconv.ParseFloat(settings.Get(c.key("value"), "0"), 64)
	if err != nil {
		value = 0
	}
	c.softwareValue = value

	mode, err := strconv.Atoi(settings.Get(c.key("mode"), strconv.Itoa(int(Undefined))))
	if err != nil || Mode(mode) < Undefined || Mode(mode) > SoftwareCurve {
		c.mode = Undefined
	} else {
		c.mode = Mode(mode)
	}

	return c
}

func (c *Control) key(name string) string {
	return fmt.Sprintf("%s/%s", c.id, name)
}

// ModeKey returns the settings key holding the mode of the control with the given id
func ModeKey(id string) string {
	return id + "/mode"
}

// ValueKey returns the settings key holding the manual value of the control with the given id
func ValueKey(id string) string {
	return id + "/value"
}

// CurveKey returns the settings key holding the curve of the control with the given id
func CurveKey(id string) string {
	return id + "/curveValue"
}

// SeededCurveKey holds the configured curve that was last written to CurveKey
func SeededCurveKey(id string) string {
	return id + "/seededCurve"
}

func (c *Control) GetId() string {
	return c.id
}

func (c *Control) AddListener(listener Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, listener)
}

func (c *Control) RemoveListener(listener Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, l := range c.listeners {
		if l == listener {
			c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
			return
		}
	}
}

// ControlMode returns the effective mode: a curve that is not attached
// reports Default, an attached one reports Software.
func (c *Control) ControlMode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controlMode()
}

func (c *Control) controlMode() Mode {
	if c.mode == SoftwareCurve {
		if c.curveAttached {
			return Software
		}
		return Default
	}
	return c.mode
}

// ActualControlMode returns the selected mode, reporting Default for a curve that is not attached
func (c *Control) ActualControlMode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == SoftwareCurve && !c.curveAttached {
		return Default
	}
	return c.mode
}

// SoftwareValue returns the manual value, or the curve output in SoftwareCurve mode
func (c *Control) SoftwareValue() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == SoftwareCurve {
		return c.curveValue
	}
	return c.softwareValue
}

func (c *Control) MinSoftwareValue() float64 {
	return c.minSoftwareValue
}

func (c *Control) MaxSoftwareValue() float64 {
	return c.maxSoftwareValue
}

func (c *Control) SetDefault() {
	c.mu.Lock()
	event := c.beginChange()
	c.setMode(Default)
	c.finishChange(event)
}

// SetSoftware selects a manual value, coerced into [MinSoftwareValue, MaxSoftwareValue]
func (c *Control) SetSoftware(value float64) {
	value = util.Coerce(value, c.minSoftwareValue, c.maxSoftwareValue)

	c.mu.Lock()
	event := c.beginChange()
	c.setMode(Software)
	if c.softwareValue != value {
		c.softwareValue = value
		event.valueChanged = true
		c.persist(c.key("value"), strconv.FormatFloat(value, 'f', -1, 64))
	}
	c.finishChange(event)
}

// SetSoftwareCurve attaches a new curve driven by the given sensor.
// loadSensor may be nil.
func (c *Control) SetSoftwareCurve(config curves.Config, sensor sensors.Source, loadSensor sensors.Source) error {
	if sensor == nil {
		return fmt.Errorf("control %s: missing curve sensor", c.id)
	}
	config.SensorId = sensor.GetId()
	if loadSensor != nil {
		config.LoadSensorId = loadSensor.GetId()
		config.StepSpeed = 0
	}
	if err := config.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	event := c.beginChange()
	c.setMode(SoftwareCurve)

	c.releaseCurve()
	c.curveConfig = &config
	c.invalidCurve = false
	c.loadSensor = loadSensor
	c.curve = controller.NewCurveController(c.scheduler, config, sensor, loadSensor)
	c.attachCurve()

	curveValue := c.curve.String()
	c.persist(c.key("curveValue"), curveValue)
	ui.Debug("Control %s: curve set to %s", c.id, curveValue)
	c.finishChange(event)
	return nil
}

// GetSoftwareCurve returns a copy of the configuration of the bound curve
func (c *Control) GetSoftwareCurve() (curves.Config, bool) {
	c.mu.Lock()
	curve := c.curve
	c.mu.Unlock()
	if curve == nil {
		return curves.Config{}, false
	}
	return curve.Config(), true
}

// Curve returns the bound curve controller, if any
func (c *Control) Curve() *controller.CurveController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.curve
}

// SetMaxSpeed forces the curve output to 100% for the given number of ticks (0..60),
// which are seconds at the default tick rate.
func (c *Control) SetMaxSpeed(ticks int) {
	c.mu.Lock()
	curve := c.curve
	c.mu.Unlock()
	if curve == nil {
		return
	}
	curve.SetMaxSpeed(ticks)
}

// OnHardwareAdded implements hardware.Listener
func (c *Control) OnHardwareAdded(groups []hardware.Group) {
	c.NotifyHardwareAdded(groups)
}

// OnHardwareRemoved implements hardware.Listener
func (c *Control) OnHardwareRemoved(hw hardware.Hardware) {
	c.NotifyHardwareRemoved(hw)
}

// NotifyHardwareAdded binds the persisted curve (and its load sensor) to the sensors
// found in the given groups.
func (c *Control) NotifyHardwareAdded(groups []hardware.Group) {
	c.mu.Lock()
	event := c.beginChange()
	defer c.finishChange(event)

	if c.invalidCurve {
		return
	}

	if c.curveConfig == nil {
		value := c.settings.Get(c.key("curveValue"), "")
		config, err := curves.Parse(value)
		if err != nil {
			c.invalidCurve = true
			if len(value) > 0 {
				ui.Warning("Control %s: ignoring persisted curve: %v", c.id, err)
			}
			return
		}
		c.curveConfig = &config
	}
	config := *c.curveConfig

	if c.loadSensor == nil && len(config.LoadSensorId) > 0 {
		if sensor := hardware.FindSensor(groups, config.LoadSensorId); sensor != nil {
			ui.Debug("Control %s: load sensor %s found", c.id, sensor.GetId())
			c.loadSensor = sensor
			if c.curve != nil {
				c.curve.SetLoadSensor(sensor)
			}
		}
	}

	if c.curve != nil {
		return
	}

	sensor := hardware.FindSensor(groups, config.SensorId)
	if sensor == nil {
		return
	}
	ui.Debug("Control %s: curve sensor %s found", c.id, sensor.GetId())
	c.curve = controller.NewCurveController(c.scheduler, config, sensor, c.loadSensor)
	if c.mode == SoftwareCurve {
		c.attachCurve()
	}
}

// NotifyHardwareRemoved releases the curve if its sensor belongs to the removed hardware
func (c *Control) NotifyHardwareRemoved(hw hardware.Hardware) {
	curveRemoved := false
	loadRemoved := false

	c.mu.Lock()
	if c.curveConfig != nil {
		hardware.WalkHardware(hw, func(h hardware.Hardware) {
			for _, sensor := range h.Sensors() {
				switch sensor.GetId() {
				case c.curveConfig.SensorId:
					curveRemoved = c.curve != nil
				case c.curveConfig.LoadSensorId:
					loadRemoved = c.loadSensor != nil
				}
			}
		})
	}
	if loadRemoved {
		c.loadSensor = nil
		if c.curve != nil {
			c.curve.SetLoadSensor(nil)
		}
	}
	c.mu.Unlock()

	if curveRemoved {
		c.NotifyClosing()
	}
}

// NotifyClosing detaches and releases the curve controller
func (c *Control) NotifyClosing() {
	c.mu.Lock()
	if c.curve == nil {
		c.mu.Unlock()
		return
	}
	event := c.beginChange()
	c.releaseCurve()
	// the curve is gone, listeners need to re-evaluate the effective mode
	event.modeChanged = true
	ui.Debug("Control %s: curve released", c.id)
	c.finishChange(event)
}

// Resume re-attaches a curve that was aborted because its sensor stopped delivering values
func (c *Control) Resume() {
	c.mu.Lock()
	event := c.beginChange()
	c.stopResumeWatch()
	if c.mode == SoftwareCurve && c.curve != nil && !c.curveAttached {
		ui.Info("Control %s: sensor values are available again, resuming curve", c.id)
		c.attachCurve()
	}
	c.finishChange(event)
}

// OnValueChanged implements controller.Listener
func (c *Control) OnValueChanged(curve *controller.CurveController) {
	value := curve.Value()

	c.mu.Lock()
	if curve != c.curve {
		c.mu.Unlock()
		return
	}
	event := c.beginChange()
	if c.curveValue != value {
		c.curveValue = value
		event.valueChanged = true
	}
	c.finishChange(event)
}

// OnAbort implements controller.Listener
func (c *Control) OnAbort(curve *controller.CurveController) {
	c.mu.Lock()
	if curve != c.curve {
		c.mu.Unlock()
		return
	}
	event := c.beginChange()
	c.detachCurve()
	event.modeChanged = true
	if !c.resumePending {
		c.resumePending = true
		c.resumeHandle = c.scheduler.Register(c.watchResume)
	}
	c.finishChange(event)
}

// watchResume runs on every tick after an abort, until the curve sensor delivers values again
func (c *Control) watchResume() {
	c.mu.Lock()
	curve := c.curve
	c.mu.Unlock()

	if curve == nil {
		c.mu.Lock()
		c.stopResumeWatch()
		c.mu.Unlock()
		return
	}
	if _, ok := curve.Sensor().GetValue(); ok {
		c.Resume()
	}
}

// stopResumeWatch must be called with c.mu held
func (c *Control) stopResumeWatch() {
	if !c.resumePending {
		return
	}
	c.scheduler.Unregister(c.resumeHandle)
	c.resumePending = false
}

// setMode must be called with c.mu held
func (c *Control) setMode(mode Mode) {
	c.detachCurve()
	if c.mode != mode {
		c.mode = mode
		c.persist(c.key("mode"), strconv.Itoa(int(mode)))
	}
}

// attachCurve must be called with c.mu held
func (c *Control) attachCurve() {
	if c.curveAttached {
		return
	}
	c.curve.AddListener(c)
	c.curve.Start()
	c.curveAttached = true
	ui.Debug("Control %s: curve attached", c.id)
}

// detachCurve must be called with c.mu held
func (c *Control) detachCurve() {
	c.stopResumeWatch()
	if !c.curveAttached || c.curve == nil {
		return
	}
	c.curve.Stop()
	c.curve.RemoveListener(c)
	c.curveAttached = false
	ui.Debug("Control %s: curve detached", c.id)
}

// releaseCurve must be called with c.mu held
func (c *Control) releaseCurve() {
	c.detachCurve()
	if c.curve != nil {
		c.curve.Stop()
		c.curve = nil
	}
}

func (c *Control) persist(key string, value string) {
	if err := c.settings.Set(key, value); err != nil {
		ui.Warning("Control %s: cannot persist %s: %v", c.id, key, err)
	}
}

type changeEvent struct {
	mode          Mode
	rawMode       Mode
	softwareValue float64
	modeChanged   bool
	valueChanged  bool
}

// beginChange must be called with c.mu held
func (c *Control) beginChange() *changeEvent {
	return &changeEvent{
		mode:          c.controlMode(),
		rawMode:       c.mode,
		softwareValue: c.softwareValueLocked(),
	}
}

// finishChange releases c.mu and notifies listeners about the changes since beginChange
func (c *Control) finishChange(event *changeEvent) {
	if c.controlMode() != event.mode || c.mode != event.rawMode {
		event.modeChanged = true
	}
	if c.softwareValueLocked() != event.softwareValue {
		event.valueChanged = true
	}
	listeners := make([]Listener, len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	if event.modeChanged {
		for _, l := range listeners {
			l.OnControlModeChanged(c)
		}
	}
	if event.valueChanged {
		for _, l := range listeners {
			l.OnSoftwareValueChanged(c)
		}
	}
}

func (c *Control) softwareValueLocked() float64 {
	if c.mode == SoftwareCurve {
		return c.curveValue
	}
	return c.softwareValue
}
