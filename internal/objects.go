package internal

import (
	"fmt"
	"strconv"

	"github.com/markusressel/boost2go/internal/boost"
	"github.com/markusressel/boost2go/internal/configuration"
	"github.com/markusressel/boost2go/internal/control"
	"github.com/markusressel/boost2go/internal/fans"
	"github.com/markusressel/boost2go/internal/hardware"
	"github.com/markusressel/boost2go/internal/persistence"
	"github.com/markusressel/boost2go/internal/protection"
	"github.com/markusressel/boost2go/internal/scheduler"
	"github.com/markusressel/boost2go/internal/sensors"
	"github.com/markusressel/boost2go/internal/ui"
)

// Backend holds all objects operated by the daemon
type Backend struct {
	Settings  persistence.Settings
	Scheduler *scheduler.Scheduler
	Topology  *hardware.Topology

	Controls []*control.Control
	Drivers  []*fans.Driver

	Actuator boost.Actuator
	Voltage  *protection.VoltageProtection
	Power    *protection.PowerThrottle
}

// InitializeObjects creates the object graph for the given configuration.
// lmSensors creates the group of libsensors chips, it is only called if enabled in the config.
func InitializeObjects(
	config configuration.Configuration,
	settings persistence.Settings,
	lmSensors func() hardware.Group,
) (*Backend, error) {
	b := &Backend{
		Settings:  settings,
		Scheduler: scheduler.New(config.ControlTickRate),
	}

	for _, controlConfig := range config.Controls {
		output, err := fans.NewOutput(controlConfig)
		if err != nil {
			return nil, err
		}
		seedCurve(settings, controlConfig)

		c := control.New(controlConfig.ID, settings, b.Scheduler, controlConfig.GetMin(0), controlConfig.GetMax(100))
		driver := fans.NewDriver(output)
		c.AddListener(driver)

		b.Controls = append(b.Controls, c)
		b.Drivers = append(b.Drivers, driver)
	}

	var listeners []hardware.Listener
	for _, c := range b.Controls {
		listeners = append(listeners, c)
	}
	topology, err := CreateTopology(config, settings, lmSensors, listeners...)
	if err != nil {
		return nil, err
	}
	b.Topology = topology

	for i, c := range b.Controls {
		b.Drivers[i].Apply(c)
	}

	b.Actuator = createActuator(config.Boost.Actuator)
	if voltageConfig := config.Boost.Voltage; voltageConfig != nil {
		b.Voltage = protection.NewVoltageProtection(
			voltageConfig.Sensor,
			b.Actuator,
			voltageConfig.BoostThreshold,
			voltageConfig.RestThreshold,
			voltageConfig.Tau,
		)
		b.observe(voltageConfig.Sensor, b.Voltage)
	}
	if powerConfig := config.Boost.Power; powerConfig != nil {
		b.Power = protection.NewPowerThrottle(powerConfig.Sensor, b.Actuator, powerConfig.PPT)
		b.observe(powerConfig.Sensor, b.Power)
	}

	return b, nil
}

// CreateTopology creates a topology holding the configured, lm-sensors and virtual sensors.
// The given listeners are registered before any group is added.
func CreateTopology(
	config configuration.Configuration,
	settings persistence.Settings,
	lmSensors func() hardware.Group,
	listeners ...hardware.Listener,
) (*hardware.Topology, error) {
	specs, err := createSensorSpecs(config.Sensors)
	if err != nil {
		return nil, err
	}

	topology := hardware.NewTopology()

	// virtual sensors must be bound before the controls that use them
	virtualGroup := hardware.NewVirtualGroup(settings)
	topology.AddListener(virtualGroup.Listener())
	for _, listener := range listeners {
		topology.AddListener(listener)
	}

	topology.AddGroup(hardware.NewConfiguredGroup(specs))
	if config.LmSensors.Enabled.Get() && lmSensors != nil {
		topology.AddGroup(lmSensors())
	}
	topology.AddGroup(virtualGroup)

	return topology, nil
}

func (b *Backend) observe(sensorId string, observer sensors.Observer) {
	sensor, ok := b.Topology.FindSensor(sensorId)
	if !ok {
		ui.Warning("Sensor %s not found, protection is inactive", sensorId)
		return
	}
	sensor.AddObserver(observer)
}

// Close releases all curves, hands the outputs back to the hardware and closes all hardware groups
func (b *Backend) Close() {
	for _, c := range b.Controls {
		c.NotifyClosing()
	}
	for _, driver := range b.Drivers {
		if err := driver.Output().SetDefault(); err != nil {
			ui.Warning("Error restoring default mode of %s: %v", driver.Output().GetId(), err)
		}
	}
	b.Topology.Close()
}

// seedCurve persists the configured curve of a control. A persisted curve is kept
// as long as the configured curve did not change since it was last seeded.
func seedCurve(settings persistence.Settings, config configuration.ControlConfig) {
	if config.Curve == nil {
		return
	}
	configured := config.Curve.String()
	seededKey := control.SeededCurveKey(config.ID)

	if settings.Contains(control.CurveKey(config.ID)) {
		seeded := settings.Get(seededKey, "")
		if seeded == configured {
			return
		}
		if len(seeded) <= 0 {
			ui.Info("Control %s: keeping persisted curve, configured curve is used once it changes", config.ID)
			if err := settings.Set(seededKey, configured); err != nil {
				ui.Warning("Error persisting seeded curve of control %s: %v", config.ID, err)
			}
			return
		}
		ui.Info("Control %s: configured curve changed, replacing persisted curve", config.ID)
	}

	if err := settings.Set(control.CurveKey(config.ID), configured); err != nil {
		ui.Warning("Error persisting curve of control %s: %v", config.ID, err)
		return
	}
	if err := settings.Set(seededKey, configured); err != nil {
		ui.Warning("Error persisting seeded curve of control %s: %v", config.ID, err)
	}
	if !settings.Contains(control.ModeKey(config.ID)) {
		if err := settings.Set(control.ModeKey(config.ID), strconv.Itoa(int(control.SoftwareCurve))); err != nil {
			ui.Warning("Error persisting mode of control %s: %v", config.ID, err)
		}
	}
}

func createSensorSpecs(configs []configuration.SensorConfig) ([]hardware.SensorSpec, error) {
	var result []hardware.SensorSpec
	for _, config := range configs {
		sensorType, err := sensors.ParseType(config.Type)
		if err != nil {
			return nil, fmt.Errorf("sensor %s: %w", config.ID, err)
		}

		var reader sensors.Reader
		switch {
		case config.File != nil:
			reader = sensors.FileReader{Path: config.File.Path, Scale: config.File.Scale}
		case config.Cmd != nil:
			reader = sensors.CmdReader{Exec: config.Cmd.Exec, Args: config.Cmd.Args, Scale: config.Cmd.Scale}
		default:
			return nil, fmt.Errorf("no matching sensor type for sensor: %s", config.ID)
		}

		result = append(result, hardware.SensorSpec{
			Id:     config.ID,
			Name:   config.Name,
			Type:   sensorType,
			Reader: reader,
		})
	}
	return result, nil
}

func toCommand(config *configuration.ExecConfig) *boost.Command {
	if config == nil {
		return nil
	}
	return &boost.Command{Exec: config.Exec, Args: config.Args}
}

func createActuator(config configuration.ActuatorConfig) boost.Actuator {
	if sysfs := config.Sysfs; sysfs != nil {
		return boost.NewSysfsActuator(sysfs.BoostPath, sysfs.Invert, sysfs.MinPerfPath, sysfs.MaxPerfPath)
	}
	if cmd := config.Cmd; cmd != nil {
		return boost.NewCmdActuator(toCommand(cmd.SetBoost), toCommand(cmd.GetBoost), toCommand(cmd.SetPerformanceLevel))
	}
	ui.Info("No boost actuator configured, boost commands are only logged")
	return boost.NewNoopActuator()
}
