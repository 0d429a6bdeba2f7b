package hardware

import (
	"errors"
	"fmt"

	"github.com/markusressel/boost2go/internal/sensors"
)

const ConfiguredGroupId = "/config"

// SensorSpec describes a sensor whose readings are acquired by a sensors.Reader
type SensorSpec struct {
	Id     string
	Name   string
	Type   sensors.Type
	Reader sensors.Reader
}

// ConfiguredHardware holds the sensors defined in the configuration file
type ConfiguredHardware struct {
	sensors []*sensors.Sensor
	readers []sensors.Reader
}

func NewConfiguredHardware(specs []SensorSpec) *ConfiguredHardware {
	h := &ConfiguredHardware{}
	for _, spec := range specs {
		name := spec.Name
		if len(name) <= 0 {
			name = spec.Id
		}
		h.sensors = append(h.sensors, sensors.NewSensor(spec.Id, name, spec.Type))
		h.readers = append(h.readers, spec.Reader)
	}
	return h
}

func (h *ConfiguredHardware) GetId() string {
	return ConfiguredGroupId
}

func (h *ConfiguredHardware) GetName() string {
	return "Configured sensors"
}

func (h *ConfiguredHardware) Sensors() []*sensors.Sensor {
	return h.sensors
}

func (h *ConfiguredHardware) SubHardware() []Hardware {
	return nil
}

// Update reads all sensors. Sensors that cannot be read get an absent value.
func (h *ConfiguredHardware) Update() error {
	var errs []error
	for i, reader := range h.readers {
		sensor := h.sensors[i]
		value, err := reader.Read()
		if err != nil {
			sensor.ClearValue()
			errs = append(errs, fmt.Errorf("sensor %s: %w", sensor.GetId(), err))
			continue
		}
		sensor.SetValue(value)
	}
	return errors.Join(errs...)
}

func (h *ConfiguredHardware) Close() {
}

// ConfiguredGroup is the group of the ConfiguredHardware
type ConfiguredGroup struct {
	hardware *ConfiguredHardware
}

func NewConfiguredGroup(specs []SensorSpec) *ConfiguredGroup {
	return &ConfiguredGroup{
		hardware: NewConfiguredHardware(specs),
	}
}

func (g *ConfiguredGroup) GetId() string {
	return ConfiguredGroupId
}

func (g *ConfiguredGroup) Hardware() []Hardware {
	if len(g.hardware.sensors) <= 0 {
		return nil
	}
	return []Hardware{g.hardware}
}

func (g *ConfiguredGroup) Close() {
	g.hardware.Close()
}
