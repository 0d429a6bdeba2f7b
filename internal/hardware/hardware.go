package hardware

import (
	"github.com/markusressel/boost2go/internal/sensors"
)

// Hardware is a device exposing sensors, possibly with nested sub-hardware
type Hardware interface {
	GetId() string
	GetName() string
	Sensors() []*sensors.Sensor
	SubHardware() []Hardware
	// Update acquires new readings for all sensors of this hardware (not its sub-hardware)
	Update() error
	Close()
}

// Group is a source of hardware, e.g. a driver or a configuration section
type Group interface {
	GetId() string
	Hardware() []Hardware
	Close()
}

// Listener is notified about hardware topology changes
type Listener interface {
	// OnHardwareAdded is called with all groups known after the addition
	OnHardwareAdded(groups []Group)
	OnHardwareRemoved(hardware Hardware)
}

// Walk calls fn for every hardware (including sub-hardware) in the given groups
func Walk(groups []Group, fn func(hardware Hardware)) {
	for _, group := range groups {
		for _, hw := range group.Hardware() {
			WalkHardware(hw, fn)
		}
	}
}

// WalkHardware calls fn for the given hardware and all of its sub-hardware
func WalkHardware(hardware Hardware, fn func(hardware Hardware)) {
	fn(hardware)
	for _, sub := range hardware.SubHardware() {
		WalkHardware(sub, fn)
	}
}

// FindSensor searches the given groups for a sensor with the given id
func FindSensor(groups []Group, id string) (result *sensors.Sensor) {
	Walk(groups, func(hardware Hardware) {
		if result != nil {
			return
		}
		for _, sensor := range hardware.Sensors() {
			if sensor.GetId() == id {
				result = sensor
				return
			}
		}
	})
	return result
}
