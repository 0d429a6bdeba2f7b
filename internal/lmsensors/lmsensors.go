package lmsensors

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/markusressel/boost2go/internal/hardware"
	"github.com/markusressel/boost2go/internal/sensors"
	"github.com/markusressel/boost2go/internal/ui"
	"github.com/md14454/gosensors"
)

const (
	GroupId = "/lmsensors"

	BusTypeIsa  = 1
	BusTypePci  = 2
	BusTypeAcpi = 5
)

type chipSensor struct {
	sensor     *sensors.Sensor
	subFeature gosensors.SubFeature
}

// Chip is a single chip detected by libsensors
type Chip struct {
	id      string
	name    string
	path    string
	sensors []chipSensor
}

func (h *Chip) GetId() string {
	return h.id
}

func (h *Chip) GetName() string {
	return h.name
}

func (h *Chip) Sensors() []*sensors.Sensor {
	result := make([]*sensors.Sensor, len(h.sensors))
	for i, s := range h.sensors {
		result[i] = s.sensor
	}
	return result
}

func (h *Chip) SubHardware() []hardware.Hardware {
	return nil
}

func (h *Chip) Update() error {
	for _, s := range h.sensors {
		s.sensor.SetValue(s.subFeature.GetValue())
	}
	return nil
}

func (h *Chip) Close() {
}

// Group exposes the temperature and fan sensors of all chips known to libsensors
type Group struct {
	chips []hardware.Hardware
}

// NewGroup initializes libsensors, which stays initialized until Close is called
func NewGroup() *Group {
	gosensors.Init()

	group := &Group{}
	chips := gosensors.GetDetectedChips()
	for i := 0; i < len(chips); i++ {
		chip := chips[i]
		identifier := computeIdentifier(chip)
		hw := &Chip{
			id:   fmt.Sprintf("%s/%s", GroupId, identifier),
			name: identifier,
			path: chip.Path,
		}
		hw.sensors = findSensors(hw, chip)

		if len(hw.sensors) <= 0 {
			continue
		}
		ui.Debug("Detected chip %s with %d sensors", hw.id, len(hw.sensors))
		group.chips = append(group.chips, hw)
	}

	return group
}

func findSensors(hw *Chip, chip gosensors.Chip) (result []chipSensor) {
	counts := map[sensors.Type]int{}

	features := chip.GetFeatures()
	for j := 0; j < len(features); j++ {
		feature := features[j]

		var sensorType sensors.Type
		var inputType gosensors.SubFeatureType
		switch feature.Type {
		case gosensors.FeatureTypeTemp:
			sensorType = sensors.Temperature
			inputType = gosensors.SubFeatureTypeTempInput
		case gosensors.FeatureTypeFan:
			sensorType = sensors.Fan
			inputType = gosensors.SubFeatureTypeFanInput
		default:
			continue
		}

		input, ok := getSubFeature(feature.GetSubFeatures(), inputType)
		if !ok {
			continue
		}

		id := fmt.Sprintf("%s/%s/%d", hw.id, sensorType.String(), counts[sensorType])
		counts[sensorType]++
		label := getLabel(chip.Path, input.Name)
		result = append(result, chipSensor{
			sensor:     sensors.NewSensor(id, label, sensorType),
			subFeature: input,
		})
	}
	return result
}

func (g *Group) GetId() string {
	return GroupId
}

func (g *Group) Hardware() []hardware.Hardware {
	return g.chips
}

func (g *Group) Close() {
	gosensors.Cleanup()
}

func getSubFeature(subFeatures []gosensors.SubFeature, input gosensors.SubFeatureType) (gosensors.SubFeature, bool) {
	for _, a := range subFeatures {
		if a.Type == input {
			return a, true
		}
	}
	return gosensors.SubFeature{}, false
}

// getLabel reads the label of an input of a device
func getLabel(devicePath string, input string) string {
	labelPath := strings.TrimSuffix(devicePath+"/"+input, "input") + "label"

	content, _ := os.ReadFile(labelPath)
	label := strings.TrimSpace(string(content))
	if len(label) <= 0 {
		label = input
	}
	return label
}

func getDeviceName(devicePath string) string {
	content, _ := os.ReadFile(devicePath + "/name")
	return strings.TrimSpace(string(content))
}

func computeIdentifier(chip gosensors.Chip) (name string) {
	name = chip.Prefix

	devicePath := chip.Path
	if len(name) <= 0 {
		name = getDeviceName(devicePath)
	}

	if len(name) <= 0 {
		_, name = filepath.Split(devicePath)
	}

	identifier := name
	switch chip.Bus.Type {
	case BusTypeIsa:
		identifier = fmt.Sprintf("%s-isa-%x", identifier, int(chip.Bus.Nr)<<12|int(chip.Addr))
	case BusTypePci:
		identifier = fmt.Sprintf("%s-pci-%x", identifier, int(chip.Bus.Nr)<<12|int(chip.Addr))
	case BusTypeAcpi:
		identifier = fmt.Sprintf("%s-acpi-%d", identifier, chip.Bus.Nr)
	}

	return identifier
}
