package hardware

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/looplab/tarjan"
	"github.com/markusressel/boost2go/internal/persistence"
	"github.com/markusressel/boost2go/internal/sensors"
	"github.com/markusressel/boost2go/internal/ui"
)

const (
	VirtualGroupId    = "/virtual"
	VirtualHardwareId = "/virtual/0"

	// MaxVirtualSensors is the number of virtual sensor slots
	MaxVirtualSensors = 16

	virtualSeparator = ";"
)

type Combiner string

const (
	CombinerSum Combiner = "sum"
	CombinerMax Combiner = "max"
)

// VirtualSourceKey returns the settings key of the definition of the virtual sensor with the given index
func VirtualSourceKey(index int) string {
	return fmt.Sprintf("%s/%d/source", VirtualGroupId, index)
}

// VirtualSensorId returns the id of the virtual sensor with the given index
func VirtualSensorId(index int) string {
	return fmt.Sprintf("%s/%s/%d", VirtualHardwareId, sensors.Temperature.String(), index)
}

// VirtualDefinition combines the values of other sensors into a virtual sensor
type VirtualDefinition struct {
	Combiner  Combiner
	SourceIds []string
}

// ParseVirtualDefinition parses "sum|max;id1;id2;..."
func ParseVirtualDefinition(value string) (VirtualDefinition, error) {
	parts := strings.Split(strings.TrimSpace(value), virtualSeparator)
	combiner := Combiner(parts[0])
	if combiner != CombinerSum && combiner != CombinerMax {
		return VirtualDefinition{}, fmt.Errorf("unknown combiner: %s", parts[0])
	}
	var sourceIds []string
	for _, id := range parts[1:] {
		id = strings.TrimSpace(id)
		if len(id) > 0 {
			sourceIds = append(sourceIds, id)
		}
	}
	if len(sourceIds) <= 0 {
		return VirtualDefinition{}, errors.New("no source sensors")
	}
	return VirtualDefinition{Combiner: combiner, SourceIds: sourceIds}, nil
}

func (d VirtualDefinition) String() string {
	return string(d.Combiner) + virtualSeparator + strings.Join(d.SourceIds, virtualSeparator)
}

type virtualSensor struct {
	sensor     *sensors.Sensor
	definition VirtualDefinition
	sources    []sensors.Source
}

func (v *virtualSensor) update() {
	result := 0.0
	present := false
	for _, source := range v.sources {
		value, ok := 0.0, false
		if source != nil {
			value, ok = source.GetValue()
		}
		if !ok {
			if v.definition.Combiner == CombinerSum {
				v.sensor.ClearValue()
				return
			}
			continue
		}
		switch v.definition.Combiner {
		case CombinerSum:
			result += value
		case CombinerMax:
			if !present || value > result {
				result = value
			}
		}
		present = true
	}
	if !present {
		v.sensor.ClearValue()
		return
	}
	v.sensor.SetValue(result)
}

// VirtualHardware holds the virtual sensors defined in the settings store.
// Source sensors are bound whenever hardware is added to the topology.
type VirtualHardware struct {
	// guards the bound sources
	mu      sync.Mutex
	sensors []*virtualSensor
}

// NewVirtualGroup reads all virtual sensor definitions from the settings.
// Invalid definitions and definitions that depend on each other in a cycle are skipped.
func NewVirtualGroup(settings persistence.Settings) *VirtualGroup {
	definitions := map[int]VirtualDefinition{}
	for i := 0; i < MaxVirtualSensors; i++ {
		key := VirtualSourceKey(i)
		if !settings.Contains(key) {
			continue
		}
		definition, err := ParseVirtualDefinition(settings.Get(key, ""))
		if err != nil {
			ui.Warning("Ignoring invalid virtual sensor %s: %v", key, err)
			continue
		}
		definitions[i] = definition
	}

	cyclic := findCyclicSensors(definitions)

	hardware := &VirtualHardware{}
	for i := 0; i < MaxVirtualSensors; i++ {
		definition, ok := definitions[i]
		if !ok {
			continue
		}
		id := VirtualSensorId(i)
		if _, isCyclic := cyclic[id]; isCyclic {
			ui.Warning("Ignoring virtual sensor %s: it depends on itself", id)
			continue
		}
		hardware.sensors = append(hardware.sensors, &virtualSensor{
			sensor:     sensors.NewSensor(id, fmt.Sprintf("Virtual %d", i), sensors.Temperature),
			definition: definition,
			sources:    make([]sensors.Source, len(definition.SourceIds)),
		})
	}

	return &VirtualGroup{hardware: hardware}
}

func findCyclicSensors(definitions map[int]VirtualDefinition) map[string]struct{} {
	graph := make(map[interface{}][]interface{})
	for i, definition := range definitions {
		var edges []interface{}
		for _, sourceId := range definition.SourceIds {
			edges = append(edges, sourceId)
		}
		graph[VirtualSensorId(i)] = edges
	}

	result := map[string]struct{}{}
	for _, items := range tarjan.Connections(graph) {
		if len(items) > 1 {
			for _, item := range items {
				result[item.(string)] = struct{}{}
			}
		}
	}
	for i, definition := range definitions {
		id := VirtualSensorId(i)
		for _, sourceId := range definition.SourceIds {
			if sourceId == id {
				result[id] = struct{}{}
			}
		}
	}
	return result
}

func (h *VirtualHardware) GetId() string {
	return VirtualHardwareId
}

func (h *VirtualHardware) GetName() string {
	return "Virtual Sensors"
}

// Sensors returns the virtual sensors. The set of sensors is fixed at construction.
func (h *VirtualHardware) Sensors() []*sensors.Sensor {
	result := make([]*sensors.Sensor, len(h.sensors))
	for i, v := range h.sensors {
		result[i] = v.sensor
	}
	return result
}

func (h *VirtualHardware) SubHardware() []Hardware {
	return nil
}

func (h *VirtualHardware) Update() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, v := range h.sensors {
		v.update()
	}
	return nil
}

func (h *VirtualHardware) Close() {
}

// OnHardwareAdded binds source sensors by id
func (h *VirtualHardware) OnHardwareAdded(groups []Group) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, v := range h.sensors {
		for i, sourceId := range v.definition.SourceIds {
			if v.sources[i] != nil {
				continue
			}
			if sensor := FindSensor(groups, sourceId); sensor != nil {
				v.sources[i] = sensor
			}
		}
	}
}

// OnHardwareRemoved unbinds all sources that belong to the removed hardware
func (h *VirtualHardware) OnHardwareRemoved(hardware Hardware) {
	h.mu.Lock()
	defer h.mu.Unlock()
	WalkHardware(hardware, func(hw Hardware) {
		for _, removed := range hw.Sensors() {
			for _, v := range h.sensors {
				for i, source := range v.sources {
					if source != nil && source.GetId() == removed.GetId() {
						v.sources[i] = nil
					}
				}
			}
		}
	})
}

// VirtualGroup is the group of the VirtualHardware
type VirtualGroup struct {
	hardware *VirtualHardware
}

func (g *VirtualGroup) GetId() string {
	return VirtualGroupId
}

func (g *VirtualGroup) Hardware() []Hardware {
	if len(g.hardware.sensors) <= 0 {
		return nil
	}
	return []Hardware{g.hardware}
}

// Listener returns the listener that binds the virtual sensor sources
func (g *VirtualGroup) Listener() Listener {
	return g.hardware
}

func (g *VirtualGroup) Close() {
	g.hardware.Close()
}
