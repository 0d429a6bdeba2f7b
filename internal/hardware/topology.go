package hardware

import (
	"sort"
	"sync"

	"github.com/markusressel/boost2go/internal/sensors"
	"github.com/markusressel/boost2go/internal/ui"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// Topology keeps track of all hardware groups and broadcasts changes to listeners
type Topology struct {
	mu        sync.Mutex
	groups    []Group
	listeners []Listener

	sensorMap cmap.ConcurrentMap[string, *sensors.Sensor]
}

func NewTopology() *Topology {
	return &Topology{
		sensorMap: cmap.New[*sensors.Sensor](),
	}
}

func (t *Topology) AddListener(listener Listener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, listener)
}

// AddGroup registers a group and notifies all listeners
func (t *Topology) AddGroup(group Group) {
	t.mu.Lock()
	t.groups = append(t.groups, group)
	for _, hw := range group.Hardware() {
		WalkHardware(hw, t.index)
	}
	groups := t.copyGroups()
	listeners := t.copyListeners()
	t.mu.Unlock()

	ui.Debug("Hardware group added: %s", group.GetId())
	for _, l := range listeners {
		l.OnHardwareAdded(groups)
	}
}

// RemoveGroup notifies all listeners about the removal of each hardware of the group and closes it
func (t *Topology) RemoveGroup(group Group) {
	t.mu.Lock()
	found := false
	for i, g := range t.groups {
		if g == group {
			t.groups = append(t.groups[:i], t.groups[i+1:]...)
			found = true
			break
		}
	}
	if found {
		for _, hw := range group.Hardware() {
			WalkHardware(hw, t.unindex)
		}
	}
	listeners := t.copyListeners()
	t.mu.Unlock()

	if !found {
		return
	}

	ui.Debug("Hardware group removed: %s", group.GetId())
	for _, hw := range group.Hardware() {
		for _, l := range listeners {
			l.OnHardwareRemoved(hw)
		}
	}
	group.Close()
}

func (t *Topology) index(hardware Hardware) {
	for _, sensor := range hardware.Sensors() {
		t.sensorMap.Set(sensor.GetId(), sensor)
	}
}

func (t *Topology) unindex(hardware Hardware) {
	for _, sensor := range hardware.Sensors() {
		t.sensorMap.Remove(sensor.GetId())
	}
}

func (t *Topology) Groups() []Group {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.copyGroups()
}

func (t *Topology) copyGroups() []Group {
	groups := make([]Group, len(t.groups))
	copy(groups, t.groups)
	return groups
}

func (t *Topology) copyListeners() []Listener {
	listeners := make([]Listener, len(t.listeners))
	copy(listeners, t.listeners)
	return listeners
}

// FindSensor returns the sensor with the given id
func (t *Topology) FindSensor(id string) (*sensors.Sensor, bool) {
	return t.sensorMap.Get(id)
}

// Sensors returns all known sensors, sorted by id
func (t *Topology) Sensors() []*sensors.Sensor {
	var result []*sensors.Sensor
	for _, sensor := range t.sensorMap.Items() {
		result = append(result, sensor)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].GetId() < result[j].GetId()
	})
	return result
}

// Update acquires new readings for all hardware in the order the groups were added
func (t *Topology) Update() {
	Walk(t.Groups(), func(hardware Hardware) {
		err := hardware.Update()
		if err != nil {
			ui.Warning("Error updating hardware %s: %v", hardware.GetId(), err)
		}
	})
}

// Close removes all groups
func (t *Topology) Close() {
	groups := t.Groups()
	for i := len(groups) - 1; i >= 0; i-- {
		t.RemoveGroup(groups[i])
	}
}
