package sensors

import (
	"sync"
	"time"

	"github.com/markusressel/boost2go/internal/util"
)

const (
	previousValueCount = 5
	// number of raw writes averaged into a single long-term entry
	accumulatorSize = 4
	retention       = 24 * time.Hour
	// velocity above which Smoothed follows the raw value
	fastChangeVelocity = 10.0
	smoothingStep      = 10.0
)

// Source is a readable sensor, as consumed by control loops
type Source interface {
	GetId() string
	// GetValue returns the current value, false if there is no reading
	GetValue() (float64, bool)
	// GetAverage returns the mean of the current and previous values, false if there are none
	GetAverage() (float64, bool)
}

// Observer is notified after every write to a Sensor
type Observer interface {
	OnValue(sensor *Sensor, value float64, ok bool)
}

// Value is a single entry of the long-term value log
type Value struct {
	Value float64   `json:"value"`
	Time  time.Time `json:"time"`
}

type optional struct {
	value float64
	ok    bool
}

// Sensor holds the sampled history of a single hardware sensor
type Sensor struct {
	mu sync.Mutex

	id         string
	name       string
	sensorType Type

	current  optional
	previous [previousValueCount]optional
	min      optional
	max      optional

	values []Value
	sum    float64
	count  int

	observers []Observer

	now func() time.Time
}

func NewSensor(id string, name string, sensorType Type) *Sensor {
	return &Sensor{
		id:         id,
		name:       name,
		sensorType: sensorType,
		now:        time.Now,
	}
}

func (s *Sensor) GetId() string {
	return s.id
}

func (s *Sensor) GetName() string {
	return s.name
}

func (s *Sensor) GetType() Type {
	return s.sensorType
}

// AddObserver registers an observer that is notified on every write
func (s *Sensor) AddObserver(observer Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

func (s *Sensor) RemoveObserver(observer Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.observers {
		if o == observer {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// SetValue writes a new reading
func (s *Sensor) SetValue(value float64) {
	s.write(optional{value: value, ok: true})
}

// ClearValue writes an absent reading
func (s *Sensor) ClearValue() {
	s.write(optional{})
}

func (s *Sensor) write(value optional) {
	s.mu.Lock()

	now := s.now()
	for len(s.values) > 0 && now.Sub(s.values[0].Time) > retention {
		s.values = s.values[1:]
	}

	if value.ok {
		s.sum += value.value
		s.count++
		if s.count == accumulatorSize {
			s.appendValue(s.sum/float64(s.count), now)
			s.sum = 0
			s.count = 0
		}
	}

	if s.sensorType.keepsHistory() {
		copy(s.previous[1:], s.previous[:previousValueCount-1])
		s.previous[0] = s.current
	}
	s.current = value

	if value.ok {
		if !s.min.ok || value.value < s.min.value {
			s.min = value
		}
		if !s.max.ok || value.value > s.max.value {
			s.max = value
		}
	}

	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, o := range observers {
		o.OnValue(s, value.value, value.ok)
	}
}

// appendValue adds an entry to the long-term log.
// A run of equal values only extends the timestamp of its last entry.
func (s *Sensor) appendValue(value float64, at time.Time) {
	n := len(s.values)
	if n >= 2 && s.values[n-1].Value == value && s.values[n-2].Value == value {
		s.values[n-1] = Value{Value: value, Time: at}
		return
	}
	s.values = append(s.values, Value{Value: value, Time: at})
}

// Value returns the current reading
func (s *Sensor) Value() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.value, s.current.ok
}

func (s *Sensor) GetValue() (float64, bool) {
	return s.Value()
}

func (s *Sensor) GetAverage() (float64, bool) {
	return s.Average()
}

// Average returns the mean of the current value and up to 5 previous values.
// The previous values are only considered up to the first missing one.
func (s *Sensor) Average() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total, count, _ := s.window()
	if count == 0 {
		return 0, false
	}
	return total / float64(count), true
}

// Smoothed returns the windowed mean rounded to the nearest 10, or the
// current value rounded to the nearest 10 while the value changes quickly.
func (s *Sensor) Smoothed() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total, count, velocity := s.window()
	if count == 0 {
		return 0, false
	}
	velocity /= float64(count)

	if s.current.ok && (velocity > fastChangeVelocity || velocity < -fastChangeVelocity) {
		return util.RoundToNearest(s.current.value, smoothingStep), true
	}
	return util.RoundToNearest(total/float64(count), smoothingStep), true
}

// window must be called with s.mu held
func (s *Sensor) window() (total float64, count int, velocity float64) {
	last := s.current
	if last.ok {
		total = last.value
		count = 1
	}
	for _, previous := range s.previous {
		if !previous.ok {
			break
		}
		if last.ok {
			velocity += last.value - previous.value
		}
		total += previous.value
		count++
		last = previous
	}
	return total, count, velocity
}

func (s *Sensor) Min() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.min.value, s.min.ok
}

func (s *Sensor) Max() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.max.value, s.max.ok
}

func (s *Sensor) ResetMin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.min = optional{}
}

func (s *Sensor) ResetMax() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.max = optional{}
}

// Values returns a copy of the long-term value log, oldest first
func (s *Sensor) Values() []Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]Value, len(s.values))
	copy(result, s.values)
	return result
}
