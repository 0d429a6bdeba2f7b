package sensors

import (
	"fmt"
	"strings"
)

type Type int

const (
	Voltage Type = iota
	Clock
	Temperature
	Load
	Fan
	Flow
	Control
	Level
	Factor
	Power
	Data
	SmallData
	Throughput
)

var typeNames = map[Type]string{
	Voltage:     "voltage",
	Clock:       "clock",
	Temperature: "temperature",
	Load:        "load",
	Fan:         "fan",
	Flow:        "flow",
	Control:     "control",
	Level:       "level",
	Factor:      "factor",
	Power:       "power",
	Data:        "data",
	SmallData:   "smalldata",
	Throughput:  "throughput",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(t))
}

// ParseType returns the Type with the given (case-insensitive) name
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown sensor type: %s", name)
}

// keepsHistory reports whether sensors of this type track previous values
func (t Type) keepsHistory() bool {
	return t == Temperature || t == Fan
}
