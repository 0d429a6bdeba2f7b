package control

import (
	"fmt"
	"strings"
)

type Mode int

const (
	Undefined Mode = iota
	Software
	Default
	SoftwareCurve
)

var modeNames = []string{"undefined", "software", "default", "curve"}

func (m Mode) String() string {
	if m < Undefined || m > SoftwareCurve {
		return fmt.Sprintf("unknown(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode accepts the name of a mode (case-insensitive)
func ParseMode(value string) (Mode, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for i, name := range modeNames {
		if name == value {
			return Mode(i), nil
		}
	}
	return Undefined, fmt.Errorf("unknown control mode: %s", value)
}
